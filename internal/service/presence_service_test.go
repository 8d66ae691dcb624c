package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursorThrottleWindow(t *testing.T) {
	s := &presenceService{lastSent: make(map[uuid.UUID]time.Time)}
	user := uuid.New()

	if !s.allowed(user) {
		t.Fatal("first sample must pass")
	}
	if s.allowed(user) {
		t.Error("sample inside the throttle window must be dropped")
	}

	// Age the last-sent stamp past the window instead of sleeping.
	s.mu.Lock()
	s.lastSent[user] = time.Now().Add(-2 * cursorThrottle)
	s.mu.Unlock()

	if !s.allowed(user) {
		t.Error("sample after the window must pass")
	}
}

func TestCursorThrottlePerUser(t *testing.T) {
	s := &presenceService{lastSent: make(map[uuid.UUID]time.Time)}
	a := uuid.New()
	b := uuid.New()

	if !s.allowed(a) {
		t.Fatal("first sample for a must pass")
	}
	if !s.allowed(b) {
		t.Error("b must not be throttled by a's samples")
	}
}
