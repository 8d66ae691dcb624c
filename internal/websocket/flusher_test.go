package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type flushRecorder struct {
	mu    sync.Mutex
	calls []flushCall
}

type flushCall struct {
	roomID uuid.UUID
	ideaID uuid.UUID
	x, y   float64
}

func (r *flushRecorder) sink(roomID, ideaID uuid.UUID, x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, flushCall{roomID, ideaID, x, y})
}

func (r *flushRecorder) snapshot() []flushCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]flushCall, len(r.calls))
	copy(out, r.calls)
	return out
}

func TestPositionFlusherCoalescesBurst(t *testing.T) {
	rec := &flushRecorder{}
	f := NewPositionFlusher(rec.sink)
	f.interval = 20 * time.Millisecond

	roomID := uuid.New()
	ideaID := uuid.New()

	// A drag burst: many samples, only the last should persist.
	for i := 0; i < 50; i++ {
		f.Record(roomID, ideaID, float64(i), float64(i*2))
	}

	time.Sleep(100 * time.Millisecond)

	calls := rec.snapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 flush, got %d", len(calls))
	}
	if calls[0].x != 49 || calls[0].y != 98 {
		t.Errorf("expected trailing position (49, 98), got (%v, %v)", calls[0].x, calls[0].y)
	}
}

func TestPositionFlusherIndependentIdeas(t *testing.T) {
	rec := &flushRecorder{}
	f := NewPositionFlusher(rec.sink)
	f.interval = 20 * time.Millisecond

	roomID := uuid.New()
	a := uuid.New()
	b := uuid.New()

	f.Record(roomID, a, 10, 10)
	f.Record(roomID, b, 20, 20)

	time.Sleep(100 * time.Millisecond)

	if got := len(rec.snapshot()); got != 2 {
		t.Fatalf("expected 2 flushes, got %d", got)
	}
}

func TestPositionFlusherFlushRoomIsImmediate(t *testing.T) {
	rec := &flushRecorder{}
	f := NewPositionFlusher(rec.sink)
	f.interval = time.Hour // would never fire on its own

	roomID := uuid.New()
	otherRoom := uuid.New()
	ideaID := uuid.New()

	f.Record(roomID, ideaID, 5, 7)
	f.Record(otherRoom, uuid.New(), 1, 1)

	f.FlushRoom(roomID)

	calls := rec.snapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 flush, got %d", len(calls))
	}
	if calls[0].ideaID != ideaID || calls[0].x != 5 || calls[0].y != 7 {
		t.Errorf("unexpected flush %+v", calls[0])
	}
}

func TestPositionFlusherDiscard(t *testing.T) {
	rec := &flushRecorder{}
	f := NewPositionFlusher(rec.sink)
	f.interval = 20 * time.Millisecond

	roomID := uuid.New()
	ideaID := uuid.New()

	f.Record(roomID, ideaID, 3, 4)
	f.Discard(ideaID)

	time.Sleep(100 * time.Millisecond)

	if got := len(rec.snapshot()); got != 0 {
		t.Fatalf("expected no flushes after discard, got %d", got)
	}
}
