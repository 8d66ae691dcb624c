package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestSendErrorAfterCloseDoesNotPanic(t *testing.T) {
	c := &Client{Send: make(chan []byte, 1)}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			c.SendError("busy")
		}
	}()

	c.closeSend()
	<-done
}

func TestTrySendReportsDrops(t *testing.T) {
	c := &Client{Send: make(chan []byte, 1)}

	if !c.trySend([]byte("a")) {
		t.Fatal("send into empty buffer must succeed")
	}
	if c.trySend([]byte("b")) {
		t.Error("send into full buffer must be dropped")
	}

	c.closeSend()
	if c.trySend([]byte("c")) {
		t.Error("send after close must be dropped")
	}
}

func TestHubDropsSlowClientWithoutPanic(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	roomID := uuid.New()
	c := &Client{
		Hub:    h,
		RoomID: roomID,
		UserID: uuid.New(),
		Send:   make(chan []byte, 1),
	}
	h.register <- c

	// The reader side keeps producing error frames while the hub's drop
	// path unregisters the client and closes its channel.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				c.SendError("busy")
			}
		}
	}()

	// Nothing drains Send, so the buffer fills and further broadcasts
	// trigger the force-unregister.
	for i := 0; i < 50; i++ {
		h.BroadcastToRoom(roomID, []byte("x"), uuid.Nil)
	}

	time.Sleep(50 * time.Millisecond)
	close(stop)
	wg.Wait()
}
