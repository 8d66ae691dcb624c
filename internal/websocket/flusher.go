package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// FlushInterval is how long a note position must stay quiet before it is
// handed to the sink. Drag streams arrive every few milliseconds, so only
// the trailing sample of a burst survives.
const FlushInterval = 500 * time.Millisecond

// FlushFunc receives the final coalesced position of a note.
type FlushFunc func(roomID, ideaID uuid.UUID, x, y float64)

type pendingPosition struct {
	roomID uuid.UUID
	x, y   float64
	timer  *time.Timer
}

// PositionFlusher coalesces high-frequency drag updates per note and emits
// only the last position after the stream goes quiet.
type PositionFlusher struct {
	mu       sync.Mutex
	pending  map[uuid.UUID]*pendingPosition
	sink     FlushFunc
	interval time.Duration
}

func NewPositionFlusher(sink FlushFunc) *PositionFlusher {
	return &PositionFlusher{
		pending:  make(map[uuid.UUID]*pendingPosition),
		sink:     sink,
		interval: FlushInterval,
	}
}

// Record notes the latest position of a dragged idea and restarts its
// quiet-period timer.
func (f *PositionFlusher) Record(roomID, ideaID uuid.UUID, x, y float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.pending[ideaID]; ok {
		p.x, p.y = x, y
		p.timer.Reset(f.interval)
		return
	}

	p := &pendingPosition{roomID: roomID, x: x, y: y}
	p.timer = time.AfterFunc(f.interval, func() {
		f.flush(ideaID)
	})
	f.pending[ideaID] = p
}

// FlushRoom immediately drains every pending position in the room. Called
// when a client disconnects so an in-flight drag is not lost.
func (f *PositionFlusher) FlushRoom(roomID uuid.UUID) {
	f.mu.Lock()
	var ids []uuid.UUID
	for id, p := range f.pending {
		if p.roomID == roomID {
			ids = append(ids, id)
		}
	}
	f.mu.Unlock()

	for _, id := range ids {
		f.flush(id)
	}
}

// Discard drops any pending position for the idea without flushing it.
// Used when the idea was deleted mid-drag.
func (f *PositionFlusher) Discard(ideaID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.pending[ideaID]; ok {
		p.timer.Stop()
		delete(f.pending, ideaID)
	}
}

func (f *PositionFlusher) flush(ideaID uuid.UUID) {
	f.mu.Lock()
	p, ok := f.pending[ideaID]
	if ok {
		p.timer.Stop()
		delete(f.pending, ideaID)
	}
	f.mu.Unlock()

	if ok {
		f.sink(p.roomID, ideaID, p.x, p.y)
	}
}
