package dto

import "github.com/google/uuid"

// PublishPositionFlushMessage is the work-queue payload carrying the final
// coalesced position of a dragged idea.
type PublishPositionFlushMessage struct {
	IdeaId uuid.UUID `json:"idea_id"`
	RoomId uuid.UUID `json:"room_id"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
}
