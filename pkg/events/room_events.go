package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoomDeletedType  = "ROOM_DELETED"
	RoomCreatedType  = "ROOM_CREATED"
	MemberJoinedType = "MEMBER_JOINED"
)

// NewRoomDeletedEvent is published when an owner deletes a room. The sweeper
// consumes it to garbage-collect ideas, memberships and presence slots.
func NewRoomDeletedEvent(roomID, ownerID uuid.UUID) Event {
	return BaseEvent{
		Type: RoomDeletedType,
		Data: map[string]interface{}{
			"room_id":  roomID.String(),
			"owner_id": ownerID.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewRoomCreatedEvent(roomID, ownerID uuid.UUID, name string) Event {
	return BaseEvent{
		Type: RoomCreatedType,
		Data: map[string]interface{}{
			"room_id":  roomID.String(),
			"owner_id": ownerID.String(),
			"name":     name,
		},
		OccurredAt: time.Now(),
	}
}

func NewMemberJoinedEvent(roomID, userID uuid.UUID) Event {
	return BaseEvent{
		Type: MemberJoinedType,
		Data: map[string]interface{}{
			"room_id": roomID.String(),
			"user_id": userID.String(),
		},
		OccurredAt: time.Now(),
	}
}
