package dto

import (
	"time"

	"github.com/google/uuid"

	"ideaboard-be/internal/canvas"
)

type CreateRoomRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type CreateRoomResponse struct {
	Id uuid.UUID `json:"id"`
}

type RoomResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	OwnerId   uuid.UUID  `json:"owner_id"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type RenameRoomRequest struct {
	Id   uuid.UUID
	Name string `json:"name" validate:"required,max=120"`
}

type RenameRoomResponse struct {
	Id uuid.UUID `json:"id"`
}

type InviteRoomRequest struct {
	RoomId uuid.UUID
	Email  string `json:"email" validate:"required,email"`
}

type PresenceResponse struct {
	UserId    uuid.UUID `json:"user_id"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	UpdatedAt int64     `json:"updated_at"`
}

// RoomDetailResponse is the REST snapshot of one room: metadata, its notes
// and the canvas rectangle computed from them.
type RoomDetailResponse struct {
	Room   RoomResponse    `json:"room"`
	Ideas  []*IdeaResponse `json:"ideas"`
	Bounds *canvas.Bounds  `json:"bounds"`
}

// RoomStateResponse is the initial snapshot pushed to a client when it joins
// a room over the websocket.
type RoomStateResponse struct {
	Room     RoomResponse       `json:"room"`
	Ideas    []IdeaResponse     `json:"ideas"`
	Presence []PresenceResponse `json:"presence"`
}
