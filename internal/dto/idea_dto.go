package dto

import (
	"time"

	"ideaboard-be/internal/canvas"

	"github.com/google/uuid"
)

type CreateIdeaRequest struct {
	RoomId uuid.UUID
	Text   string   `json:"text" validate:"required"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Color  string   `json:"color"`
	// Viewport lets the server spawn the note at the visible center when
	// the client sends no explicit position.
	Viewport *canvas.Viewport `json:"viewport"`
}

type CreateIdeaResponse struct {
	Id uuid.UUID `json:"id"`
}

type IdeaResponse struct {
	Id              uuid.UUID  `json:"id"`
	RoomId          uuid.UUID  `json:"room_id"`
	Text            string     `json:"text"`
	AuthorId        uuid.UUID  `json:"author_id"`
	AuthorName      string     `json:"author_name"`
	AuthorAvatarURL string     `json:"author_avatar_url,omitempty"`
	X               float64    `json:"x"`
	Y               float64    `json:"y"`
	Color           string     `json:"color"`
	Width           *float64   `json:"width,omitempty"`
	Height          *float64   `json:"height,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// UpdateIdeaRequest carries a text edit. An empty (after trimming) text is
// treated as a deletion.
type UpdateIdeaRequest struct {
	Id   uuid.UUID
	Text string `json:"text"`
}

type UpdateIdeaResponse struct {
	Id      uuid.UUID `json:"id"`
	Deleted bool      `json:"deleted"`
}

type RecolorIdeaRequest struct {
	Id    uuid.UUID
	Color string `json:"color" validate:"required"`
}

type RecolorIdeaResponse struct {
	Id uuid.UUID `json:"id"`
}

type MoveIdeaRequest struct {
	Id uuid.UUID
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}
