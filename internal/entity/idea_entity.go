package entity

import (
	"time"

	"github.com/google/uuid"
)

type IdeaColor string

const (
	IdeaColorYellow IdeaColor = "yellow"
	IdeaColorPink   IdeaColor = "pink"
	IdeaColorBlue   IdeaColor = "blue"
	IdeaColorGreen  IdeaColor = "green"
	IdeaColorOrange IdeaColor = "orange"
	IdeaColorPurple IdeaColor = "purple"

	DefaultIdeaColor = IdeaColorYellow

	// Default footprint used for canvas layout when a note carries no
	// explicit size.
	DefaultIdeaWidth  = 224.0
	DefaultIdeaHeight = 150.0
)

// ValidIdeaColor reports whether c belongs to the fixed palette.
func ValidIdeaColor(c IdeaColor) bool {
	switch c {
	case IdeaColorYellow, IdeaColorPink, IdeaColorBlue, IdeaColorGreen, IdeaColorOrange, IdeaColorPurple:
		return true
	}
	return false
}

// Idea is a single sticky note on a room canvas. AuthorName and
// AuthorAvatarURL are snapshots taken at creation time and are never
// refreshed from the user's profile.
type Idea struct {
	Id              uuid.UUID
	RoomId          uuid.UUID
	Text            string
	AuthorId        uuid.UUID
	AuthorName      string
	AuthorAvatarURL string
	X               float64
	Y               float64
	Color           IdeaColor
	Width           *float64
	Height          *float64
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
