package model

import (
	"time"

	"github.com/google/uuid"
)

type Idea struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomId          uuid.UUID `gorm:"type:uuid;not null;index"`
	Text            string    `gorm:"type:text;not null"`
	AuthorId        uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorName      string    `gorm:"type:varchar(255);not null"`
	AuthorAvatarURL string    `gorm:"type:text"`
	X               float64   `gorm:"not null;default:0"`
	Y               float64   `gorm:"not null;default:0"`
	Color           string    `gorm:"type:idea_color;not null;default:'yellow'"`
	Width           *float64
	Height          *float64
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Idea) TableName() string {
	return "ideas"
}
