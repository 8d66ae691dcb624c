package model

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	OwnerId   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Room) TableName() string {
	return "rooms"
}

// Membership uses a composite primary key so the database itself enforces
// at-most-once membership per (room, user).
type Membership struct {
	RoomId   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Role     string    `gorm:"type:member_role;not null;default:'member'"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (Membership) TableName() string {
	return "memberships"
}
