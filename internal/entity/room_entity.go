package entity

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
)

type Room struct {
	Id        uuid.UUID
	Name      string
	OwnerId   uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Membership joins a user to a room. The owner membership is created in the
// same transaction as the room itself; member rows are created lazily on
// first visit.
type Membership struct {
	RoomId   uuid.UUID
	UserId   uuid.UUID
	Role     MemberRole
	JoinedAt time.Time
}
