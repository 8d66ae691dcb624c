package contract

import (
	"context"

	"ideaboard-be/internal/entity"
	"ideaboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.Membership) error
	// CreateIfAbsent inserts the membership unless the (room, user) pair
	// already exists. Returns true when a new row was written.
	CreateIfAbsent(ctx context.Context, membership *entity.Membership) (bool, error)
	Delete(ctx context.Context, roomId, userId uuid.UUID) error
	DeleteAllByRoomId(ctx context.Context, roomId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Membership, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
