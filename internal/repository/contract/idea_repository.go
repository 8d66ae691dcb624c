package contract

import (
	"context"

	"ideaboard-be/internal/entity"
	"ideaboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

type IdeaRepository interface {
	Create(ctx context.Context, idea *entity.Idea) error
	Update(ctx context.Context, idea *entity.Idea) error
	// UpdatePosition writes only the position columns. Used by the
	// coalesced move flush so a stale in-memory copy of the other fields
	// cannot clobber a concurrent text or color edit.
	UpdatePosition(ctx context.Context, id uuid.UUID, x, y float64) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByRoomId(ctx context.Context, roomId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Idea, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Idea, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
