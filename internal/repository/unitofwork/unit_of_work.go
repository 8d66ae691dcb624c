package unitofwork

import (
	"context"

	"ideaboard-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	RoomRepository() contract.RoomRepository
	MembershipRepository() contract.MembershipRepository
	IdeaRepository() contract.IdeaRepository
}
