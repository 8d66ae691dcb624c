package service

import (
	"context"
	"errors"
	"log"

	"ideaboard-be/internal/repository/unitofwork"
	"ideaboard-be/pkg/events"
	pktNats "ideaboard-be/pkg/nats"

	"github.com/google/uuid"
)

type ISweeperService interface {
	Start() error
}

// sweeperService garbage-collects the leftovers of deleted rooms: idea rows,
// membership rows and presence slots. Runs off a durable consumer so a
// restart mid-sweep picks the event back up.
type sweeperService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	presence   IPresenceService
}

func NewSweeperService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *pktNats.Subscriber,
	presence IPresenceService,
) ISweeperService {
	return &sweeperService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		presence:   presence,
	}
}

func (s *sweeperService) Start() error {
	return s.subscriber.Subscribe("events."+events.RoomDeletedType, "room-sweeper", s.handleRoomDeleted)
}

func (s *sweeperService) handleRoomDeleted(ctx context.Context, event events.Event) error {
	raw, ok := event.Payload()["room_id"].(string)
	if !ok {
		return errors.New("room_id missing from payload")
	}
	roomId, err := uuid.Parse(raw)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := uow.IdeaRepository().DeleteAllByRoomId(ctx, roomId); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.MembershipRepository().DeleteAllByRoomId(ctx, roomId); err != nil {
		uow.Rollback()
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if s.presence != nil {
		if err := s.presence.ClearRoom(ctx, roomId); err != nil {
			log.Printf("[WARN] Failed to clear presence for room %s: %v", roomId, err)
		}
	}

	log.Printf("[Sweeper] Room %s swept", roomId)
	return nil
}
