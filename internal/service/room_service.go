package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ideaboard-be/internal/dto"
	"ideaboard-be/internal/entity"
	"ideaboard-be/internal/pkg/mailer"
	"ideaboard-be/internal/pkg/serverutils"
	"ideaboard-be/internal/repository/specification"
	"ideaboard-be/internal/repository/unitofwork"
	"ideaboard-be/internal/websocket"
	"ideaboard-be/pkg/events"
	pktNats "ideaboard-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

var ErrNotRoomOwner = serverutils.NewAppError(fiber.StatusForbidden, "only the room owner can do this")
var ErrRoomNotFound = serverutils.NewAppError(fiber.StatusNotFound, "room not found")

type IRoomService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateRoomRequest) (*dto.CreateRoomResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.RoomResponse, error)
	Show(ctx context.Context, userId uuid.UUID, roomId uuid.UUID) (*dto.RoomResponse, error)
	Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameRoomRequest) (*dto.RenameRoomResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, roomId uuid.UUID) error
	Invite(ctx context.Context, userId uuid.UUID, req *dto.InviteRoomRequest) error

	// EnsureMembership lazily records that the user visited the room.
	// Safe to call on every join; concurrent first visits collapse to a
	// single row.
	EnsureMembership(ctx context.Context, roomId, userId uuid.UUID) error

	// MemberIds lists every user who has ever joined the room.
	MemberIds(ctx context.Context, roomId uuid.UUID) ([]uuid.UUID, error)
}

type roomService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	hub            *websocket.Hub
	clientURL      string

	// Suppresses repeat membership upserts for users bouncing between
	// rooms in quick succession.
	membershipCache *gocache.Cache
}

func NewRoomService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	hub *websocket.Hub,
	clientURL string,
) IRoomService {
	return &roomService{
		uowFactory:      uowFactory,
		eventPublisher:  eventPublisher,
		emailService:    emailService,
		hub:             hub,
		clientURL:       clientURL,
		membershipCache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *roomService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateRoomRequest) (*dto.CreateRoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	room := entity.Room{
		Id:        uuid.New(),
		Name:      req.Name,
		OwnerId:   userId,
		CreatedAt: time.Now(),
	}
	membership := entity.Membership{
		RoomId:   room.Id,
		UserId:   userId,
		Role:     entity.MemberRoleOwner,
		JoinedAt: room.CreatedAt,
	}

	// Room and owner membership land together or not at all. A room
	// without its owner row would be invisible in the owner's list.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	if err := uow.RoomRepository().Create(ctx, &room); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.MembershipRepository().Create(ctx, &membership); err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewRoomCreatedEvent(room.Id, userId, room.Name)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish ROOM_CREATED event: %v", err)
		}
	}

	return &dto.CreateRoomResponse{Id: room.Id}, nil
}

func (s *roomService) List(ctx context.Context, userId uuid.UUID) ([]*dto.RoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	memberships, err := uow.MembershipRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []*dto.RoomResponse{}, nil
	}

	roleByRoom := make(map[uuid.UUID]entity.MemberRole, len(memberships))
	roomIds := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		roleByRoom[m.RoomId] = m.Role
		roomIds = append(roomIds, m.RoomId)
	}

	rooms, err := uow.RoomRepository().FindAll(ctx,
		specification.ByIDs{IDs: roomIds},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	// Memberships can survive their room when cleanup lags behind a
	// deletion. Those rows simply do not match here and are skipped.
	out := make([]*dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, &dto.RoomResponse{
			Id:        r.Id,
			Name:      r.Name,
			OwnerId:   r.OwnerId,
			Role:      string(roleByRoom[r.Id]),
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out, nil
}

func (s *roomService) Show(ctx context.Context, userId uuid.UUID, roomId uuid.UUID) (*dto.RoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	role := entity.MemberRoleMember
	if room.OwnerId == userId {
		role = entity.MemberRoleOwner
	}

	return &dto.RoomResponse{
		Id:        room.Id,
		Name:      room.Name,
		OwnerId:   room.OwnerId,
		Role:      string(role),
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}, nil
}

func (s *roomService) Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameRoomRequest) (*dto.RenameRoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if room.OwnerId != userId {
		return nil, ErrNotRoomOwner
	}

	now := time.Now()
	room.Name = req.Name
	room.UpdatedAt = &now

	if err := uow.RoomRepository().Update(ctx, room); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(room.Id, websocket.NewMessage(websocket.TypeRoomRenamed, fiber.Map{
			"room_id": room.Id,
			"name":    room.Name,
		}), uuid.Nil)
	}

	return &dto.RenameRoomResponse{Id: room.Id}, nil
}

func (s *roomService) Delete(ctx context.Context, userId uuid.UUID, roomId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil {
		return err
	}
	if room == nil {
		return ErrRoomNotFound
	}
	if room.OwnerId != userId {
		return ErrNotRoomOwner
	}

	if err := uow.RoomRepository().Delete(ctx, roomId); err != nil {
		return err
	}

	// The sweeper garbage-collects ideas, memberships and presence for
	// the dead room off this event.
	if s.eventPublisher != nil {
		evt := events.NewRoomDeletedEvent(roomId, userId)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish ROOM_DELETED event: %v", err)
		}
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(roomId, websocket.NewMessage(websocket.TypeRoomDeleted, fiber.Map{
			"room_id": roomId,
		}), uuid.Nil)
	}

	return nil
}

func (s *roomService) Invite(ctx context.Context, userId uuid.UUID, req *dto.InviteRoomRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: req.RoomId})
	if err != nil {
		return err
	}
	if room == nil {
		return ErrRoomNotFound
	}

	inviter, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if inviter == nil {
		return errors.New("inviter not found")
	}

	if s.emailService == nil {
		return errors.New("email delivery not configured")
	}

	joinLink := fmt.Sprintf("%s/rooms/%s", s.clientURL, room.Id)
	return s.emailService.SendRoomInvite(req.Email, inviter.FullName, room.Name, joinLink)
}

func (s *roomService) MemberIds(ctx context.Context, roomId uuid.UUID) ([]uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	memberships, err := uow.MembershipRepository().FindAll(ctx,
		specification.ByRoomID{RoomID: roomId},
	)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(memberships))
	for i, m := range memberships {
		ids[i] = m.UserId
	}
	return ids, nil
}

func (s *roomService) EnsureMembership(ctx context.Context, roomId, userId uuid.UUID) error {
	cacheKey := roomId.String() + ":" + userId.String()
	if _, found := s.membershipCache.Get(cacheKey); found {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Memberships have no FK, so an upsert against a room that never
	// existed would leave a row no sweeper ever collects.
	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil {
		return err
	}
	if room == nil {
		return ErrRoomNotFound
	}

	membership := &entity.Membership{
		RoomId:   roomId,
		UserId:   userId,
		Role:     entity.MemberRoleMember,
		JoinedAt: time.Now(),
	}

	created, err := uow.MembershipRepository().CreateIfAbsent(ctx, membership)
	if err != nil {
		return err
	}

	s.membershipCache.Set(cacheKey, true, gocache.DefaultExpiration)

	if created && s.eventPublisher != nil {
		evt := events.NewMemberJoinedEvent(roomId, userId)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish MEMBER_JOINED event: %v", err)
		}
	}

	return nil
}
