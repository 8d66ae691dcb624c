package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"ideaboard-be/internal/canvas"
	"ideaboard-be/internal/dto"
	"ideaboard-be/internal/entity"
	"ideaboard-be/internal/pkg/serverutils"
	"ideaboard-be/internal/repository/specification"
	"ideaboard-be/internal/repository/unitofwork"
	"ideaboard-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var ErrIdeaNotFound = serverutils.NewAppError(fiber.StatusNotFound, "idea not found")

type IIdeaService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateIdeaRequest) (*dto.CreateIdeaResponse, error)
	ListByRoom(ctx context.Context, roomId uuid.UUID) ([]*dto.IdeaResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateIdeaRequest) (*dto.UpdateIdeaResponse, error)
	Recolor(ctx context.Context, userId uuid.UUID, req *dto.RecolorIdeaRequest) (*dto.RecolorIdeaResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Bounds(ctx context.Context, roomId uuid.UUID, viewportW, viewportH float64) (*canvas.Bounds, error)

	// HandleMove relays a live drag sample to the rest of the room and
	// schedules the coalesced position write.
	HandleMove(ctx context.Context, roomId, userId, ideaId uuid.UUID, x, y float64) error

	// Move is the REST fallback for clients without a live socket. Same
	// pipeline as HandleMove after resolving the idea's room.
	Move(ctx context.Context, userId uuid.UUID, req *dto.MoveIdeaRequest) error

	// FlushRoom persists any pending drag positions for the room.
	FlushRoom(roomId uuid.UUID)
}

type ideaService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	hub              *websocket.Hub
	flusher          *websocket.PositionFlusher
}

func NewIdeaService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	hub *websocket.Hub,
) IIdeaService {
	s := &ideaService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		hub:              hub,
	}
	s.flusher = websocket.NewPositionFlusher(s.enqueueFlush)
	return s
}

// enqueueFlush hands a settled position to the work queue. Persistence
// happens on the consumer side so a slow write never blocks the socket.
func (s *ideaService) enqueueFlush(roomID, ideaID uuid.UUID, x, y float64) {
	payload, err := json.Marshal(dto.PublishPositionFlushMessage{
		IdeaId: ideaID,
		RoomId: roomID,
		X:      x,
		Y:      y,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(context.Background(), payload); err != nil {
		log.Printf("[WARN] Failed to enqueue position flush for idea %s: %v", ideaID, err)
	}
}

func (s *ideaService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateIdeaRequest) (*dto.CreateIdeaResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, serverutils.NewAppError(fiber.StatusBadRequest, "text is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: req.RoomId})
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	author, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, serverutils.NewAppError(fiber.StatusUnauthorized, "unknown user")
	}

	color := entity.IdeaColor(req.Color)
	if req.Color == "" {
		color = entity.DefaultIdeaColor
	} else if !entity.ValidIdeaColor(color) {
		return nil, serverutils.NewAppError(fiber.StatusBadRequest, "unknown color")
	}

	var x, y float64
	switch {
	case req.X != nil && req.Y != nil:
		x, y = *req.X, *req.Y
	case req.Viewport != nil:
		x, y = req.Viewport.CenterOnBoard()
	}

	avatarURL := ""
	if author.AvatarURL != nil {
		avatarURL = *author.AvatarURL
	}

	idea := entity.Idea{
		Id:     uuid.New(),
		RoomId: req.RoomId,
		Text:   text,
		// Author identity is frozen at creation time. Later profile
		// changes do not rewrite existing notes.
		AuthorId:        userId,
		AuthorName:      author.FullName,
		AuthorAvatarURL: avatarURL,
		X:               x,
		Y:               y,
		Color:           color,
		CreatedAt:       time.Now(),
	}

	if err := uow.IdeaRepository().Create(ctx, &idea); err != nil {
		return nil, err
	}

	// Everyone, author included, renders from this broadcast. The client
	// never reserves a local id.
	if s.hub != nil {
		s.hub.BroadcastToRoom(req.RoomId,
			websocket.NewMessage(websocket.TypeIdeaCreated, toIdeaResponse(&idea)), uuid.Nil)
	}

	return &dto.CreateIdeaResponse{Id: idea.Id}, nil
}

func (s *ideaService) ListByRoom(ctx context.Context, roomId uuid.UUID) ([]*dto.IdeaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ideas, err := uow.IdeaRepository().FindAll(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.IdeaResponse, len(ideas))
	for i, idea := range ideas {
		out[i] = toIdeaResponse(idea)
	}
	return out, nil
}

func (s *ideaService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateIdeaRequest) (*dto.UpdateIdeaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	idea, err := uow.IdeaRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if idea == nil {
		return nil, ErrIdeaNotFound
	}

	text := strings.TrimSpace(req.Text)

	// A note emptied of text is gone. The client blurs an empty editor
	// and the note disappears for everyone.
	if text == "" {
		if err := s.deleteIdea(ctx, uow, idea); err != nil {
			return nil, err
		}
		return &dto.UpdateIdeaResponse{Id: idea.Id, Deleted: true}, nil
	}

	now := time.Now()
	idea.Text = text
	idea.UpdatedAt = &now

	if err := uow.IdeaRepository().Update(ctx, idea); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(idea.RoomId,
			websocket.NewMessage(websocket.TypeIdeaUpdated, toIdeaResponse(idea)), userId)
	}

	return &dto.UpdateIdeaResponse{Id: idea.Id}, nil
}

func (s *ideaService) Recolor(ctx context.Context, userId uuid.UUID, req *dto.RecolorIdeaRequest) (*dto.RecolorIdeaResponse, error) {
	color := entity.IdeaColor(req.Color)
	if !entity.ValidIdeaColor(color) {
		return nil, serverutils.NewAppError(fiber.StatusBadRequest, "unknown color")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	idea, err := uow.IdeaRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if idea == nil {
		return nil, ErrIdeaNotFound
	}

	now := time.Now()
	idea.Color = color
	idea.UpdatedAt = &now

	if err := uow.IdeaRepository().Update(ctx, idea); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(idea.RoomId,
			websocket.NewMessage(websocket.TypeIdeaRecolored, fiber.Map{
				"id":    idea.Id,
				"color": string(idea.Color),
			}), userId)
	}

	return &dto.RecolorIdeaResponse{Id: idea.Id}, nil
}

func (s *ideaService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	idea, err := uow.IdeaRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if idea == nil {
		return ErrIdeaNotFound
	}

	return s.deleteIdea(ctx, uow, idea)
}

func (s *ideaService) deleteIdea(ctx context.Context, uow unitofwork.UnitOfWork, idea *entity.Idea) error {
	if err := uow.IdeaRepository().Delete(ctx, idea.Id); err != nil {
		return err
	}

	// Drop any in-flight drag position so the flush queue cannot
	// resurrect the row.
	s.flusher.Discard(idea.Id)

	if s.hub != nil {
		s.hub.BroadcastToRoom(idea.RoomId,
			websocket.NewMessage(websocket.TypeIdeaDeleted, fiber.Map{
				"id": idea.Id,
			}), uuid.Nil)
	}
	return nil
}

func (s *ideaService) Bounds(ctx context.Context, roomId uuid.UUID, viewportW, viewportH float64) (*canvas.Bounds, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ideas, err := uow.IdeaRepository().FindAll(ctx, specification.ByRoomID{RoomID: roomId})
	if err != nil {
		return nil, err
	}

	b := canvas.ComputeBounds(ideas, viewportW, viewportH)
	return &b, nil
}

func (s *ideaService) HandleMove(ctx context.Context, roomId, userId, ideaId uuid.UUID, x, y float64) error {
	if s.hub != nil {
		s.hub.BroadcastToRoom(roomId,
			websocket.NewMessage(websocket.TypeIdeaMoved, fiber.Map{
				"id": ideaId,
				"x":  x,
				"y":  y,
			}), userId)
	}

	s.flusher.Record(roomId, ideaId, x, y)
	return nil
}

func (s *ideaService) Move(ctx context.Context, userId uuid.UUID, req *dto.MoveIdeaRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	idea, err := uow.IdeaRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if idea == nil {
		return ErrIdeaNotFound
	}

	return s.HandleMove(ctx, idea.RoomId, userId, idea.Id, req.X, req.Y)
}

func (s *ideaService) FlushRoom(roomId uuid.UUID) {
	s.flusher.FlushRoom(roomId)
}

func toIdeaResponse(idea *entity.Idea) *dto.IdeaResponse {
	return &dto.IdeaResponse{
		Id:              idea.Id,
		RoomId:          idea.RoomId,
		Text:            idea.Text,
		AuthorId:        idea.AuthorId,
		AuthorName:      idea.AuthorName,
		AuthorAvatarURL: idea.AuthorAvatarURL,
		X:               idea.X,
		Y:               idea.Y,
		Color:           string(idea.Color),
		Width:           idea.Width,
		Height:          idea.Height,
		CreatedAt:       idea.CreatedAt,
		UpdatedAt:       idea.UpdatedAt,
	}
}
