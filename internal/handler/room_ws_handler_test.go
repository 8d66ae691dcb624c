package handler

import (
	"context"
	"encoding/json"
	"testing"

	"ideaboard-be/internal/dto"
	"ideaboard-be/internal/service"
	internalWS "ideaboard-be/internal/websocket"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type ideaServiceStub struct {
	service.IIdeaService
	created []*dto.CreateIdeaRequest
	moved   []uuid.UUID
}

func (s *ideaServiceStub) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateIdeaRequest) (*dto.CreateIdeaResponse, error) {
	s.created = append(s.created, req)
	return &dto.CreateIdeaResponse{Id: uuid.New()}, nil
}

func (s *ideaServiceStub) HandleMove(ctx context.Context, roomId, userId, ideaId uuid.UUID, x, y float64) error {
	s.moved = append(s.moved, ideaId)
	return nil
}

type presenceServiceStub struct {
	service.IPresenceService
	touched int
}

func (s *presenceServiceStub) Touch(ctx context.Context, roomId, userId uuid.UUID, fullName, avatarURL string, x, y float64) error {
	s.touched++
	return nil
}

func newTestHandler(t *testing.T) (*RoomSocketHandler, *ideaServiceStub, *presenceServiceStub, *internalWS.Client) {
	t.Helper()

	ideaStub := &ideaServiceStub{}
	presenceStub := &presenceServiceStub{}
	hub := internalWS.NewHub(nil, nopLogger{})
	h := NewRoomSocketHandler(nil, nil, ideaStub, presenceStub, hub, nopLogger{})

	client := internalWS.NewClient(hub, nil, uuid.New(), uuid.New(), "Test User", "")
	return h, ideaStub, presenceStub, client
}

func TestRouteIdeaCreate(t *testing.T) {
	h, ideaStub, _, client := newTestHandler(t)

	data, _ := json.Marshal(map[string]interface{}{
		"text": "from the socket",
		"x":    10.0,
		"y":    20.0,
	})
	h.route(client, internalWS.Message{Type: internalWS.TypeIdeaCreate, Data: data})

	if len(ideaStub.created) != 1 {
		t.Fatalf("expected 1 create, got %d", len(ideaStub.created))
	}
	req := ideaStub.created[0]
	if req.RoomId != client.RoomID {
		t.Errorf("room must come from the connection, got %s", req.RoomId)
	}
	if req.Text != "from the socket" {
		t.Errorf("unexpected text %q", req.Text)
	}
}

func TestRouteIdeaMove(t *testing.T) {
	h, ideaStub, _, client := newTestHandler(t)

	ideaId := uuid.New()
	data, _ := json.Marshal(internalWS.IdeaMovePayload{Id: ideaId.String(), X: 1, Y: 2})
	h.route(client, internalWS.Message{Type: internalWS.TypeIdeaMoved, Data: data})

	if len(ideaStub.moved) != 1 || ideaStub.moved[0] != ideaId {
		t.Fatalf("expected move for %s, got %v", ideaId, ideaStub.moved)
	}
}

func TestRouteCursorMove(t *testing.T) {
	h, _, presenceStub, client := newTestHandler(t)

	data, _ := json.Marshal(internalWS.CursorMovePayload{X: 5, Y: 6})
	h.route(client, internalWS.Message{Type: internalWS.TypeCursorMove, Data: data})

	if presenceStub.touched != 1 {
		t.Fatalf("expected 1 presence touch, got %d", presenceStub.touched)
	}
}
