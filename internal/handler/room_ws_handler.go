package handler

import (
	"context"
	"encoding/json"
	"os"

	"ideaboard-be/internal/dto"
	"ideaboard-be/internal/pkg/logger"
	"ideaboard-be/internal/service"
	internalWS "ideaboard-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoomSocketHandler owns the live-board socket: handshake, initial snapshot,
// inbound message routing and disconnect cleanup.
type RoomSocketHandler struct {
	oauthService    service.IOAuthService
	roomService     service.IRoomService
	ideaService     service.IIdeaService
	presenceService service.IPresenceService
	hub             *internalWS.Hub
	logger          logger.ILogger
}

func NewRoomSocketHandler(
	oauthService service.IOAuthService,
	roomService service.IRoomService,
	ideaService service.IIdeaService,
	presenceService service.IPresenceService,
	hub *internalWS.Hub,
	log logger.ILogger,
) *RoomSocketHandler {
	h := &RoomSocketHandler{
		oauthService:    oauthService,
		roomService:     roomService,
		ideaService:     ideaService,
		presenceService: presenceService,
		hub:             hub,
		logger:          log,
	}

	hub.OnMessage = h.route
	hub.OnDisconnect = h.onDisconnect

	return h
}

// ServeWs handles websocket requests for GET /ws/room/:roomId.
func (h *RoomSocketHandler) ServeWs(c *fiber.Ctx) error {
	// Token from query param (browser standard) or Authorization header.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("RoomSocketHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room ID"})
	}

	ctx := c.UserContext()

	// Visiting a room is joining it.
	if err := h.roomService.EnsureMembership(ctx, roomID, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to join room"})
	}

	profile, err := h.oauthService.GetProfile(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unknown user"})
	}
	avatarURL := ""
	if profile.AvatarURL != nil {
		avatarURL = *profile.AvatarURL
	}

	initial, err := h.buildRoomState(ctx, roomID, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("RoomSocketHandler", "Starting room session", map[string]interface{}{
				"user_id": userID,
				"room_id": roomID,
			})

			client := internalWS.NewClient(h.hub, conn, roomID, userID, profile.FullName, avatarURL)
			if err := h.presenceService.Join(context.Background(), client); err != nil {
				h.logger.Warn("RoomSocketHandler", "Presence join failed", map[string]interface{}{"error": err.Error()})
			}

			internalWS.ServeWs(client, initial)

			h.logger.Info("RoomSocketHandler", "Room session ended", map[string]interface{}{
				"user_id": userID,
				"room_id": roomID,
			})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *RoomSocketHandler) buildRoomState(ctx context.Context, roomID, userID uuid.UUID) ([]byte, error) {
	room, err := h.roomService.Show(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}

	ideas, err := h.ideaService.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	memberIds, err := h.roomService.MemberIds(ctx, roomID)
	if err != nil {
		return nil, err
	}
	presence, err := h.presenceService.ListRoom(ctx, roomID, memberIds)
	if err != nil {
		return nil, err
	}

	state := dto.RoomStateResponse{
		Room:     *room,
		Ideas:    derefIdeas(ideas),
		Presence: presence,
	}
	return internalWS.NewMessage(internalWS.TypeRoomState, state), nil
}

func derefIdeas(in []*dto.IdeaResponse) []dto.IdeaResponse {
	out := make([]dto.IdeaResponse, len(in))
	for i, idea := range in {
		out[i] = *idea
	}
	return out
}

// route dispatches inbound client messages.
func (h *RoomSocketHandler) route(c *internalWS.Client, msg internalWS.Message) {
	ctx := context.Background()

	switch msg.Type {
	case internalWS.TypeIdeaCreate:
		var req dto.CreateIdeaRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return
		}
		req.RoomId = c.RoomID
		if _, err := h.ideaService.Create(ctx, c.UserID, &req); err != nil {
			h.logger.Warn("RoomSocketHandler", "Idea create failed", map[string]interface{}{"error": err.Error()})
			c.SendError("create failed")
		}

	case internalWS.TypeCursorMove:
		var payload internalWS.CursorMovePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return
		}
		if err := h.presenceService.Touch(ctx, c.RoomID, c.UserID, c.FullName, c.AvatarURL, payload.X, payload.Y); err != nil {
			h.logger.Warn("RoomSocketHandler", "Presence touch failed", map[string]interface{}{"error": err.Error()})
			c.SendError("cursor update failed")
		}

	case internalWS.TypeIdeaMoved:
		var payload internalWS.IdeaMovePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return
		}
		ideaId, err := uuid.Parse(payload.Id)
		if err != nil {
			return
		}
		if err := h.ideaService.HandleMove(ctx, c.RoomID, c.UserID, ideaId, payload.X, payload.Y); err != nil {
			h.logger.Warn("RoomSocketHandler", "Idea move failed", map[string]interface{}{"error": err.Error()})
			c.SendError("move failed")
		}
	}
}

func (h *RoomSocketHandler) onDisconnect(c *internalWS.Client) {
	ctx := context.Background()

	if err := h.presenceService.Leave(ctx, c); err != nil {
		h.logger.Warn("RoomSocketHandler", "Presence leave failed", map[string]interface{}{"error": err.Error()})
	}

	// An in-flight drag must not wait out the quiet period once its
	// author is gone.
	h.ideaService.FlushRoom(c.RoomID)
}
