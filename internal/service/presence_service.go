package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ideaboard-be/internal/dto"
	"ideaboard-be/internal/websocket"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// presenceTTL is the backstop for crashed clients. A live connection
	// refreshes its slot far more often than this.
	presenceTTL = 60 * time.Second

	// cursorThrottle caps how often one user's cursor writes reach Redis
	// and the room. Mousemove events fire far faster than anyone can
	// perceive remote cursor lag.
	cursorThrottle = 50 * time.Millisecond
)

// presenceSlot is what one user's Redis key holds.
type presenceSlot struct {
	UserID    string  `json:"user_id"`
	FullName  string  `json:"full_name"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	UpdatedAt int64   `json:"updated_at"`
}

type IPresenceService interface {
	// Touch records a cursor position for the user and fans it out to the
	// room. Calls inside the throttle window update nothing.
	Touch(ctx context.Context, roomId, userId uuid.UUID, fullName, avatarURL string, x, y float64) error

	// Join writes the initial slot and announces the arrival.
	Join(ctx context.Context, c *websocket.Client) error

	// Leave drops the slot and announces the departure.
	Leave(ctx context.Context, c *websocket.Client) error

	// ListRoom returns every live presence slot in the room.
	ListRoom(ctx context.Context, roomId uuid.UUID, userIds []uuid.UUID) ([]dto.PresenceResponse, error)

	// ClearRoom removes all slots of a deleted room.
	ClearRoom(ctx context.Context, roomId uuid.UUID) error
}

type presenceService struct {
	rdb *redis.Client
	hub *websocket.Hub

	mu       sync.Mutex
	lastSent map[uuid.UUID]time.Time
}

func NewPresenceService(rdb *redis.Client, hub *websocket.Hub) IPresenceService {
	return &presenceService{
		rdb:      rdb,
		hub:      hub,
		lastSent: make(map[uuid.UUID]time.Time),
	}
}

func presenceKey(roomId, userId uuid.UUID) string {
	return fmt.Sprintf("presence:room:%s:%s", roomId, userId)
}

func (s *presenceService) allowed(userId uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if last, ok := s.lastSent[userId]; ok && now.Sub(last) < cursorThrottle {
		return false
	}
	s.lastSent[userId] = now
	return true
}

func (s *presenceService) writeSlot(ctx context.Context, roomId, userId uuid.UUID, slot presenceSlot) error {
	if s.rdb == nil {
		return nil
	}
	data, err := json.Marshal(slot)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, presenceKey(roomId, userId), data, presenceTTL).Err()
}

func (s *presenceService) Touch(ctx context.Context, roomId, userId uuid.UUID, fullName, avatarURL string, x, y float64) error {
	if !s.allowed(userId) {
		return nil
	}

	slot := presenceSlot{
		UserID:    userId.String(),
		FullName:  fullName,
		AvatarURL: avatarURL,
		X:         x,
		Y:         y,
		UpdatedAt: time.Now().UnixMilli(),
	}

	if err := s.writeSlot(ctx, roomId, userId, slot); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(roomId,
			websocket.NewMessage(websocket.TypeCursorMove, slot), userId)
	}
	return nil
}

func (s *presenceService) Join(ctx context.Context, c *websocket.Client) error {
	slot := presenceSlot{
		UserID:    c.UserID.String(),
		FullName:  c.FullName,
		AvatarURL: c.AvatarURL,
		UpdatedAt: time.Now().UnixMilli(),
	}

	if err := s.writeSlot(ctx, c.RoomID, c.UserID, slot); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(c.RoomID,
			websocket.NewMessage(websocket.TypePresenceJoin, slot), c.UserID)
	}
	return nil
}

func (s *presenceService) Leave(ctx context.Context, c *websocket.Client) error {
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, presenceKey(c.RoomID, c.UserID)).Err(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	delete(s.lastSent, c.UserID)
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.BroadcastToRoom(c.RoomID,
			websocket.NewMessage(websocket.TypePresenceLeave, map[string]string{
				"user_id": c.UserID.String(),
			}), c.UserID)
	}
	return nil
}

func (s *presenceService) ListRoom(ctx context.Context, roomId uuid.UUID, userIds []uuid.UUID) ([]dto.PresenceResponse, error) {
	if s.rdb == nil || len(userIds) == 0 {
		return []dto.PresenceResponse{}, nil
	}

	keys := make([]string, len(userIds))
	for i, id := range userIds {
		keys[i] = presenceKey(roomId, id)
	}

	results, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]dto.PresenceResponse, 0, len(results))
	for i, result := range results {
		if result == nil {
			continue // offline
		}
		strVal, ok := result.(string)
		if !ok {
			continue
		}

		var slot presenceSlot
		if err := json.Unmarshal([]byte(strVal), &slot); err != nil {
			continue
		}
		out = append(out, dto.PresenceResponse{
			UserId:    userIds[i],
			FullName:  slot.FullName,
			AvatarURL: slot.AvatarURL,
			X:         slot.X,
			Y:         slot.Y,
			UpdatedAt: slot.UpdatedAt,
		})
	}
	return out, nil
}

func (s *presenceService) ClearRoom(ctx context.Context, roomId uuid.UUID) error {
	if s.rdb == nil {
		return nil
	}

	pattern := fmt.Sprintf("presence:room:%s:*", roomId)
	iter := s.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
