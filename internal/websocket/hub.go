package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ideaboard-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients per room. A user can hold several connections
	// to the same room (multi-tab).
	rooms map[uuid.UUID]map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// Identifies this process on the cluster channel so it can skip
	// its own publications.
	instanceID uuid.UUID

	// OnMessage routes inbound client messages. Set once at bootstrap,
	// before Run.
	OnMessage func(c *Client, msg Message)

	// OnDisconnect runs after a client is fully unregistered (presence
	// cleanup, pending position flush).
	OnDisconnect func(c *Client)

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		rdb:        rdb,
		instanceID: uuid.New(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.RoomID] == nil {
				h.rooms[client.RoomID] = make(map[*Client]bool)
			}
			h.rooms[client.RoomID][client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{
				"user_id": client.UserID,
				"room_id": client.RoomID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			removed := false
			if clients, ok := h.rooms[client.RoomID]; ok {
				if clients[client] {
					delete(clients, client)
					client.closeSend()
					removed = true
				}
				if len(clients) == 0 {
					delete(h.rooms, client.RoomID)
				}
			}
			h.mu.Unlock()
			if removed {
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{
					"user_id": client.UserID,
					"room_id": client.RoomID,
				})
				if h.OnDisconnect != nil {
					h.OnDisconnect(client)
				}
			}
		}
	}
}

// BroadcastToRoom sends data to every connection in the room, optionally
// skipping one user's connections (the sender already has the change
// applied locally). The message is also published to Redis so other
// instances can deliver it to their own room members.
func (h *Hub) BroadcastToRoom(roomID uuid.UUID, data []byte, excludeUser uuid.UUID) {
	h.deliverLocal(roomID, data, excludeUser)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterPayload{
			Origin:      h.instanceID.String(),
			RoomID:      roomID.String(),
			ExcludeUser: excludeUser.String(),
			Message:     data,
		})
		h.rdb.Publish(context.Background(), "cluster_events", payload)
	}
}

func (h *Hub) deliverLocal(roomID uuid.UUID, data []byte, excludeUser uuid.UUID) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		if excludeUser != uuid.Nil && client.UserID == excludeUser {
			continue
		}
		if !client.trySend(data) {
			h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{
				"user_id": client.UserID,
				"room_id": client.RoomID,
			})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

type clusterPayload struct {
	Origin      string          `json:"origin"`
	RoomID      string          `json:"room_id"`
	ExcludeUser string          `json:"exclude_user,omitempty"`
	Message     json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		// Skip our own publications, they were delivered locally already.
		if payload.Origin == h.instanceID.String() {
			continue
		}

		roomID, err := uuid.Parse(payload.RoomID)
		if err != nil {
			continue
		}
		excludeUser, _ := uuid.Parse(payload.ExcludeUser)

		h.deliverLocal(roomID, payload.Message, excludeUser)
	}
}
