package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// NewClient binds an upgraded connection to a room identity.
func NewClient(hub *Hub, c *websocket.Conn, roomID, userID uuid.UUID, fullName, avatarURL string) *Client {
	return &Client{
		Hub:       hub,
		Conn:      c,
		RoomID:    roomID,
		UserID:    userID,
		FullName:  fullName,
		AvatarURL: avatarURL,
		Send:      make(chan []byte, 256),
	}
}

// ServeWs wires the client into the hub and blocks until the connection
// drops. The initial payload, when present, is queued before the pumps start
// so the client sees the room snapshot first.
func ServeWs(client *Client, initial []byte) {
	client.Hub.register <- client

	if initial != nil {
		client.trySend(initial)
	}

	go client.writePump()
	client.readPump()
}
