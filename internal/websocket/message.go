package websocket

import "encoding/json"

// Message is the envelope for everything crossing the room socket, in both
// directions.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Message types. Most flow server -> client; idea.create, idea.moved and
// cursor.move also arrive from clients.
const (
	TypeRoomState     = "room.state"
	TypeRoomDeleted   = "room.deleted"
	TypeRoomRenamed   = "room.renamed"
	TypeIdeaCreated   = "idea.created"
	TypeIdeaUpdated   = "idea.updated"
	TypeIdeaDeleted   = "idea.deleted"
	TypeIdeaMoved     = "idea.moved"
	TypeIdeaRecolored = "idea.recolored"
	TypeIdeaCreate    = "idea.create"
	TypeCursorMove    = "cursor.move"
	TypePresenceJoin  = "presence.joined"
	TypePresenceLeave = "presence.left"
	TypeError         = "error"
)

// NewMessage serializes a typed envelope. Marshal errors are not expected for
// our own DTOs, so the error is swallowed the way the hub already does.
func NewMessage(msgType string, data interface{}) []byte {
	raw, _ := json.Marshal(data)
	out, _ := json.Marshal(Message{Type: msgType, Data: raw})
	return out
}

// CursorMovePayload is sent by clients as they move across the canvas.
type CursorMovePayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IdeaMovePayload is sent by clients while dragging a note.
type IdeaMovePayload struct {
	Id string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}
