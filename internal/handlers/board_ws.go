package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/worklink-app/worklink_be/internal/realtime"
	syncview "github.com/worklink-app/worklink_be/internal/sync"
)

// BoardWSHandler streams board snapshots to browsers. Each connection gets
// the full current snapshot on attach and again after every collection
// write; the connection is unregistered from the hub the moment it closes so
// no stale callback outlives its view.
type BoardWSHandler struct {
	Hub   *realtime.Hub
	Board *syncview.Board
}

func NewBoardWSHandler(hub *realtime.Hub, board *syncview.Board) *BoardWSHandler {
	return &BoardWSHandler{Hub: hub, Board: board}
}

// Handle handles one websocket connection (no JWT middleware here,
// identification is a best-effort query param like the rest of the app's
// identity model).
func (h *BoardWSHandler) Handle(c *websocket.Conn) {
	userID := c.Query("user_id") // optional, empty for guests

	client := &realtime.Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Conn:   realtime.NewWebSocketConn(c),
		Send:   make(chan []byte, 256),
	}

	// Initial attach: the current snapshot goes into the send queue before
	// the client is registered, so every broadcast the hub enqueues afterwards
	// is newer than it and the socket sees one monotonic stream.
	initial, err := json.Marshal(map[string]interface{}{
		"type": "jobs_snapshot",
		"jobs": h.Board.Jobs(),
	})
	if err == nil {
		client.Send <- initial
	}

	h.Hub.RegisterClient(client)
	defer func() {
		h.Hub.UnregisterClient(client)
		log.Printf("WebSocket: board subscriber %s disconnected\n", client.ID)
	}()

	// Forward hub broadcasts to this connection.
	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("WebSocket write error:", err)
				return
			}
		}
	}()

	// Read loop keeps the connection alive and notices the close.
	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			break
		}
		if msgType, ok := payload["type"].(string); ok && msgType == "pong" {
			continue
		}
	}
}
