package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs runs a client until its connection closes. The caller's goroutine
// becomes the read pump.
func ServeWs(hub *Hub, c *websocket.Conn, studentID uuid.UUID) {
	client := NewClient(hub, c, studentID)
	hub.Register(client)

	go client.writePump()
	client.readPump()
}
