package handler

import (
	"fluentko-be/internal/pkg/logger"
	"fluentko-be/internal/pkg/serverutils"
	internalWS "fluentko-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// PracticeHandler upgrades practice pages to a websocket that streams the
// student's chat events.
type PracticeHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewPracticeHandler(hub *internalWS.Hub, log logger.ILogger) *PracticeHandler {
	return &PracticeHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *PracticeHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/practice/v1/ws", h.ServeWs)
}

// ServeWs authenticates with the "token" query parameter, which browsers
// can set on a websocket URL, or with a bearer header for other clients.
func (h *PracticeHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing token"))
	}

	studentID, err := serverutils.ParseStudentToken(tokenStr)
	if err != nil {
		h.logger.Warn("PracticeHandler", "Invalid token in websocket handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("PracticeHandler", "Starting websocket session", map[string]interface{}{"student_id": studentID})
		internalWS.ServeWs(h.hub, conn, studentID)
		h.logger.Info("PracticeHandler", "Websocket session ended", map[string]interface{}{"student_id": studentID})
	})(c)
}
