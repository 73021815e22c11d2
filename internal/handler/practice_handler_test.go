package handler

import (
	"net/http/httptest"
	"testing"

	"fluentko-be/internal/pkg/logger"
	"fluentko-be/internal/pkg/serverutils"
	internalWS "fluentko-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPracticeApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "ws-secret")

	hub := internalWS.NewHub(nil, logger.NewNopLogger())
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewPracticeHandler(hub, logger.NewNopLogger()).RegisterRoutes(app.Group("/api"))
	return app
}

func TestServeWsRequiresToken(t *testing.T) {
	app := newPracticeApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/practice/v1/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/practice/v1/ws?token=garbage", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestServeWsRequiresUpgrade(t *testing.T) {
	app := newPracticeApp(t)

	token, err := serverutils.SignToken(uuid.New(), "ws-secret")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/practice/v1/ws?token="+token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
