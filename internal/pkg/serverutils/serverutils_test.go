package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"fluentko-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title string `json:"title" validate:"required,notblank"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Title: "Cafe"}))

	err := ValidateRequest(sampleRequest{Title: "   "})
	var vErr *apperror.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "title", vErr.Field)
}

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", apperror.NewValidationError("title", "is required"), 400},
		{"not found", apperror.NewNotFoundError("chat"), 404},
		{"gateway", apperror.NewGatewayError("openai", errors.New("down")), 502},
		{"fiber", fiber.NewError(fiber.StatusUnauthorized, "nope"), 401},
		{"other", errors.New("boom"), 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := StatusFromError(tc.err)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/me", JwtMiddleware, func(ctx *fiber.Ctx) error {
		id, err := StudentId(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", id.String()))
	})

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := SignToken(uuid.New(), "other-secret")
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		studentId := uuid.New()
		token, err := SignToken(studentId, "test-secret")
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var res BaseResponse[string]
		require.NoError(t, json.Unmarshal(body, &res))
		assert.True(t, res.Success)
		assert.Equal(t, studentId.String(), res.Data)
	})
}
