package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "title: is required", NewValidationError("title", "is required").Error())
	assert.Equal(t, "bad body", NewValidationError("", "bad body").Error())
}

func TestGatewayErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("send turn: %w", NewGatewayError("openai", cause))

	var gwErr *GatewayError
	assert.True(t, errors.As(wrapped, &gwErr))
	assert.Equal(t, "openai", gwErr.Provider)
	assert.ErrorIs(t, wrapped, cause)
}

func TestNotFoundErrorAs(t *testing.T) {
	var err error = NewNotFoundError("chat")

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "chat not found", err.Error())
}
