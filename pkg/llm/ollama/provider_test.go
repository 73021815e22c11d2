package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fluentko-be/internal/pkg/apperror"
	"fluentko-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "assistant", req.Messages[1].Role)

		_ = json.NewEncoder(w).Encode(chatResponse{
			Model:   "llama3",
			Message: chatMessage{Role: "assistant", Content: "Sure!"},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "llama3")
	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Sure!", reply)
}

func TestOllamaNon200IsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "llama3").Generate(context.Background(), "hi")

	var gwErr *apperror.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, ProviderName, gwErr.Provider)
}

func TestOllamaHonoursContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewOllamaProvider(srv.URL, "llama3").Generate(ctx, "hi")

	var gwErr *apperror.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOllamaInvalidBaseURLIsGatewayError(t *testing.T) {
	_, err := NewOllamaProvider("http://[::1", "llama3").Generate(context.Background(), "hi")

	var gwErr *apperror.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, ProviderName, gwErr.Provider)
}
