package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"fluentko-be/internal/pkg/apperror"
	"fluentko-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTranscriber struct {
	mock.Mock
}

func (m *mockTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	args := m.Called(ctx, filename, audio)
	return args.String(0), args.Error(1)
}

func TestSpeechService_Transcribe(t *testing.T) {
	ctx := context.Background()

	t.Run("returns text", func(t *testing.T) {
		tr := new(mockTranscriber)
		tr.On("Transcribe", mock.Anything, "clip.webm", mock.Anything).Return("one latte", nil).Once()

		svc := NewSpeechService(tr, logger.NewNopLogger(), time.Second)
		res, err := svc.Transcribe(ctx, "clip.webm", strings.NewReader("audio"), 5)

		require.NoError(t, err)
		assert.Equal(t, "one latte", res.Text)
		tr.AssertExpectations(t)
	})

	t.Run("missing audio", func(t *testing.T) {
		tr := new(mockTranscriber)
		svc := NewSpeechService(tr, logger.NewNopLogger(), time.Second)

		_, err := svc.Transcribe(ctx, "clip.webm", strings.NewReader(""), 0)

		var vErr *apperror.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "audio", vErr.Field)
		tr.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("provider failure propagates", func(t *testing.T) {
		tr := new(mockTranscriber)
		tr.On("Transcribe", mock.Anything, mock.Anything, mock.Anything).
			Return("", apperror.NewGatewayError("openai", errors.New("bad gateway"))).Once()

		svc := NewSpeechService(tr, logger.NewNopLogger(), time.Second)
		_, err := svc.Transcribe(ctx, "clip.webm", strings.NewReader("audio"), 5)

		var gwErr *apperror.GatewayError
		assert.True(t, errors.As(err, &gwErr))
	})
}
