package service

import (
	"context"
	"io"
	"time"

	"fluentko-be/internal/dto"
	"fluentko-be/internal/pkg/apperror"
	"fluentko-be/internal/pkg/logger"
	"fluentko-be/pkg/speech"
)

type ISpeechService interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader, size int64) (*dto.TranscriptionResponse, error)
}

type speechService struct {
	transcriber    speech.Transcriber
	logger         logger.ILogger
	requestTimeout time.Duration
}

func NewSpeechService(transcriber speech.Transcriber, logger logger.ILogger, requestTimeout time.Duration) ISpeechService {
	return &speechService{
		transcriber:    transcriber,
		logger:         logger,
		requestTimeout: requestTimeout,
	}
}

func (s *speechService) Transcribe(ctx context.Context, filename string, audio io.Reader, size int64) (*dto.TranscriptionResponse, error) {
	if audio == nil || size <= 0 {
		return nil, apperror.NewValidationError("audio", "is required")
	}

	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	text, err := s.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		s.logger.Error("SPEECH", "Transcription failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	return &dto.TranscriptionResponse{Text: text}, nil
}
