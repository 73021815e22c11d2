package openai

import (
	"context"
	"io"

	"fluentko-be/internal/pkg/apperror"
	"fluentko-be/pkg/speech"

	goopenai "github.com/sashabaranov/go-openai"
)

const ProviderName = "openai"

type Transcriber struct {
	Model  string
	client *goopenai.Client
}

var _ speech.Transcriber = &Transcriber{}

func NewTranscriber(apiKey, baseURL, model string) *Transcriber {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Transcriber{
		Model:  model,
		client: goopenai.NewClientWithConfig(cfg),
	}
}

// Transcribe streams the upload straight to the API; nothing touches disk.
func (t *Transcriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if filename == "" {
		filename = "audio.webm"
	}

	resp, err := t.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    t.Model,
		FilePath: filename,
		Reader:   audio,
		Format:   goopenai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", apperror.NewGatewayError(ProviderName, err)
	}
	return resp.Text, nil
}
