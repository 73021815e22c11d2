package factory

import (
	"testing"

	"fluentko-be/pkg/llm/ollama"
	"fluentko-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	t.Run("openai default model", func(t *testing.T) {
		p, err := NewLLMProvider(ProviderConfig{Provider: "openai", OpenAIAPIKey: "k"})
		require.NoError(t, err)
		oa, ok := p.(*openai.OpenAIProvider)
		require.True(t, ok)
		assert.Equal(t, "gpt-4.1-mini", oa.ModelName)
	})

	t.Run("openai without key", func(t *testing.T) {
		_, err := NewLLMProvider(ProviderConfig{Provider: "openai"})
		assert.Error(t, err)
	})

	t.Run("ollama default url", func(t *testing.T) {
		p, err := NewLLMProvider(ProviderConfig{Provider: "ollama", Model: "llama3"})
		require.NoError(t, err)
		ol, ok := p.(*ollama.OllamaProvider)
		require.True(t, ok)
		assert.Equal(t, "http://localhost:11434", ol.BaseURL)
	})

	t.Run("ollama without model", func(t *testing.T) {
		_, err := NewLLMProvider(ProviderConfig{Provider: "ollama"})
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewLLMProvider(ProviderConfig{Provider: "bard"})
		assert.Error(t, err)
	})
}
