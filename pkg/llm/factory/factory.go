package factory

import (
	"fmt"

	"fluentko-be/pkg/llm"
	"fluentko-be/pkg/llm/ollama"
	"fluentko-be/pkg/llm/openai"
)

const DefaultOpenAIModel = "gpt-4.1-mini"

type ProviderConfig struct {
	Provider      string // "openai" or "ollama"
	Model         string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaBaseURL string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case openai.ProviderName, "":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		model := cfg.Model
		if model == "" {
			model = DefaultOpenAIModel
		}
		return openai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, model), nil
	case ollama.ProviderName:
		// the model must already be pulled on the Ollama host
		if cfg.Model == "" {
			return nil, fmt.Errorf("LLM_MODEL is required for the ollama provider")
		}
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
