package openai

import (
	"context"
	"errors"
	"strings"

	"fluentko-be/internal/pkg/apperror"
	"fluentko-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

const ProviderName = "openai"

type OpenAIProvider struct {
	ModelName string
	client    *goopenai.Client
}

var _ llm.LLMProvider = &OpenAIProvider{}

// NewOpenAIProvider builds a chat completion client. An empty baseURL keeps
// the library default.
func NewOpenAIProvider(apiKey, baseURL, modelName string) *OpenAIProvider {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{
		ModelName: modelName,
		client:    goopenai.NewClientWithConfig(cfg),
	}
}

func toRole(role string) string {
	switch role {
	case "assistant", "model":
		return goopenai.ChatMessageRoleAssistant
	case "system":
		return goopenai.ChatMessageRoleSystem
	default:
		return goopenai.ChatMessageRoleUser
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    toRole(msg.Role),
			Content: msg.Content,
		}
	}

	req := goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", apperror.NewGatewayError(ProviderName, err)
	}
	if len(resp.Choices) == 0 {
		return "", apperror.NewGatewayError(ProviderName, errors.New("completion returned no choices"))
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", apperror.NewGatewayError(ProviderName, errors.New("completion returned empty content"))
	}
	return content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
