package contract

import (
	"context"

	"fluentko-be/internal/entity"
	"fluentko-be/internal/repository/specification"
)

// ChatMessageRepository is append-only: messages are never updated.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteByChatSessionId(ctx context.Context, sessionId uint) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
