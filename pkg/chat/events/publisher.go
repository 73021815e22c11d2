package events

import (
	"context"
	"time"

	"fluentko-be/internal/pkg/logger"
	pkgEvents "fluentko-be/pkg/events"

	"github.com/google/uuid"
)

const publishTimeout = 3 * time.Second

// Publisher emits practice chat events. Failures are logged and never
// returned, so a broker outage cannot fail a chat request.
type Publisher interface {
	PublishChatCreated(ctx context.Context, studentId uuid.UUID, chatId uint, title string)
	PublishBackgroundUpdated(ctx context.Context, studentId uuid.UUID, chatId uint, background string)
	PublishChatDeleted(ctx context.Context, studentId uuid.UUID, chatId uint)
	PublishMessageLogged(ctx context.Context, studentId uuid.UUID, chatId uint, sender string)
	PublishTurnCompleted(ctx context.Context, studentId uuid.UUID, chatId uint, reply string)
	PublishTurnFailed(ctx context.Context, studentId uuid.UUID, chatId uint, reason string)
}

type BusPublisher struct {
	publisher pkgEvents.Publisher
	logger    logger.ILogger
}

// NewBusPublisher accepts a nil publisher, which turns every call into a no-op.
func NewBusPublisher(publisher pkgEvents.Publisher, logger logger.ILogger) *BusPublisher {
	return &BusPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *BusPublisher) emit(ctx context.Context, eventType string, studentId uuid.UUID, chatId uint, extra map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	// detached from the request so a client disconnect does not drop the event
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	evt := pkgEvents.NewChatEvent(eventType, studentId, chatId, extra)
	if err := p.publisher.Publish(pubCtx, evt); err != nil {
		p.logger.Error("CHAT_EVENTS", "Failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"chat_id":    chatId,
			"error":      err.Error(),
		})
	}
}

func (p *BusPublisher) PublishChatCreated(ctx context.Context, studentId uuid.UUID, chatId uint, title string) {
	p.emit(ctx, pkgEvents.ChatCreated, studentId, chatId, map[string]interface{}{"title": title})
}

func (p *BusPublisher) PublishBackgroundUpdated(ctx context.Context, studentId uuid.UUID, chatId uint, background string) {
	p.emit(ctx, pkgEvents.ChatBackgroundUpdated, studentId, chatId, map[string]interface{}{"background": background})
}

func (p *BusPublisher) PublishChatDeleted(ctx context.Context, studentId uuid.UUID, chatId uint) {
	p.emit(ctx, pkgEvents.ChatDeleted, studentId, chatId, nil)
}

func (p *BusPublisher) PublishMessageLogged(ctx context.Context, studentId uuid.UUID, chatId uint, sender string) {
	p.emit(ctx, pkgEvents.ChatMessageLogged, studentId, chatId, map[string]interface{}{"sender": sender})
}

func (p *BusPublisher) PublishTurnCompleted(ctx context.Context, studentId uuid.UUID, chatId uint, reply string) {
	p.emit(ctx, pkgEvents.ChatTurnCompleted, studentId, chatId, map[string]interface{}{"reply": reply})
}

func (p *BusPublisher) PublishTurnFailed(ctx context.Context, studentId uuid.UUID, chatId uint, reason string) {
	p.emit(ctx, pkgEvents.ChatTurnFailed, studentId, chatId, map[string]interface{}{"reason": reason})
}
