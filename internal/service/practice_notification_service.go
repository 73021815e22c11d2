package service

import (
	"context"
	"fmt"

	"fluentko-be/internal/pkg/logger"
	"fluentko-be/internal/repository/memory"
	"fluentko-be/pkg/events"

	"github.com/google/uuid"
)

const (
	practiceConsumerName = "practice-notification-worker"
	practiceMessageType  = "practice_event"
)

// PracticeDelivery pushes a message to a student's open practice tabs.
// Implemented by the websocket Hub.
type PracticeDelivery interface {
	Send(studentID uuid.UUID, msgType string, data interface{}) error
}

// PracticeNotification is the websocket payload for a chat event.
type PracticeNotification struct {
	Event      string                 `json:"event"`
	ChatId     interface{}            `json:"chat_id"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt string                 `json:"occurred_at"`
}

// PracticeNotificationService forwards chat events from the bus to the
// owning student's websocket connections.
type PracticeNotificationService struct {
	subscriber events.Subscriber
	delivery   PracticeDelivery
	delivered  *memory.DeliveredEventCache
	logger     logger.ILogger
}

// NewPracticeNotificationService accepts a nil delivered cache, in which case
// a redelivered event is pushed again.
func NewPracticeNotificationService(sub events.Subscriber, delivery PracticeDelivery, delivered *memory.DeliveredEventCache, log logger.ILogger) *PracticeNotificationService {
	return &PracticeNotificationService{
		subscriber: sub,
		delivery:   delivery,
		delivered:  delivered,
		logger:     log,
	}
}

func (s *PracticeNotificationService) Start() error {
	if err := s.subscriber.Subscribe(events.ChatSubjectPattern, practiceConsumerName, s.HandleEvent); err != nil {
		s.logger.Error("PracticeNotification", "Failed to start subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("PracticeNotification", fmt.Sprintf("Listening to %s", events.ChatSubjectPattern), nil)
	return nil
}

// HandleEvent never returns an error for events it cannot route, so the
// bus does not redeliver them.
func (s *PracticeNotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	studentID, ok := events.StudentID(event)
	if !ok {
		s.logger.Warn("PracticeNotification", "Event without student_id", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	payload := event.Payload()
	eventId, _ := payload["event_id"].(string)
	if s.delivered != nil && s.delivered.Seen(eventId) {
		s.logger.Debug("PracticeNotification", "Skipping redelivered event", map[string]interface{}{"event_id": eventId})
		return nil
	}

	data := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		switch k {
		case "student_id", "chat_id", "event_id":
			continue
		}
		data[k] = v
	}

	notification := PracticeNotification{
		Event:      event.EventType(),
		ChatId:     payload["chat_id"],
		Data:       data,
		OccurredAt: event.Timestamp().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}

	if err := s.delivery.Send(studentID, practiceMessageType, notification); err != nil {
		s.logger.Error("PracticeNotification", "Delivery failed", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return err
	}

	if s.delivered != nil {
		s.delivered.MarkDelivered(eventId)
	}
	return nil
}
