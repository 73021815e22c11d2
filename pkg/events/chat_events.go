package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatCreated           = "chat.created"
	ChatBackgroundUpdated = "chat.background_updated"
	ChatDeleted           = "chat.deleted"
	ChatMessageLogged     = "chat.message_logged"
	ChatTurnCompleted     = "chat.turn_completed"
	ChatTurnFailed        = "chat.turn_failed"

	ChatSubjectPattern = "events.chat.>"
)

// NewChatEvent builds a practice chat event. student_id and chat_id are
// always present in the payload; extra keys are merged on top.
func NewChatEvent(eventType string, studentId uuid.UUID, chatId uint, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"event_id":   uuid.NewString(),
		"student_id": studentId.String(),
		"chat_id":    chatId,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// StudentID reads the student_id key back from a decoded payload.
func StudentID(event Event) (uuid.UUID, bool) {
	raw, ok := event.Payload()["student_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
