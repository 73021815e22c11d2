package constant

import "time"

const (
	// Sender tags stored on chat_messages.sender
	ChatSenderUser = "user"
	ChatSenderAI   = "ai"

	DefaultChatBackground = "chat-bg1.png"

	// Returned in place of a generated reply when the completion call fails.
	// The failed turn is not persisted.
	ChatTurnFallbackReply = "AI error occurred."

	// Broker redeliveries stop well within this window (AckWait x MaxDeliver).
	DeliveredEventTTL = 10 * time.Minute

	// Upper bound of chat_sessions.background
	MaxBackgroundLength = 100
)
