package entity

import (
	"time"
)

// ChatMessage is one immutable turn entry. Sender is "user" or "ai".
type ChatMessage struct {
	Id            uint
	ChatSessionId uint
	Sender        string
	Content       string
	CreatedAt     time.Time
}
