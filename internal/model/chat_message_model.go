package model

import (
	"time"
)

type ChatMessage struct {
	Id            uint         `gorm:"primaryKey;autoIncrement"`
	ChatSessionId uint         `gorm:"not null;index:idx_chat_messages_order,priority:1"`
	ChatSession   *ChatSession `gorm:"foreignKey:ChatSessionId;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Sender        string       `gorm:"type:varchar(20);not null"`
	Content       string       `gorm:"type:text;not null"`
	CreatedAt     time.Time    `gorm:"autoCreateTime;index:idx_chat_messages_order,priority:2"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
