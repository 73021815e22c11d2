package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id          uint      `gorm:"primaryKey;autoIncrement"`
	StudentId   uuid.UUID `gorm:"type:varchar(36);not null;index"` // Ownership, never shared
	Title       string    `gorm:"type:varchar(150);not null"`
	Description string    `gorm:"type:text;not null"`
	Difficulty  string    `gorm:"type:varchar(50);not null"`
	Character   string    `gorm:"type:varchar(50);not null"`
	Background  string    `gorm:"type:varchar(100);not null;default:'chat-bg1.png'"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
