package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uint
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

// StudentOwnedBy restricts chat sessions to the owning student.
type StudentOwnedBy struct {
	StudentID uuid.UUID
}

func (s StudentOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("student_id = ?", s.StudentID)
}

// ConversationOrder is the canonical message order: insertion time, then id.
// The id tie-break keeps the order stable when two inserts share a timestamp.
type ConversationOrder struct{}

func (s ConversationOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

// NewestFirst orders chat sessions most recent first.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
