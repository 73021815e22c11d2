package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id          uint
	StudentId   uuid.UUID
	Title       string
	Description string
	Difficulty  string
	Character   string
	Background  string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// OwnedBy reports whether the session belongs to the given student.
func (s *ChatSession) OwnedBy(studentId uuid.UUID) bool {
	return s != nil && s.StudentId == studentId
}
