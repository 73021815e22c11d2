// Package access resolves a chat for a student. A chat that exists but
// belongs to someone else is reported exactly like a missing one.
package access

import (
	"context"

	"fluentko-be/internal/entity"
	"fluentko-be/internal/pkg/apperror"
	"fluentko-be/internal/repository/specification"
	"fluentko-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const resourceChat = "chat"

type Verifier struct{}

func NewVerifier() *Verifier {
	return &Verifier{}
}

// Resolve returns the chat identified by (chatId, studentId) or a
// *apperror.NotFoundError. It always reads through uow, so a chat deleted by
// another instance is never served and a caller inside a transaction sees
// its own writes.
func (v *Verifier) Resolve(ctx context.Context, uow unitofwork.UnitOfWork, studentId uuid.UUID, chatId uint) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: chatId},
		specification.StudentOwnedBy{StudentID: studentId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError(resourceChat)
	}
	return session, nil
}
