package service

import (
	"context"
	"errors"
	"strings"

	"fluentko-be/internal/constant"
	"fluentko-be/internal/dto"
	"fluentko-be/internal/entity"
	"fluentko-be/internal/pkg/apperror"
	"fluentko-be/internal/pkg/logger"
	"fluentko-be/internal/repository/contract"
	"fluentko-be/internal/repository/specification"
	"fluentko-be/internal/repository/unitofwork"
	"fluentko-be/pkg/chat/access"
	chatEvents "fluentko-be/pkg/chat/events"

	"github.com/google/uuid"
)

type IChatSessionService interface {
	Create(ctx context.Context, studentId uuid.UUID, req *dto.CreateChatRequest) (*dto.CreateChatResponse, error)
	SetBackground(ctx context.Context, studentId uuid.UUID, chatId uint, req *dto.SetBackgroundRequest) (*dto.SuccessFlagResponse, error)
	Delete(ctx context.Context, studentId uuid.UUID, chatId uint) (*dto.SuccessFlagResponse, error)
	List(ctx context.Context, studentId uuid.UUID) ([]*dto.GetAllChatsResponse, error)
	Show(ctx context.Context, studentId uuid.UUID, chatId uint) (*dto.ShowChatResponse, error)
}

type chatSessionService struct {
	uowFactory unitofwork.RepositoryFactory
	verifier   *access.Verifier
	events     chatEvents.Publisher
	logger     logger.ILogger
}

func NewChatSessionService(
	uowFactory unitofwork.RepositoryFactory,
	verifier *access.Verifier,
	events chatEvents.Publisher,
	logger logger.ILogger,
) IChatSessionService {
	return &chatSessionService{
		uowFactory: uowFactory,
		verifier:   verifier,
		events:     events,
		logger:     logger,
	}
}

func (s *chatSessionService) Create(ctx context.Context, studentId uuid.UUID, req *dto.CreateChatRequest) (*dto.CreateChatResponse, error) {
	for _, f := range []struct{ name, value string }{
		{"title", req.Title},
		{"prompt", req.Prompt},
		{"difficulty", req.Difficulty},
		{"character", req.Character},
	} {
		if err := requireText(f.name, f.value); err != nil {
			return nil, err
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := entity.ChatSession{
		StudentId:   studentId,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Prompt),
		Difficulty:  strings.TrimSpace(req.Difficulty),
		Character:   strings.TrimSpace(req.Character),
		Background:  constant.DefaultChatBackground,
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	s.logger.Info("CHAT", "Chat created", map[string]interface{}{"chat_id": session.Id, "student_id": studentId})
	s.events.PublishChatCreated(ctx, studentId, session.Id, session.Title)

	return &dto.CreateChatResponse{ChatId: session.Id}, nil
}

func (s *chatSessionService) SetBackground(ctx context.Context, studentId uuid.UUID, chatId uint, req *dto.SetBackgroundRequest) (*dto.SuccessFlagResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.verifier.Resolve(ctx, uow, studentId, chatId)
	if err != nil {
		return nil, err
	}

	background := strings.TrimSpace(req.Background)
	if err := maxText("background", background, constant.MaxBackgroundLength); err != nil {
		return nil, err
	}
	if background == "" {
		background = constant.DefaultChatBackground
	}
	session.Background = background

	err = uow.ChatSessionRepository().Update(ctx, session)
	if errors.Is(err, contract.ErrNoRowsAffected) {
		return nil, apperror.NewNotFoundError("chat")
	}
	if err != nil {
		return nil, err
	}

	s.events.PublishBackgroundUpdated(ctx, studentId, chatId, background)
	return &dto.SuccessFlagResponse{Success: true}, nil
}

// Delete removes the messages and then the chat inside one transaction.
func (s *chatSessionService) Delete(ctx context.Context, studentId uuid.UUID, chatId uint) (*dto.SuccessFlagResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if _, err := s.verifier.Resolve(ctx, uow, studentId, chatId); err != nil {
		return nil, err
	}

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, chatId); err != nil {
		return nil, err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, chatId); err != nil {
		if errors.Is(err, contract.ErrNoRowsAffected) {
			return nil, apperror.NewNotFoundError("chat")
		}
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("CHAT", "Chat deleted", map[string]interface{}{"chat_id": chatId, "student_id": studentId})
	s.events.PublishChatDeleted(ctx, studentId, chatId)

	return &dto.SuccessFlagResponse{Success: true}, nil
}

func (s *chatSessionService) List(ctx context.Context, studentId uuid.UUID) ([]*dto.GetAllChatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.StudentOwnedBy{StudentID: studentId},
		specification.NewestFirst{},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetAllChatsResponse, 0, len(sessions))
	for _, session := range sessions {
		item := toChatResponse(session)
		res = append(res, &item)
	}
	return res, nil
}

func (s *chatSessionService) Show(ctx context.Context, studentId uuid.UUID, chatId uint) (*dto.ShowChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.verifier.Resolve(ctx, uow, studentId, chatId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: chatId},
		specification.ConversationOrder{},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ShowChatResponse{
		Chat:     toChatResponse(session),
		Messages: make([]*dto.ChatMessageResponse, 0, len(messages)),
	}
	for _, msg := range messages {
		res.Messages = append(res.Messages, &dto.ChatMessageResponse{
			Id:        msg.Id,
			Sender:    msg.Sender,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}
	return res, nil
}

func toChatResponse(session *entity.ChatSession) dto.GetAllChatsResponse {
	return dto.GetAllChatsResponse{
		Id:          session.Id,
		Title:       session.Title,
		Description: session.Description,
		Difficulty:  session.Difficulty,
		Character:   session.Character,
		Background:  session.Background,
		CreatedAt:   session.CreatedAt,
	}
}
