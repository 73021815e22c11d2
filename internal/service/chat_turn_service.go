package service

import (
	"context"
	"errors"
	"time"

	"fluentko-be/internal/constant"
	"fluentko-be/internal/dto"
	"fluentko-be/internal/entity"
	"fluentko-be/internal/pkg/apperror"
	"fluentko-be/internal/pkg/logger"
	"fluentko-be/internal/repository/contract"
	"fluentko-be/internal/repository/unitofwork"
	"fluentko-be/pkg/chat/access"
	chatEvents "fluentko-be/pkg/chat/events"
	"fluentko-be/pkg/chat/transcript"
	"fluentko-be/pkg/llm"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "fluentko-be/chat"

type IChatTurnService interface {
	// SendTurn logs the student's message, asks the completion provider for
	// a reply over the full transcript and logs the reply. A provider
	// failure yields the fallback reply and leaves only the student's
	// message stored.
	SendTurn(ctx context.Context, studentId uuid.UUID, chatId uint, req *dto.ChatMessageRequest) (*dto.SendTurnResponse, error)

	// AppendMessage logs a student message without requesting a reply.
	AppendMessage(ctx context.Context, studentId uuid.UUID, chatId uint, req *dto.ChatMessageRequest) (*dto.AppendMessageResponse, error)
}

type chatTurnService struct {
	uowFactory     unitofwork.RepositoryFactory
	verifier       *access.Verifier
	assembler      *transcript.Assembler
	llmProvider    llm.LLMProvider
	events         chatEvents.Publisher
	logger         logger.ILogger
	requestTimeout time.Duration
}

func NewChatTurnService(
	uowFactory unitofwork.RepositoryFactory,
	verifier *access.Verifier,
	assembler *transcript.Assembler,
	llmProvider llm.LLMProvider,
	events chatEvents.Publisher,
	logger logger.ILogger,
	requestTimeout time.Duration,
) IChatTurnService {
	return &chatTurnService{
		uowFactory:     uowFactory,
		verifier:       verifier,
		assembler:      assembler,
		llmProvider:    llmProvider,
		events:         events,
		logger:         logger,
		requestTimeout: requestTimeout,
	}
}

// logStudentMessage authorizes, validates and stores the inbound message in
// its own committed write.
func (s *chatTurnService) logStudentMessage(ctx context.Context, uow unitofwork.UnitOfWork, studentId uuid.UUID, chatId uint, content string) (*entity.ChatMessage, error) {
	if _, err := s.verifier.Resolve(ctx, uow, studentId, chatId); err != nil {
		return nil, err
	}
	if err := requireText("message", content); err != nil {
		return nil, err
	}

	msg := entity.ChatMessage{
		ChatSessionId: chatId,
		Sender:        constant.ChatSenderUser,
		Content:       content,
	}
	if err := s.insert(ctx, uow, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// insert reports a chat deleted after Resolve like any missing chat.
func (s *chatTurnService) insert(ctx context.Context, uow unitofwork.UnitOfWork, msg *entity.ChatMessage) error {
	err := uow.ChatMessageRepository().Create(ctx, msg)
	if errors.Is(err, contract.ErrParentMissing) {
		return apperror.NewNotFoundError("chat")
	}
	return err
}

func (s *chatTurnService) AppendMessage(ctx context.Context, studentId uuid.UUID, chatId uint, req *dto.ChatMessageRequest) (*dto.AppendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := s.logStudentMessage(ctx, uow, studentId, chatId, req.Message)
	if err != nil {
		return nil, err
	}

	s.events.PublishMessageLogged(ctx, studentId, chatId, msg.Sender)

	return &dto.AppendMessageResponse{
		Success: true,
		Message: dto.LoggedMessage{Sender: msg.Sender, Content: msg.Content},
	}, nil
}

func (s *chatTurnService) SendTurn(ctx context.Context, studentId uuid.UUID, chatId uint, req *dto.ChatMessageRequest) (*dto.SendTurnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.logStudentMessage(ctx, uow, studentId, chatId, req.Message); err != nil {
		return nil, err
	}

	history, err := s.assembler.Load(ctx, uow, chatId)
	if err != nil {
		return nil, err
	}

	reply, err := s.generate(ctx, chatId, history)
	if err != nil {
		s.logger.Error("ChatTurn", "Completion failed, returning fallback reply", map[string]interface{}{
			"chat_id":    chatId,
			"student_id": studentId,
			"error":      err.Error(),
		})
		s.events.PublishTurnFailed(ctx, studentId, chatId, err.Error())
		return &dto.SendTurnResponse{Reply: constant.ChatTurnFallbackReply}, nil
	}

	aiMsg := entity.ChatMessage{
		ChatSessionId: chatId,
		Sender:        constant.ChatSenderAI,
		Content:       reply,
	}
	if err := s.insert(ctx, uow, &aiMsg); err != nil {
		return nil, err
	}

	s.events.PublishTurnCompleted(ctx, studentId, chatId, reply)
	return &dto.SendTurnResponse{Reply: reply}, nil
}

func (s *chatTurnService) generate(ctx context.Context, chatId uint, history []llm.Message) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "chat.generate_reply",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.Int64("chat.id", int64(chatId)),
			attribute.Int("chat.transcript_length", len(history)),
		),
	)
	defer span.End()

	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.llmProvider.Chat(ctx, history)
	span.SetAttributes(attribute.Int64("llm.duration_ms", time.Since(start).Milliseconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", err
	}
	return reply, nil
}
