package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"fluentko-be/internal/model"
	"fluentko-be/internal/pkg/logger"
	"fluentko-be/internal/repository/unitofwork"
	"fluentko-be/pkg/chat/access"
	"fluentko-be/pkg/chat/transcript"
	"fluentko-be/pkg/database"
	"fluentko-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// foreign keys are switched on by NewGormDB
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewGormDB(database.GormConfig{
		Driver:   database.DriverSQLite,
		DSN:      dsn,
		LogLevel: gormLogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.Models()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type testEnv struct {
	db       *gorm.DB
	factory  unitofwork.RepositoryFactory
	verifier *access.Verifier
	events   *recordingEvents
	logger   logger.ILogger
	llm      *mockLLM
	sessions IChatSessionService
	turns    IChatTurnService
}

func newTestEnv(t *testing.T, timeout time.Duration) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	env := &testEnv{
		db:       db,
		factory:  unitofwork.NewRepositoryFactory(db),
		verifier: access.NewVerifier(),
		events:   &recordingEvents{},
		logger:   logger.NewNopLogger(),
		llm:      new(mockLLM),
	}
	env.sessions = NewChatSessionService(env.factory, env.verifier, env.events, env.logger)
	env.turns = NewChatTurnService(env.factory, env.verifier, transcript.NewAssembler(), env.llm, env.events, env.logger, timeout)
	return env
}

func (e *testEnv) countMessages(t *testing.T, chatId uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&model.ChatMessage{}).Where("chat_session_id = ?", chatId).Count(&n).Error)
	return n
}

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// recordingEvents captures published event names in order.
type recordingEvents struct {
	mu    sync.Mutex
	names []string
}

func (r *recordingEvents) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
}

func (r *recordingEvents) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func (r *recordingEvents) PublishChatCreated(ctx context.Context, studentId uuid.UUID, chatId uint, title string) {
	r.record("chat.created")
}

func (r *recordingEvents) PublishBackgroundUpdated(ctx context.Context, studentId uuid.UUID, chatId uint, background string) {
	r.record("chat.background_updated")
}

func (r *recordingEvents) PublishChatDeleted(ctx context.Context, studentId uuid.UUID, chatId uint) {
	r.record("chat.deleted")
}

func (r *recordingEvents) PublishMessageLogged(ctx context.Context, studentId uuid.UUID, chatId uint, sender string) {
	r.record("chat.message_logged")
}

func (r *recordingEvents) PublishTurnCompleted(ctx context.Context, studentId uuid.UUID, chatId uint, reply string) {
	r.record("chat.turn_completed")
}

func (r *recordingEvents) PublishTurnFailed(ctx context.Context, studentId uuid.UUID, chatId uint, reason string) {
	r.record("chat.turn_failed")
}
