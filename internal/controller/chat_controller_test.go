package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fluentko-be/internal/dto"
	"fluentko-be/internal/pkg/apperror"
	"fluentko-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-secret"

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) Create(ctx context.Context, studentId uuid.UUID, req *dto.CreateChatRequest) (*dto.CreateChatResponse, error) {
	args := m.Called(ctx, studentId, req)
	res, _ := args.Get(0).(*dto.CreateChatResponse)
	return res, args.Error(1)
}

func (m *mockSessionService) SetBackground(ctx context.Context, studentId uuid.UUID, chatId uint, req *dto.SetBackgroundRequest) (*dto.SuccessFlagResponse, error) {
	args := m.Called(ctx, studentId, chatId, req)
	res, _ := args.Get(0).(*dto.SuccessFlagResponse)
	return res, args.Error(1)
}

func (m *mockSessionService) Delete(ctx context.Context, studentId uuid.UUID, chatId uint) (*dto.SuccessFlagResponse, error) {
	args := m.Called(ctx, studentId, chatId)
	res, _ := args.Get(0).(*dto.SuccessFlagResponse)
	return res, args.Error(1)
}

func (m *mockSessionService) List(ctx context.Context, studentId uuid.UUID) ([]*dto.GetAllChatsResponse, error) {
	args := m.Called(ctx, studentId)
	res, _ := args.Get(0).([]*dto.GetAllChatsResponse)
	return res, args.Error(1)
}

func (m *mockSessionService) Show(ctx context.Context, studentId uuid.UUID, chatId uint) (*dto.ShowChatResponse, error) {
	args := m.Called(ctx, studentId, chatId)
	res, _ := args.Get(0).(*dto.ShowChatResponse)
	return res, args.Error(1)
}

type mockTurnService struct {
	mock.Mock
}

func (m *mockTurnService) SendTurn(ctx context.Context, studentId uuid.UUID, chatId uint, req *dto.ChatMessageRequest) (*dto.SendTurnResponse, error) {
	args := m.Called(ctx, studentId, chatId, req)
	res, _ := args.Get(0).(*dto.SendTurnResponse)
	return res, args.Error(1)
}

func (m *mockTurnService) AppendMessage(ctx context.Context, studentId uuid.UUID, chatId uint, req *dto.ChatMessageRequest) (*dto.AppendMessageResponse, error) {
	args := m.Called(ctx, studentId, chatId, req)
	res, _ := args.Get(0).(*dto.AppendMessageResponse)
	return res, args.Error(1)
}

type mockSpeechService struct {
	mock.Mock
}

func (m *mockSpeechService) Transcribe(ctx context.Context, filename string, audio io.Reader, size int64) (*dto.TranscriptionResponse, error) {
	args := m.Called(ctx, filename, audio, size)
	res, _ := args.Get(0).(*dto.TranscriptionResponse)
	return res, args.Error(1)
}

type testApp struct {
	app       *fiber.App
	sessions  *mockSessionService
	turns     *mockTurnService
	speech    *mockSpeechService
	studentId uuid.UUID
	token     string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	ta := &testApp{
		sessions:  new(mockSessionService),
		turns:     new(mockTurnService),
		speech:    new(mockSpeechService),
		studentId: uuid.New(),
	}
	token, err := serverutils.SignToken(ta.studentId, testSecret)
	require.NoError(t, err)
	ta.token = token

	ta.app = fiber.New()
	ta.app.Use(serverutils.ErrorHandlerMiddleware())
	api := ta.app.Group("/api")
	NewChatController(ta.sessions, ta.turns).RegisterRoutes(api)
	NewSpeechController(ta.speech).RegisterRoutes(api)
	return ta
}

func (ta *testApp) do(t *testing.T, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+ta.token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return ta.send(t, req)
}

func (ta *testApp) send(t *testing.T, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := ta.app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func TestChatController_RequiresToken(t *testing.T) {
	ta := newTestApp(t)

	resp, err := ta.app.Test(httptest.NewRequest("GET", "/api/chat/v1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestChatController_Create(t *testing.T) {
	ta := newTestApp(t)

	ta.sessions.On("Create", mock.Anything, ta.studentId, mock.MatchedBy(func(r *dto.CreateChatRequest) bool {
		return r.Title == "Cafe Order" && r.Prompt == "Order coffee"
	})).Return(&dto.CreateChatResponse{ChatId: 12}, nil).Once()

	resp, body := ta.do(t, "POST", "/api/chat/v1",
		`{"title":"Cafe Order","prompt":"Order coffee","difficulty":"easy","character":"barista"}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(12), body["data"].(map[string]interface{})["chat_id"])
	ta.sessions.AssertExpectations(t)
}

func TestChatController_CreateValidation(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.do(t, "POST", "/api/chat/v1", `{"title":"  ","prompt":"Order coffee","difficulty":"easy","character":"barista"}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "title")
	ta.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestChatController_NotFoundMapping(t *testing.T) {
	ta := newTestApp(t)

	ta.sessions.On("Show", mock.Anything, ta.studentId, uint(99)).Return(nil, apperror.NewNotFoundError("chat")).Once()

	resp, body := ta.do(t, "GET", "/api/chat/v1/99", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "chat not found", body["message"])

	// malformed ids look exactly like unknown ones
	resp, body = ta.do(t, "GET", "/api/chat/v1/abc", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "chat not found", body["message"])

	ta.sessions.AssertExpectations(t)
}

func TestChatController_SendTurn(t *testing.T) {
	ta := newTestApp(t)

	ta.turns.On("SendTurn", mock.Anything, ta.studentId, uint(4), &dto.ChatMessageRequest{Message: "Hello"}).
		Return(&dto.SendTurnResponse{Reply: "AI error occurred."}, nil).Once()

	resp, body := ta.do(t, "POST", "/api/chat/v1/4/turn", `{"message":"Hello"}`)

	// the fallback reply is still a successful response
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "AI error occurred.", body["data"].(map[string]interface{})["reply"])
	ta.turns.AssertExpectations(t)
}

func TestChatController_AppendMessageValidation(t *testing.T) {
	ta := newTestApp(t)

	ta.turns.On("AppendMessage", mock.Anything, ta.studentId, uint(4), &dto.ChatMessageRequest{Message: ""}).
		Return(nil, apperror.NewValidationError("message", "is required")).Once()

	resp, _ := ta.do(t, "POST", "/api/chat/v1/4/messages", `{"message":""}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	ta.turns.AssertExpectations(t)
}

func TestChatController_DeleteAndBackground(t *testing.T) {
	ta := newTestApp(t)

	ta.sessions.On("Delete", mock.Anything, ta.studentId, uint(5)).Return(&dto.SuccessFlagResponse{Success: true}, nil).Once()
	ta.sessions.On("SetBackground", mock.Anything, ta.studentId, uint(5), &dto.SetBackgroundRequest{Background: "chat-bg2.png"}).
		Return(&dto.SuccessFlagResponse{Success: true}, nil).Once()

	resp, _ := ta.do(t, "PUT", "/api/chat/v1/5/background", `{"background":"chat-bg2.png"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := ta.do(t, "DELETE", "/api/chat/v1/5", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["data"].(map[string]interface{})["success"])

	ta.sessions.AssertExpectations(t)
}

func TestChatController_BackgroundOnForeignChatIsNotFound(t *testing.T) {
	ta := newTestApp(t)
	tooLong := strings.Repeat("b", 101)

	ta.sessions.On("SetBackground", mock.Anything, ta.studentId, uint(77), &dto.SetBackgroundRequest{Background: tooLong}).
		Return(nil, apperror.NewNotFoundError("chat")).Once()

	resp, body := ta.do(t, "PUT", "/api/chat/v1/77/background", `{"background":"`+tooLong+`"}`)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "chat not found", body["message"])
	ta.sessions.AssertExpectations(t)
}

func TestSpeechController_Transcribe(t *testing.T) {
	ta := newTestApp(t)

	ta.speech.On("Transcribe", mock.Anything, "clip.webm", mock.Anything, int64(10)).
		Return(&dto.TranscriptionResponse{Text: "one latte"}, nil).Once()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", "clip.webm")
	require.NoError(t, err)
	_, _ = part.Write([]byte("0123456789"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/speech/v1", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ta.token)

	resp, body := ta.send(t, req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "one latte", body["data"].(map[string]interface{})["text"])
	ta.speech.AssertExpectations(t)
}

func TestSpeechController_MissingAudio(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.do(t, "POST", "/api/speech/v1", "")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "audio")
}
