package dto

import (
	"time"
)

type CreateChatRequest struct {
	Title      string `json:"title" validate:"required,notblank,max=150"`
	Prompt     string `json:"prompt" validate:"required,notblank"`
	Difficulty string `json:"difficulty" validate:"required,notblank,max=50"`
	Character  string `json:"character" validate:"required,notblank,max=50"`
}

type CreateChatResponse struct {
	ChatId uint `json:"chat_id"`
}

type GetAllChatsResponse struct {
	Id          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	Character   string    `json:"character"`
	Background  string    `json:"background"`
	CreatedAt   time.Time `json:"created_at"`
}

type ChatMessageResponse struct {
	Id        uint      `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ShowChatResponse struct {
	Chat     GetAllChatsResponse    `json:"chat"`
	Messages []*ChatMessageResponse `json:"messages"`
}

// An empty background resets the chat to the default one. The length is
// checked by the service once ownership is confirmed.
type SetBackgroundRequest struct {
	Background string `json:"background"`
}

type SuccessFlagResponse struct {
	Success bool `json:"success"`
}

type ChatMessageRequest struct {
	Message string `json:"message" validate:"required,notblank"`
}

type LoggedMessage struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

type AppendMessageResponse struct {
	Success bool          `json:"success"`
	Message LoggedMessage `json:"message"`
}

type SendTurnResponse struct {
	Reply string `json:"reply"`
}
