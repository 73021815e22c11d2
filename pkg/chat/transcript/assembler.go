// Package transcript turns a stored chat history into the role-tagged
// message list sent to the completion gateway.
package transcript

import (
	"context"

	"fluentko-be/internal/constant"
	"fluentko-be/internal/entity"
	"fluentko-be/internal/repository/specification"
	"fluentko-be/internal/repository/unitofwork"
	"fluentko-be/pkg/llm"
)

type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble keeps every message in the given order. Messages sent by the AI
// become assistant turns and everything else is a user turn. No windowing
// or summarisation is applied.
func (a *Assembler) Assemble(messages []*entity.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		role := llm.RoleUser
		if msg.Sender == constant.ChatSenderAI {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: msg.Content})
	}
	return out
}

// Load reads the full conversation of a chat in conversation order and
// assembles it.
func (a *Assembler) Load(ctx context.Context, uow unitofwork.UnitOfWork, chatId uint) ([]llm.Message, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: chatId},
		specification.ConversationOrder{},
	)
	if err != nil {
		return nil, err
	}
	return a.Assemble(messages), nil
}
