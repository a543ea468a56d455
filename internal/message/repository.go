package message

import (
	"context"

	chatModel "chatline/internal/chat/model"
	"chatline/internal/message/model"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks chatline/internal/message MessageRepository,ConversationStore

type MessageRepository interface {
	AppendMessage(ctx context.Context, m *model.Message) error
	// Oldest first
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]model.Message, error)
}

// ConversationStore is the part of the conversation repository a sender needs.
type ConversationStore interface {
	GetConversation(ctx context.Context, id uuid.UUID) (*chatModel.Conversation, error)
	UpdateLastMessage(ctx context.Context, id uuid.UUID, summary string) error
}
