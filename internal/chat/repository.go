package chat

import (
	"context"

	"chatline/internal/chat/model"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks chatline/internal/chat ConversationRepository

type ConversationRepository interface {
	CreateConversation(ctx context.Context, c *model.Conversation) error
	GetConversation(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	// All conversations userID takes part in, latest activity first
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]model.Conversation, error)
	UpdateLastMessage(ctx context.Context, id uuid.UUID, summary string) error
}
