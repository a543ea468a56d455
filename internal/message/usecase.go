package message

import (
	"context"

	"chatline/internal/livequery"
	"chatline/internal/message/model"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks chatline/internal/message MessageUsecase

type MessageUsecase interface {
	// Opens conversationID, replacing whatever conversation was open before
	SubscribeToMessages(ctx context.Context, conversationID uuid.UUID, onUpdate func(livequery.Snapshot[model.Message])) error

	// Returns (nil, nil) without writing when text is blank or no conversation is open.
	// uuid.Nil as conversationID means the open conversation.
	SendMessage(ctx context.Context, conversationID, senderID uuid.UUID, text string) (*model.Message, error)

	Current() uuid.UUID
	Close()
}
