package chat

import (
	"context"

	"chatline/internal/chat/model"
	"chatline/internal/livequery"
	profileModel "chatline/internal/profile/model"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks chatline/internal/chat ChatUsecase,PeerResolver,ProfileFinder

type ChatUsecase interface {
	// Linear scan of self's conversations; symmetric in self and other
	FindExistingConversation(ctx context.Context, selfID, otherID uuid.UUID) (*model.Conversation, error)

	// Reuse the pair's conversation or create one
	StartConversation(ctx context.Context, selfID, otherID uuid.UUID) (*StartResult, error)
	StartConversationByUsername(ctx context.Context, selfID uuid.UUID, username string) (*StartResult, error)

	// One live list per session; subscribing again replaces the previous list
	SubscribeToConversationList(ctx context.Context, selfID uuid.UUID, onUpdate func(livequery.Snapshot[Entry])) error
	Close()
}

// PeerResolver maps a participant id to a display profile, normally through
// the session's directory cache.
type PeerResolver interface {
	Resolve(ctx context.Context, id uuid.UUID) (*profileModel.Profile, error)
}

type ProfileFinder interface {
	FindByUsername(ctx context.Context, username string) (*profileModel.Profile, error)
}
