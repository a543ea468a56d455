package usecase

import (
	"context"
	"sort"
	"strings"

	"chatline/internal/chat"
	"chatline/internal/chat/model"
	"chatline/internal/livequery"
	profileModel "chatline/internal/profile/model"
	"chatline/pkg/errors"
	"chatline/pkg/logger"

	"github.com/google/uuid"
)

// ChatUsecase serves one session: it owns that session's live conversation list.
type ChatUsecase struct {
	repo     chat.ConversationRepository
	peers    chat.PeerResolver
	profiles chat.ProfileFinder
	notifier livequery.Notifier
	logger   logger.Logger

	list livequery.Slot[chat.Entry]
}

func NewChatUsecase(repo chat.ConversationRepository, peers chat.PeerResolver, profiles chat.ProfileFinder, notifier livequery.Notifier, logger logger.Logger) *ChatUsecase {
	return &ChatUsecase{
		repo:     repo,
		peers:    peers,
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *ChatUsecase) FindExistingConversation(ctx context.Context, selfID, otherID uuid.UUID) (*model.Conversation, error) {
	conversations, err := uc.repo.ListByParticipant(ctx, selfID)
	if err != nil {
		uc.logger.Error("failed to list conversations", "user", selfID, "err", err)
		return nil, errors.Backend(err)
	}

	for i := range conversations {
		if conversations[i].HasParticipant(otherID) {
			return &conversations[i], nil
		}
	}
	return nil, nil
}

// StartConversation reuses the pair's conversation when there is one. Two
// clients starting the same pair at once can still create two.
func (uc *ChatUsecase) StartConversation(ctx context.Context, selfID, otherID uuid.UUID) (*chat.StartResult, error) {
	if selfID == otherID {
		return nil, errors.ErrSelfConversation
	}

	existing, err := uc.FindExistingConversation(ctx, selfID, otherID)
	if err != nil {
		return nil, err
	}

	result := &chat.StartResult{Conversation: existing}
	if existing == nil {
		c := &model.Conversation{
			Participants: []string{selfID.String(), otherID.String()},
			LastMessage:  model.CreatedSummary,
		}
		if err := uc.repo.CreateConversation(ctx, c); err != nil {
			uc.logger.Error("failed to create conversation", "self", selfID, "other", otherID, "err", err)
			return nil, errors.Backend(err)
		}
		uc.logger.Info("conversation created", "id", c.ID)
		result.Conversation = c
		result.Created = true

		uc.publish(ctx, livequery.ConversationsTopic(selfID), livequery.ConversationsTopic(otherID))
	}

	result.Peer = uc.resolvePeer(ctx, otherID)
	return result, nil
}

func (uc *ChatUsecase) StartConversationByUsername(ctx context.Context, selfID uuid.UUID, username string) (*chat.StartResult, error) {
	peer, err := uc.profiles.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if peer.ID == selfID {
		return nil, errors.ErrSelfConversation
	}

	result, err := uc.StartConversation(ctx, selfID, peer.ID)
	if err != nil {
		return nil, err
	}
	result.Peer = peer
	return result, nil
}

// SubscribeToConversationList replaces the session's live list with one for
// selfID. ctx bounds the subscription, not a single request.
func (uc *ChatUsecase) SubscribeToConversationList(ctx context.Context, selfID uuid.UUID, onUpdate func(livequery.Snapshot[chat.Entry])) error {
	topic := livequery.ConversationsTopic(selfID)
	open := func(ctx context.Context) (*livequery.Stream[chat.Entry], error) {
		return livequery.Subscribe(ctx, uc.notifier, topic, func(ctx context.Context) ([]chat.Entry, error) {
			return uc.listEntries(ctx, selfID)
		})
	}

	if _, err := uc.list.Replace(ctx, open, onUpdate); err != nil {
		uc.logger.Error("failed to subscribe to conversation list", "user", selfID, "err", err)
		return errors.Backend(err)
	}
	return nil
}

func (uc *ChatUsecase) Close() {
	uc.list.Close()
}

func (uc *ChatUsecase) listEntries(ctx context.Context, selfID uuid.UUID) ([]chat.Entry, error) {
	conversations, err := uc.repo.ListByParticipant(ctx, selfID)
	if err != nil {
		uc.logger.Error("conversation list query failed", "user", selfID, "err", err)
		return nil, errors.Backend(err)
	}

	entries := make([]chat.Entry, 0, len(conversations))
	for _, c := range conversations {
		peerID, ok := c.Peer(selfID)
		if !ok {
			uc.logger.Warn("skipping conversation without peer", "id", c.ID)
			continue
		}
		entries = append(entries, chat.Entry{Conversation: c, Peer: uc.resolvePeer(ctx, peerID)})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := entries[i].Conversation.LastMessageTime, entries[j].Conversation.LastMessageTime
		if ti.IsZero() != tj.IsZero() {
			return tj.IsZero()
		}
		return ti.After(tj)
	})
	return entries, nil
}

// resolvePeer falls back to an uncached placeholder when the lookup fails.
func (uc *ChatUsecase) resolvePeer(ctx context.Context, id uuid.UUID) *profileModel.Profile {
	p, err := uc.peers.Resolve(ctx, id)
	if err != nil {
		return profileModel.Placeholder(id)
	}
	return p
}

func (uc *ChatUsecase) publish(ctx context.Context, topics ...string) {
	for _, topic := range topics {
		if err := uc.notifier.Publish(ctx, topic); err != nil {
			uc.logger.Warn("failed to publish change", "topic", topic, "err", err)
		}
	}
}

