package usecase

import (
	"context"
	"strings"
	"sync"

	"chatline/config"
	chatModel "chatline/internal/chat/model"
	chatRepository "chatline/internal/chat/repository"
	"chatline/internal/livequery"
	"chatline/internal/message"
	"chatline/internal/message/model"
	"chatline/pkg/errors"
	"chatline/pkg/logger"
	"chatline/pkg/utils"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/ratelimit"
)

// MessageUsecase serves one session: it tracks the open conversation and owns
// the live subscription to its messages.
type MessageUsecase struct {
	repo          message.MessageRepository
	conversations message.ConversationStore
	notifier      livequery.Notifier
	logger        logger.Logger

	// nil when sending is not throttled
	limiter ratelimit.Limiter

	stream livequery.Slot[model.Message]

	mu      sync.Mutex
	current uuid.UUID
}

func NewMessageUsecase(repo message.MessageRepository, conversations message.ConversationStore, notifier livequery.Notifier, logger logger.Logger, config config.Config) *MessageUsecase {
	uc := &MessageUsecase{
		repo:          repo,
		conversations: conversations,
		notifier:      notifier,
		logger:        logger,
	}
	if rate := config.Session.SendRatePerSecond; rate > 0 {
		uc.limiter = ratelimit.New(rate, ratelimit.WithoutSlack)
	}
	return uc
}

// SubscribeToMessages makes conversationID the open conversation. The previous
// subscription is cancelled before the new one starts.
func (uc *MessageUsecase) SubscribeToMessages(ctx context.Context, conversationID uuid.UUID, onUpdate func(livequery.Snapshot[model.Message])) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	topic := livequery.MessagesTopic(conversationID)
	open := func(ctx context.Context) (*livequery.Stream[model.Message], error) {
		return livequery.Subscribe(ctx, uc.notifier, topic, func(ctx context.Context) ([]model.Message, error) {
			messages, err := uc.repo.ListByConversation(ctx, conversationID)
			if err != nil {
				uc.logger.Error("message query failed", "conversation", conversationID, "err", err)
				return nil, errors.Backend(err)
			}
			return messages, nil
		})
	}

	if _, err := uc.stream.Replace(ctx, open, onUpdate); err != nil {
		uc.current = uuid.Nil
		uc.logger.Error("failed to subscribe to messages", "conversation", conversationID, "err", err)
		return errors.Backend(err)
	}
	uc.current = conversationID
	return nil
}

func (uc *MessageUsecase) SendMessage(ctx context.Context, conversationID, senderID uuid.UUID, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	current := uc.Current()
	if text == "" || current == uuid.Nil {
		return nil, nil
	}
	if conversationID == uuid.Nil {
		conversationID = current
	}

	conversation, err := uc.conversations.GetConversation(ctx, conversationID)
	if err != nil {
		if pkgerrors.Is(err, chatRepository.ErrConversationNotFound) {
			return nil, errors.ErrConversationGone
		}
		uc.logger.Error("failed to load conversation", "id", conversationID, "err", err)
		return nil, errors.Backend(err)
	}
	if !conversation.HasParticipant(senderID) {
		return nil, errors.ErrNotParticipant
	}

	if uc.limiter != nil {
		uc.limiter.Take()
		// Take cannot be interrupted; drop the send if the request expired while throttled
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("send throttled past request deadline", "conversation", conversationID)
			return nil, errors.Backend(err)
		}
	}

	m := &model.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
	}
	if err := uc.repo.AppendMessage(ctx, m); err != nil {
		uc.logger.Error("failed to append message", "conversation", conversationID, "err", err)
		return nil, errors.Backend(err)
	}

	// the message is already stored; a stale summary is tolerated
	if err := uc.conversations.UpdateLastMessage(ctx, conversationID, utils.Summarize(text)); err != nil {
		uc.logger.Warn("failed to update conversation summary", "conversation", conversationID, "err", err)
	}

	uc.publish(ctx, conversation, livequery.MessagesTopic(conversationID))
	return m, nil
}

func (uc *MessageUsecase) Current() uuid.UUID {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.current
}

func (uc *MessageUsecase) Close() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.stream.Close()
	uc.current = uuid.Nil
}

func (uc *MessageUsecase) publish(ctx context.Context, c *chatModel.Conversation, topic string) {
	topics := []string{topic}
	for _, p := range c.Participants {
		if id, err := uuid.Parse(p); err == nil {
			topics = append(topics, livequery.ConversationsTopic(id))
		}
	}
	for _, t := range topics {
		if err := uc.notifier.Publish(ctx, t); err != nil {
			uc.logger.Warn("failed to publish change", "topic", t, "err", err)
		}
	}
}
