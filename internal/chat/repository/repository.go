package repository

import (
	"context"
	"database/sql"

	"chatline/internal/chat/model"
	"chatline/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type ConversationRepository struct {
	db     *bun.DB
	logger logger.Logger
}

var (
	ErrConversationNotFound = errors.New("conversation not found")
)

func NewConversationRepository(db *bun.DB, logger logger.Logger) *ConversationRepository {
	return &ConversationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ConversationRepository) CreateConversation(ctx context.Context, c *model.Conversation) error {
	_, err := r.db.NewInsert().Model(c).Returning("*").Exec(ctx)
	if err != nil {
		return r.wrap(err, "chatRepo.CreateConversation.Insert")
	}
	return nil
}

func (r *ConversationRepository) GetConversation(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	c := new(model.Conversation)
	err := r.db.NewSelect().Model(c).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, r.wrap(err, "chatRepo.GetConversation.Scan")
	}
	return c, nil
}

func (r *ConversationRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := r.db.NewSelect().
		Model(&conversations).
		// array-contains; served by the GIN index on participants
		Where("participants @> ARRAY[?]::varchar[]", userID.String()).
		OrderExpr("last_message_time DESC NULLS LAST").
		Scan(ctx)
	if err != nil {
		return nil, r.wrap(err, "chatRepo.ListByParticipant.Scan")
	}
	return conversations, nil
}

func (r *ConversationRepository) UpdateLastMessage(ctx context.Context, id uuid.UUID, summary string) error {
	res, err := r.db.NewUpdate().
		Model((*model.Conversation)(nil)).
		Set("last_message = ?", summary).
		Set("last_message_time = current_timestamp").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.wrap(err, "chatRepo.UpdateLastMessage.Update")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// wrap logs a driver failure and annotates it with the failing operation.
func (r *ConversationRepository) wrap(err error, op string) error {
	r.logger.Warn("query failed", "op", op, "err", err)
	return errors.Wrap(err, op+": ")
}
