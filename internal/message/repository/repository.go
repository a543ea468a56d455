package repository

import (
	"context"

	"chatline/internal/message/model"
	"chatline/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type MessageRepository struct {
	db     *bun.DB
	logger logger.Logger
}

func NewMessageRepository(db *bun.DB, logger logger.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MessageRepository) AppendMessage(ctx context.Context, m *model.Message) error {
	_, err := r.db.NewInsert().Model(m).Returning("*").Exec(ctx)
	if err != nil {
		return r.wrap(err, "messageRepo.AppendMessage.Insert")
	}
	return nil
}

func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.NewSelect().
		Model(&messages).
		Where("conversation_id = ?", conversationID).
		OrderExpr(`"timestamp" ASC, id ASC`).
		Scan(ctx)
	if err != nil {
		return nil, r.wrap(err, "messageRepo.ListByConversation.Scan")
	}
	return messages, nil
}

// wrap logs a driver failure and annotates it with the failing operation.
func (r *MessageRepository) wrap(err error, op string) error {
	r.logger.Warn("query failed", "op", op, "err", err)
	return errors.Wrap(err, op+": ")
}
