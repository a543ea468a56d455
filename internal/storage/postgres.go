// Package storage opens the PostgreSQL document store and creates its schema.
package storage

import (
	"context"
	"database/sql"

	chatModel "chatline/internal/chat/model"
	identityModel "chatline/internal/identity/model"
	messageModel "chatline/internal/message/model"
	profileModel "chatline/internal/profile/model"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

func NewPostgres(ctx context.Context, dsn string) (*bun.DB, error) {
	connector := pgdriver.NewConnector(pgdriver.WithDSN(dsn))
	sqlDB := sql.OpenDB(connector)
	db := bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "storage.NewPostgres.Ping")
	}
	return db, nil
}

// Models lists every table in creation order.
func Models() []any {
	return []any{
		(*identityModel.Account)(nil),
		(*profileModel.Profile)(nil),
		(*chatModel.Conversation)(nil),
		(*messageModel.Message)(nil),
	}
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS profiles_username_idx ON profiles (username COLLATE "C")`,
	`CREATE INDEX IF NOT EXISTS conversations_participants_idx ON conversations USING GIN (participants)`,
	`CREATE INDEX IF NOT EXISTS messages_conversation_ts_idx ON messages (conversation_id, "timestamp")`,
}

// CreateSchema creates missing tables and indexes. It is safe to run repeatedly.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, m := range Models() {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().WithForeignKeys().Exec(ctx); err != nil {
			return errors.Wrapf(err, "storage.CreateSchema: table for %T", m)
		}
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "storage.CreateSchema: index")
		}
	}
	return nil
}

// Truncate empties every table; used between integration tests.
func Truncate(ctx context.Context, db *bun.DB) error {
	_, err := db.ExecContext(ctx, `TRUNCATE TABLE messages, conversations, profiles, accounts RESTART IDENTITY CASCADE`)
	return errors.Wrap(err, "storage.Truncate")
}
