// Package storagetest starts a throwaway PostgreSQL for repository tests.
package storagetest

import (
	"context"

	"chatline/internal/storage"

	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// StartPostgres runs postgres:16-alpine, opens it and creates the schema.
// The returned function closes the connection and terminates the container.
func StartPostgres(ctx context.Context) (*bun.DB, func(), error) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("chatline"),
		postgres.WithUsername("chatline"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to start container")
	}

	terminate := func() { _ = container.Terminate(context.Background()) }

	connStr, err := container.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		terminate()
		return nil, nil, errors.Wrap(err, "failed to get connection string")
	}

	db, err := storage.NewPostgres(ctx, connStr)
	if err != nil {
		terminate()
		return nil, nil, err
	}

	if err := storage.CreateSchema(ctx, db); err != nil {
		db.Close()
		terminate()
		return nil, nil, err
	}

	return db, func() {
		db.Close()
		terminate()
	}, nil
}
