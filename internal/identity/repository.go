package identity

import (
	"context"

	"chatline/internal/identity/model"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks chatline/internal/identity AccountRepository

type AccountRepository interface {
	CreateAccount(ctx context.Context, a *model.Account) error
	GetAccountByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
