package identity

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks chatline/internal/identity IdentityUsecase

// IdentityUsecase holds the process-wide sign-in state.
type IdentityUsecase interface {
	// Register creates the account and signs it in
	Register(ctx context.Context, email, password string) (*Identity, error)
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context) error
	// Current is nil when nobody is signed in
	Current() *Identity
	// Watch delivers every change after the call; cancel stops delivery
	Watch() (<-chan Change, func())
}
