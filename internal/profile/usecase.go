package profile

import (
	"context"

	"chatline/internal/profile/model"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks chatline/internal/profile ProfileUsecase

type ProfileUsecase interface {
	// Create the profile of a freshly registered identity with a generated username
	CreateProfile(ctx context.Context, identityID uuid.UUID, email string) (*model.Profile, error)

	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	FindByUsername(ctx context.Context, username string) (*model.Profile, error)

	UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (*model.Profile, error)
	UploadAvatar(ctx context.Context, id uuid.UUID, upload AvatarUpload) (string, error)
	TouchLastSeen(ctx context.Context, id uuid.UUID) error

	// Search users by username prefix, excluding the caller
	SearchByUsernamePrefix(ctx context.Context, selfID uuid.UUID, prefix string, limit int) ([]model.Profile, error)
}
