package profile

import (
	"context"

	"chatline/internal/profile/model"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks chatline/internal/profile ProfileRepository,BlobStore

type ProfileRepository interface {
	CreateProfile(ctx context.Context, p *model.Profile) error
	GetProfileByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*model.Profile, error)
	// Reports whether a profile other than exceptID holds username
	UsernameTakenByOther(ctx context.Context, username string, exceptID uuid.UUID) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, nickname, username, bio string) (*model.Profile, error)
	UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL string) error
	TouchLastSeen(ctx context.Context, id uuid.UUID) error
	SearchByUsernamePrefix(ctx context.Context, prefix string, excludeID uuid.UUID, limit int) ([]model.Profile, error)
}

type BlobStore interface {
	// Put stores data under path and returns its public download URI
	Put(ctx context.Context, path string, contentType string, data []byte) (string, error)
}
