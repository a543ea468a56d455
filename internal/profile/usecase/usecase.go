package usecase

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"chatline/config"
	"chatline/internal/profile"
	"chatline/internal/profile/model"
	"chatline/internal/profile/repository"
	"chatline/pkg/errors"
	"chatline/pkg/logger"
	"chatline/pkg/utils"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
)

const (
	defaultSearchLimit    = 10
	defaultAvatarMaxBytes = 5 * 1024 * 1024
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

type ProfileUsecase struct {
	repo   profile.ProfileRepository
	blobs  profile.BlobStore
	logger logger.Logger
	config config.Config
	now    func() time.Time
}

func NewProfileUsecase(repo profile.ProfileRepository, blobs profile.BlobStore, logger logger.Logger, config config.Config) *ProfileUsecase {
	return &ProfileUsecase{repo: repo, blobs: blobs, logger: logger, config: config, now: time.Now}
}

// CreateProfile does not check the generated username for uniqueness; the
// random suffix makes a collision unlikely, not impossible.
func (uc *ProfileUsecase) CreateProfile(ctx context.Context, identityID uuid.UUID, email string) (*model.Profile, error) {
	p := &model.Profile{
		ID:       identityID,
		Email:    email,
		Nickname: utils.EmailLocalPart(email),
		Username: utils.GenerateUsername(email),
	}

	if err := uc.repo.CreateProfile(ctx, p); err != nil {
		uc.logger.Error("failed to create profile", "identity", identityID, "err", err)
		return nil, errors.Backend(err)
	}
	return p, nil
}

func (uc *ProfileUsecase) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	p, err := uc.repo.GetProfileByID(ctx, id)
	if err != nil {
		if pkgerrors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.ErrProfileNotFound
		}
		uc.logger.Error("failed to load profile", "id", id, "err", err)
		return nil, errors.Backend(err)
	}
	return p, nil
}

func (uc *ProfileUsecase) FindByUsername(ctx context.Context, username string) (*model.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.ErrUsernameRequired
	}

	p, err := uc.repo.GetProfileByUsername(ctx, username)
	if err != nil {
		if pkgerrors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.ErrProfileNotFound
		}
		uc.logger.Error("failed to look up username", "username", username, "err", err)
		return nil, errors.Backend(err)
	}
	return p, nil
}

func (uc *ProfileUsecase) UpdateProfile(ctx context.Context, cmd profile.UpdateProfileCommand) (*model.Profile, error) {
	nickname := strings.TrimSpace(cmd.Nickname)
	username := strings.TrimSpace(cmd.Username)
	bio := strings.TrimSpace(cmd.Bio)

	if nickname == "" {
		return nil, errors.ErrNicknameRequired
	}
	if username == "" {
		return nil, errors.ErrUsernameRequired
	}
	if !utils.IsValidUsername(username) {
		return nil, errors.ErrInvalidUsername
	}

	current, err := uc.GetProfile(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	// best-effort: two concurrent updates may still claim the same username
	if username != current.Username {
		taken, err := uc.repo.UsernameTakenByOther(ctx, username, cmd.ID)
		if err != nil {
			uc.logger.Error("database error checking username", "err", err)
			return nil, errors.Backend(err)
		}
		if taken {
			return nil, errors.ErrDuplicateUsername
		}
	}

	updated, err := uc.repo.UpdateProfile(ctx, cmd.ID, nickname, username, bio)
	if err != nil {
		if pkgerrors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.ErrProfileNotFound
		}
		uc.logger.Errorf("error while updating profile in db: %v", err)
		return nil, errors.Backend(err)
	}
	return updated, nil
}

// UploadAvatar validates the image before touching any backend, stores it
// under avatars/<id>/<unix-millis>_<filename> and records its URI.
func (uc *ProfileUsecase) UploadAvatar(ctx context.Context, id uuid.UUID, upload profile.AvatarUpload) (string, error) {
	contentType := upload.ContentType
	if contentType == "" && len(upload.Data) > 0 {
		contentType = http.DetectContentType(upload.Data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.ErrInvalidAvatar
	}
	if len(upload.Data) == 0 || int64(len(upload.Data)) > uc.avatarMaxBytes() {
		return "", errors.ErrInvalidAvatar
	}

	blobPath := fmt.Sprintf("avatars/%s/%d_%s", id, uc.now().UnixMilli(), sanitizeFilename(upload.Filename))
	uri, err := uc.blobs.Put(ctx, blobPath, contentType, upload.Data)
	if err != nil {
		uc.logger.Error("failed to store avatar", "id", id, "path", blobPath, "err", err)
		return "", errors.Backend(err)
	}

	if err := uc.repo.UpdateAvatarURL(ctx, id, uri); err != nil {
		if pkgerrors.Is(err, repository.ErrProfileNotFound) {
			return "", errors.ErrProfileNotFound
		}
		uc.logger.Error("failed to save avatar url", "id", id, "err", err)
		return "", errors.Backend(err)
	}
	return uri, nil
}

func (uc *ProfileUsecase) TouchLastSeen(ctx context.Context, id uuid.UUID) error {
	if err := uc.repo.TouchLastSeen(ctx, id); err != nil {
		uc.logger.Warn("failed to update last seen", "id", id, "err", err)
		return errors.Backend(err)
	}
	return nil
}

func (uc *ProfileUsecase) SearchByUsernamePrefix(ctx context.Context, selfID uuid.UUID, prefix string, limit int) ([]model.Profile, error) {
	prefix = strings.TrimSpace(prefix)
	if !utils.IsUsernameCharset(prefix) {
		return nil, errors.ErrInvalidQuery
	}
	if limit <= 0 {
		limit = uc.searchLimit()
	}

	profiles, err := uc.repo.SearchByUsernamePrefix(ctx, prefix, selfID, limit)
	if err != nil {
		uc.logger.Error("username search failed", "prefix", prefix, "err", err)
		return nil, errors.Backend(err)
	}
	return profiles, nil
}

func (uc *ProfileUsecase) avatarMaxBytes() int64 {
	if uc.config.Session.AvatarMaxBytes > 0 {
		return uc.config.Session.AvatarMaxBytes
	}
	return defaultAvatarMaxBytes
}

func (uc *ProfileUsecase) searchLimit() int {
	if uc.config.Session.SearchLimit > 0 {
		return uc.config.Session.SearchLimit
	}
	return defaultSearchLimit
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "avatar"
	}
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
