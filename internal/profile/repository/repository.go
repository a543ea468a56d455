package repository

import (
	"context"
	"database/sql"

	"chatline/internal/profile/model"
	"chatline/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// prefixSentinel sorts after every character a username may contain.
const prefixSentinel = "\uf8ff"

type ProfileRepository struct {
	db     *bun.DB
	logger logger.Logger
}

var (
	ErrProfileNotFound = errors.New("profile not found")
)

func NewProfileRepository(db *bun.DB, logger logger.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProfileRepository) CreateProfile(ctx context.Context, p *model.Profile) error {
	_, err := r.db.NewInsert().Model(p).Returning("*").Exec(ctx)
	if err != nil {
		return r.wrap(err, "profileRepo.CreateProfile.Insert")
	}
	return nil
}

func (r *ProfileRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	p := new(model.Profile)
	err := r.db.NewSelect().Model(p).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, r.wrap(err, "profileRepo.GetProfileByID.Scan")
	}
	return p, nil
}

func (r *ProfileRepository) GetProfileByUsername(ctx context.Context, username string) (*model.Profile, error) {
	p := new(model.Profile)
	err := r.db.NewSelect().Model(p).Where("username = ?", username).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, r.wrap(err, "profileRepo.GetProfileByUsername.Scan")
	}
	return p, nil
}

func (r *ProfileRepository) UsernameTakenByOther(ctx context.Context, username string, exceptID uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*model.Profile)(nil)).
		Where("username = ?", username).
		Where("id <> ?", exceptID).
		Exists(ctx)
	if err != nil {
		return false, r.wrap(err, "profileRepo.UsernameTakenByOther.Exists")
	}
	return exists, nil
}

func (r *ProfileRepository) UpdateProfile(ctx context.Context, id uuid.UUID, nickname, username, bio string) (*model.Profile, error) {
	p := &model.Profile{ID: id}
	res, err := r.db.NewUpdate().
		Model(p).
		Set("nickname = ?", nickname).
		Set("username = ?", username).
		Set("bio = ?", bio).
		Set("updated_at = current_timestamp").
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, r.wrap(err, "profileRepo.UpdateProfile.Update")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (r *ProfileRepository) UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL string) error {
	res, err := r.db.NewUpdate().
		Model((*model.Profile)(nil)).
		Set("avatar_url = ?", avatarURL).
		Set("updated_at = current_timestamp").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.wrap(err, "profileRepo.UpdateAvatarURL.Update")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) TouchLastSeen(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*model.Profile)(nil)).
		Set("last_seen = current_timestamp").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.wrap(err, "profileRepo.TouchLastSeen.Update")
	}
	return nil
}

// SearchByUsernamePrefix compares in byte order ("C" collation) so the range
// [prefix, prefix+sentinel] matches exactly the usernames starting with prefix.
func (r *ProfileRepository) SearchByUsernamePrefix(ctx context.Context, prefix string, excludeID uuid.UUID, limit int) ([]model.Profile, error) {
	profiles := make([]model.Profile, 0, limit)
	err := r.db.NewSelect().
		Model(&profiles).
		Where(`username COLLATE "C" >= ?`, prefix).
		Where(`username COLLATE "C" <= ?`, prefix+prefixSentinel).
		Where("id <> ?", excludeID).
		OrderExpr(`username COLLATE "C" ASC`).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.wrap(err, "profileRepo.SearchByUsernamePrefix.Scan")
	}
	return profiles, nil
}

// wrap logs a driver failure and annotates it with the failing operation.
func (r *ProfileRepository) wrap(err error, op string) error {
	r.logger.Warn("query failed", "op", op, "err", err)
	return errors.Wrap(err, op+": ")
}
