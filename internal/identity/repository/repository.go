package repository

import (
	"context"
	"database/sql"

	"chatline/internal/identity/model"
	"chatline/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

type AccountRepository struct {
	db     *bun.DB
	logger logger.Logger
}

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailExists     = errors.New("email already registered")
)

// unique_violation
const pgUniqueViolation = "23505"

func NewAccountRepository(db *bun.DB, logger logger.Logger) *AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AccountRepository) CreateAccount(ctx context.Context, a *model.Account) error {
	_, err := r.db.NewInsert().Model(a).Returning("*").Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == pgUniqueViolation {
			return ErrEmailExists
		}
		return r.wrap(err, "identityRepo.CreateAccount.Insert")
	}
	return nil
}

func (r *AccountRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	a := new(model.Account)
	err := r.db.NewSelect().Model(a).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, r.wrap(err, "identityRepo.GetAccountByID.Scan")
	}
	return a, nil
}

func (r *AccountRepository) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	a := new(model.Account)
	err := r.db.NewSelect().Model(a).Where("email = ?", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, r.wrap(err, "identityRepo.GetAccountByEmail.Scan")
	}
	return a, nil
}

func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := r.db.NewSelect().Model((*model.Account)(nil)).Where("email = ?", email).Exists(ctx)
	if err != nil {
		return false, r.wrap(err, "identityRepo.EmailExists")
	}
	return exists, nil
}

// wrap logs a driver failure and annotates it with the failing operation.
func (r *AccountRepository) wrap(err error, op string) error {
	r.logger.Warn("query failed", "op", op, "err", err)
	return errors.Wrap(err, op+": ")
}
