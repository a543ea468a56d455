package usecase

import (
	"context"
	"strings"
	"sync"

	"chatline/internal/identity"
	"chatline/internal/identity/model"
	"chatline/internal/identity/repository"
	"chatline/pkg/errors"
	"chatline/pkg/logger"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type IdentityUsecase struct {
	repo   identity.AccountRepository
	logger logger.Logger
	cost   int

	mu       sync.Mutex
	current  *identity.Identity
	nextID   int
	watchers map[int]chan identity.Change
}

func NewIdentityUsecase(repo identity.AccountRepository, logger logger.Logger) *IdentityUsecase {
	return &IdentityUsecase{
		repo:     repo,
		logger:   logger,
		cost:     bcrypt.DefaultCost,
		watchers: make(map[int]chan identity.Change),
	}
}

func (uc *IdentityUsecase) Register(ctx context.Context, email, password string) (*identity.Identity, error) {
	email, err := validateCredentials(email, password)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, errors.ErrPasswordTooShort
	}

	if exists, err := uc.repo.EmailExists(ctx, email); err != nil {
		uc.logger.Error("database error checking email", "err", err)
		return nil, errors.ErrRegistrationFailed(errors.Backend(err))
	} else if exists {
		return nil, errors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		uc.logger.Error("failed to hash password", "err", err)
		return nil, errors.ErrRegistrationFailed(err)
	}

	a := &model.Account{Email: email, PasswordHash: hash}
	if err := uc.repo.CreateAccount(ctx, a); err != nil {
		if pkgerrors.Is(err, repository.ErrEmailExists) {
			return nil, errors.ErrEmailTaken
		}
		uc.logger.Errorf("error while saving account in db: %v", err)
		return nil, errors.ErrRegistrationFailed(errors.Backend(err))
	}

	uc.logger.Info("account registered", "id", a.ID)
	id := &identity.Identity{ID: a.ID, Email: a.Email}
	uc.setCurrent(id)
	return id, nil
}

func (uc *IdentityUsecase) Authenticate(ctx context.Context, email, password string) (*identity.Identity, error) {
	email, err := validateCredentials(email, password)
	if err != nil {
		return nil, err
	}

	a, err := uc.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if pkgerrors.Is(err, repository.ErrAccountNotFound) {
			uc.logger.Warn("sign-in attempt for unknown email")
			return nil, errors.ErrInvalidCredentials
		}
		uc.logger.Error("failed to load account", "err", err)
		return nil, errors.ErrLoginFailed(errors.Backend(err))
	}

	if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	id := &identity.Identity{ID: a.ID, Email: a.Email}
	uc.setCurrent(id)
	return id, nil
}

func (uc *IdentityUsecase) SignOut(_ context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.current == nil {
		return errors.ErrNotSignedIn
	}
	uc.current = nil
	uc.broadcastLocked(identity.Change{Kind: identity.SignedOut})
	return nil
}

func (uc *IdentityUsecase) Current() *identity.Identity {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.current
}

// Watch returns a buffered change feed. A watcher that falls behind misses
// changes rather than blocking sign-in.
func (uc *IdentityUsecase) Watch() (<-chan identity.Change, func()) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	id := uc.nextID
	uc.nextID++
	ch := make(chan identity.Change, 4)
	uc.watchers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			uc.mu.Lock()
			defer uc.mu.Unlock()
			delete(uc.watchers, id)
			close(ch)
		})
	}
}

func (uc *IdentityUsecase) setCurrent(id *identity.Identity) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.current = id
	uc.broadcastLocked(identity.Change{Kind: identity.SignedIn, Identity: id})
}

func (uc *IdentityUsecase) broadcastLocked(c identity.Change) {
	for id, ch := range uc.watchers {
		select {
		case ch <- c:
		default:
			uc.logger.Warn("identity watcher is full, dropping change", "watcher", id, "kind", c.Kind.String())
		}
	}
}

// validateCredentials returns the normalized email.
func validateCredentials(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", errors.ErrEmailRequired
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", errors.ErrInvalidEmail
	}
	return email, nil
}
