// Package session gates the chat components behind sign-in and owns their
// lifecycle for one signed-in user.
package session

import (
	"context"
	"time"

	"chatline/config"
	"chatline/internal/chat"
	chatUsecase "chatline/internal/chat/usecase"
	"chatline/internal/directory"
	"chatline/internal/identity"
	"chatline/internal/livequery"
	"chatline/internal/message"
	messageUsecase "chatline/internal/message/usecase"
	"chatline/internal/profile"
	profileModel "chatline/internal/profile/model"
	"chatline/internal/view"
	"chatline/pkg/errors"
	"chatline/pkg/logger"
)

// Manager signs users in and out and hands out Sessions.
type Manager struct {
	identity      identity.IdentityUsecase
	profiles      profile.ProfileUsecase
	conversations chat.ConversationRepository
	messages      message.MessageRepository
	notifier      livequery.Notifier
	renderer      view.Renderer
	logger        logger.Logger
	config        config.Config
}

func NewManager(
	identity identity.IdentityUsecase,
	profiles profile.ProfileUsecase,
	conversations chat.ConversationRepository,
	messages message.MessageRepository,
	notifier livequery.Notifier,
	renderer view.Renderer,
	logger logger.Logger,
	config config.Config,
) *Manager {
	return &Manager{
		identity:      identity,
		profiles:      profiles,
		conversations: conversations,
		messages:      messages,
		notifier:      notifier,
		renderer:      renderer,
		logger:        logger,
		config:        config,
	}
}

// Register creates the account and its profile and opens a session.
func (m *Manager) Register(ctx context.Context, email, password, confirm string) (*Session, error) {
	if password != confirm {
		return nil, m.fail(errors.ErrPasswordMismatch)
	}

	ctx, cancel := withTimeout(ctx, m.config.Session.RequestTimeout)
	defer cancel()

	id, err := m.identity.Register(ctx, email, password)
	if err != nil {
		return nil, m.fail(err)
	}

	self, err := m.profiles.CreateProfile(ctx, id.ID, id.Email)
	if err != nil {
		// the account stays; the next sign-in creates the missing profile
		m.logger.Error("account created without profile", "id", id.ID, "err", err)
		m.signOut(ctx)
		return nil, m.fail(err)
	}

	m.renderer.Notify("Registration successful", view.SeveritySuccess)
	return m.open(id, self), nil
}

// Login authenticates, loads the user's profile and refreshes its last-seen time.
// An account without a profile, left behind by a failed registration, gets a
// fresh one.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	ctx, cancel := withTimeout(ctx, m.config.Session.RequestTimeout)
	defer cancel()

	id, err := m.identity.Authenticate(ctx, email, password)
	if err != nil {
		return nil, m.fail(err)
	}

	self, err := m.profiles.GetProfile(ctx, id.ID)
	if errors.IsNotFound(err) {
		m.logger.Warn("account has no profile, creating one", "id", id.ID)
		self, err = m.profiles.CreateProfile(ctx, id.ID, id.Email)
	}
	if err != nil {
		m.signOut(ctx)
		return nil, m.fail(err)
	}

	if err := m.profiles.TouchLastSeen(ctx, id.ID); err != nil {
		m.logger.Warn("last seen not updated", "id", id.ID, "err", err)
	}
	return m.open(id, self), nil
}

func (m *Manager) open(id *identity.Identity, self *profileModel.Profile) *Session {
	log := m.logger.With("user", id.ID)

	cache := directory.NewCache(m.profiles, log)
	cache.Put(self)

	chats := chatUsecase.NewChatUsecase(m.conversations, cache, m.profiles, m.notifier, log)
	msgs := messageUsecase.NewMessageUsecase(m.messages, m.conversations, m.notifier, log, m.config)

	s := newSession(id, self, cache, m.profiles, chats, msgs, m.identity, m.renderer, log, m.config)
	log.Info("session opened")
	return s
}

func (m *Manager) signOut(ctx context.Context) {
	if err := m.identity.SignOut(ctx); err != nil {
		m.logger.Warn("sign out failed", "err", err)
	}
}

func (m *Manager) fail(err error) error {
	notify(m.renderer, err)
	return err
}

func notify(r view.Renderer, err error) {
	severity := view.SeverityError
	if errors.IsValidation(err) || errors.CodeOf(err) == errors.CodeAlreadyExists {
		severity = view.SeverityWarning
	}
	r.Notify(errors.Message(err), severity)
}

// withTimeout applies the per-request deadline when one is configured.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
