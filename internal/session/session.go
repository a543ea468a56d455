package session

import (
	"context"
	"sync"
	"time"

	"chatline/config"
	"chatline/internal/chat"
	"chatline/internal/directory"
	"chatline/internal/identity"
	"chatline/internal/livequery"
	"chatline/internal/message"
	messageModel "chatline/internal/message/model"
	"chatline/internal/profile"
	profileModel "chatline/internal/profile/model"
	"chatline/internal/view"
	"chatline/pkg/errors"
	"chatline/pkg/logger"

	"github.com/google/uuid"
)

// Session is one signed-in user's view of the system. It renders every live
// update through the Renderer and reports every failure with Notify as well
// as returning it.
type Session struct {
	identity *identity.Identity
	cache    *directory.Cache
	profiles profile.ProfileUsecase
	chats    chat.ChatUsecase
	messages message.MessageUsecase
	auth     identity.IdentityUsecase
	renderer view.Renderer
	logger   logger.Logger
	config   config.Config
	now      func() time.Time

	// bounds live subscriptions; cancelled on teardown
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	self     *profileModel.Profile
	down     bool
	stopOnce sync.Once
	unwatch  func()
}

func newSession(
	id *identity.Identity,
	self *profileModel.Profile,
	cache *directory.Cache,
	profiles profile.ProfileUsecase,
	chats chat.ChatUsecase,
	messages message.MessageUsecase,
	auth identity.IdentityUsecase,
	renderer view.Renderer,
	logger logger.Logger,
	config config.Config,
) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		identity: id,
		cache:    cache,
		profiles: profiles,
		chats:    chats,
		messages: messages,
		auth:     auth,
		renderer: renderer,
		logger:   logger,
		config:   config,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		self:     self,
	}

	changes, unwatch := auth.Watch()
	s.unwatch = unwatch
	go s.watchIdentity(changes)
	return s
}

// watchIdentity tears the session down when the identity is signed out elsewhere.
func (s *Session) watchIdentity(changes <-chan identity.Change) {
	for c := range changes {
		if c.Kind == identity.SignedOut || (c.Identity != nil && c.Identity.ID != s.identity.ID) {
			s.logger.Info("identity changed, closing session", "change", c.Kind.String())
			s.teardown()
			return
		}
	}
}

func (s *Session) Identity() identity.Identity { return *s.identity }

// Profile returns the signed-in user's cached profile.
func (s *Session) Profile() profileModel.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.self
}

// Active is false once the session was logged out or its identity signed out.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.down
}

// Logout closes the message subscription, then the conversation list, then
// signs out.
func (s *Session) Logout(ctx context.Context) error {
	if !s.Active() {
		return s.fail(errors.ErrNotSignedIn)
	}
	s.teardown()

	ctx, cancel := withTimeout(ctx, s.config.Session.RequestTimeout)
	defer cancel()
	if err := s.auth.SignOut(ctx); err != nil {
		return s.fail(err)
	}
	s.logger.Info("signed out")
	return nil
}

func (s *Session) teardown() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.down = true
		s.mu.Unlock()

		s.messages.Close()
		s.chats.Close()
		s.cancel()
		s.unwatch()
	})
}

func (s *Session) UpdateProfile(ctx context.Context, nickname, username, bio string) (*profileModel.Profile, error) {
	ctx, cancel, err := s.request(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	updated, err := s.profiles.UpdateProfile(ctx, profile.UpdateProfileCommand{
		ID:       s.identity.ID,
		Nickname: nickname,
		Username: username,
		Bio:      bio,
	})
	if err != nil {
		return nil, s.fail(err)
	}

	s.setSelf(updated)
	s.renderer.Notify("Profile saved", view.SeveritySuccess)
	return updated, nil
}

func (s *Session) UploadAvatar(ctx context.Context, upload profile.AvatarUpload) (string, error) {
	ctx, cancel, err := s.request(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()

	uri, err := s.profiles.UploadAvatar(ctx, s.identity.ID, upload)
	if err != nil {
		return "", s.fail(err)
	}

	s.mu.Lock()
	updated := *s.self
	updated.AvatarURL = uri
	s.self = &updated
	s.mu.Unlock()
	s.cache.Put(&updated)

	s.renderer.Notify("Avatar updated", view.SeveritySuccess)
	return uri, nil
}

// Search renders the users whose username starts with prefix. An invalid
// prefix is reported and renders an empty result.
func (s *Session) Search(ctx context.Context, prefix string) ([]profileModel.Profile, error) {
	ctx, cancel, err := s.request(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	found, err := s.profiles.SearchByUsernamePrefix(ctx, s.identity.ID, prefix, s.config.Session.SearchLimit)
	if err != nil {
		s.renderer.RenderSearchResults(nil)
		return nil, s.fail(err)
	}
	s.renderer.RenderSearchResults(view.Profiles(found, s.now()))
	return found, nil
}

// OpenConversationList starts rendering the live conversation list. Calling
// it again replaces the previous list subscription.
func (s *Session) OpenConversationList() error {
	if !s.Active() {
		return s.fail(errors.ErrNotSignedIn)
	}

	err := s.chats.SubscribeToConversationList(s.ctx, s.identity.ID, func(snap livequery.Snapshot[chat.Entry]) {
		if snap.Err != nil {
			notify(s.renderer, snap.Err)
			return
		}
		s.renderer.RenderConversations(view.Conversations(snap.Items, s.now()))
	})
	if err != nil {
		return s.fail(err)
	}
	return nil
}

// StartChat opens the conversation with the user holding username, creating
// it if needed.
func (s *Session) StartChat(ctx context.Context, username string) (*chat.StartResult, error) {
	ctx, cancel, err := s.request(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	res, err := s.chats.StartConversationByUsername(ctx, s.identity.ID, username)
	if err != nil {
		return nil, s.fail(err)
	}
	if err := s.OpenConversation(res.Conversation.ID); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Session) StartChatWith(ctx context.Context, otherID uuid.UUID) (*chat.StartResult, error) {
	ctx, cancel, err := s.request(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	res, err := s.chats.StartConversation(ctx, s.identity.ID, otherID)
	if err != nil {
		return nil, s.fail(err)
	}
	if err := s.OpenConversation(res.Conversation.ID); err != nil {
		return nil, err
	}
	return res, nil
}

// OpenConversation makes conversationID the open conversation and renders
// its messages live.
func (s *Session) OpenConversation(conversationID uuid.UUID) error {
	if !s.Active() {
		return s.fail(errors.ErrNotSignedIn)
	}

	self := s.identity.ID
	err := s.messages.SubscribeToMessages(s.ctx, conversationID, func(snap livequery.Snapshot[messageModel.Message]) {
		if snap.Err != nil {
			notify(s.renderer, snap.Err)
			return
		}
		s.renderer.RenderMessages(view.Messages(snap.Items, self, s.now()))
	})
	if err != nil {
		return s.fail(err)
	}
	return nil
}

// Send posts text to the open conversation. Blank text, or no open
// conversation, sends nothing.
func (s *Session) Send(ctx context.Context, text string) error {
	ctx, cancel, err := s.request(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if _, err := s.messages.SendMessage(ctx, uuid.Nil, s.identity.ID, text); err != nil {
		return s.fail(err)
	}
	return nil
}

// CloseConversation stops rendering the open conversation.
func (s *Session) CloseConversation() {
	s.messages.Close()
}

func (s *Session) setSelf(p *profileModel.Profile) {
	s.mu.Lock()
	s.self = p
	s.mu.Unlock()
	s.cache.Put(p)
}

// request gates an operation on the session being active and applies the
// configured request deadline.
func (s *Session) request(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if !s.Active() {
		return nil, nil, s.fail(errors.ErrNotSignedIn)
	}
	ctx, cancel := withTimeout(ctx, s.config.Session.RequestTimeout)
	return ctx, cancel, nil
}

func (s *Session) fail(err error) error {
	if !errors.IsValidation(err) && !errors.IsNotFound(err) {
		s.logger.Warn("operation failed", "err", err)
	}
	notify(s.renderer, err)
	return err
}
