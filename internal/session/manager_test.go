package session

import (
	"context"
	"testing"

	"chatline/config"
	chatMocks "chatline/internal/chat/mocks"
	"chatline/internal/identity"
	identityMocks "chatline/internal/identity/mocks"
	"chatline/internal/livequery"
	messageMocks "chatline/internal/message/mocks"
	profileMocks "chatline/internal/profile/mocks"
	profileModel "chatline/internal/profile/model"
	"chatline/internal/view"
	viewMocks "chatline/internal/view/mocks"
	appErrors "chatline/pkg/errors"
	"chatline/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type managerFixture struct {
	manager  *Manager
	auth     *identityMocks.MockIdentityUsecase
	profiles *profileMocks.MockProfileUsecase
	renderer *viewMocks.MockRenderer
}

func newManagerFixture(t *testing.T) *managerFixture {
	ctrl := gomock.NewController(t)
	f := &managerFixture{
		auth:     identityMocks.NewMockIdentityUsecase(ctrl),
		profiles: profileMocks.NewMockProfileUsecase(ctrl),
		renderer: viewMocks.NewMockRenderer(ctrl),
	}
	f.manager = NewManager(
		f.auth,
		f.profiles,
		chatMocks.NewMockConversationRepository(ctrl),
		messageMocks.NewMockMessageRepository(ctrl),
		livequery.NewMemoryNotifier(),
		f.renderer,
		logger.Logger{},
		config.Config{},
	)
	return f
}

func watchNothing() (<-chan identity.Change, func()) {
	return make(chan identity.Change), func() {}
}

func Test_ManagerLogin(t *testing.T) {
	id := &identity.Identity{ID: uuid.New(), Email: "alice@example.com"}
	self := &profileModel.Profile{ID: id.ID, Email: id.Email, Nickname: "alice", Username: "alice_ab12c"}

	t.Run("happy path", func(t *testing.T) {
		f := newManagerFixture(t)
		f.auth.EXPECT().Authenticate(gomock.Any(), "alice@example.com", "secret1").Return(id, nil)
		f.profiles.EXPECT().GetProfile(gomock.Any(), id.ID).Return(self, nil)
		f.profiles.EXPECT().TouchLastSeen(gomock.Any(), id.ID).Return(nil)
		f.auth.EXPECT().Watch().DoAndReturn(watchNothing)

		s, err := f.manager.Login(context.Background(), "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.True(t, s.Active())
		assert.Equal(t, "alice_ab12c", s.Profile().Username)
		assert.Equal(t, id.ID, s.Identity().ID)
	})

	t.Run("last seen failure is not fatal", func(t *testing.T) {
		f := newManagerFixture(t)
		f.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(id, nil)
		f.profiles.EXPECT().GetProfile(gomock.Any(), id.ID).Return(self, nil)
		f.profiles.EXPECT().TouchLastSeen(gomock.Any(), id.ID).Return(appErrors.Internal("db down"))
		f.auth.EXPECT().Watch().DoAndReturn(watchNothing)

		_, err := f.manager.Login(context.Background(), "alice@example.com", "secret1")
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newManagerFixture(t)
		f.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, appErrors.ErrInvalidCredentials)
		f.renderer.EXPECT().Notify(appErrors.Message(appErrors.ErrInvalidCredentials), view.SeverityError)

		_, err := f.manager.Login(context.Background(), "alice@example.com", "nope")
		assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	})

	t.Run("missing profile is recreated", func(t *testing.T) {
		f := newManagerFixture(t)
		f.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(id, nil)
		f.profiles.EXPECT().GetProfile(gomock.Any(), id.ID).Return(nil, appErrors.ErrProfileNotFound)
		f.profiles.EXPECT().CreateProfile(gomock.Any(), id.ID, id.Email).Return(self, nil)
		f.profiles.EXPECT().TouchLastSeen(gomock.Any(), id.ID).Return(nil)
		f.auth.EXPECT().Watch().DoAndReturn(watchNothing)

		s, err := f.manager.Login(context.Background(), "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.True(t, s.Active())
		assert.Equal(t, self.Username, s.Profile().Username)
	})

	t.Run("profile recreation fails signs out", func(t *testing.T) {
		f := newManagerFixture(t)
		f.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(id, nil)
		f.profiles.EXPECT().GetProfile(gomock.Any(), id.ID).Return(nil, appErrors.ErrProfileNotFound)
		f.profiles.EXPECT().CreateProfile(gomock.Any(), id.ID, id.Email).Return(nil, appErrors.Internal("db down"))
		f.auth.EXPECT().SignOut(gomock.Any()).Return(nil)
		f.renderer.EXPECT().Notify("db down", view.SeverityError)

		_, err := f.manager.Login(context.Background(), "alice@example.com", "secret1")
		assert.Equal(t, appErrors.CodeInternal, appErrors.CodeOf(err))
	})

	t.Run("backend failure loading profile signs out", func(t *testing.T) {
		f := newManagerFixture(t)
		f.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(id, nil)
		f.profiles.EXPECT().GetProfile(gomock.Any(), id.ID).Return(nil, appErrors.Internal("db down"))
		f.auth.EXPECT().SignOut(gomock.Any()).Return(nil)
		f.renderer.EXPECT().Notify("db down", view.SeverityError)

		_, err := f.manager.Login(context.Background(), "alice@example.com", "secret1")
		require.Error(t, err)
	})
}

// A registration whose profile write failed must not lock the account out.
func Test_ManagerRegisterThenLoginAfterProfileFailure(t *testing.T) {
	id := &identity.Identity{ID: uuid.New(), Email: "alice@example.com"}
	self := &profileModel.Profile{ID: id.ID, Email: id.Email, Nickname: "alice", Username: "alice_ab12c"}
	f := newManagerFixture(t)

	f.auth.EXPECT().Register(gomock.Any(), "alice@example.com", "secret1").Return(id, nil)
	gomock.InOrder(
		f.profiles.EXPECT().CreateProfile(gomock.Any(), id.ID, id.Email).Return(nil, appErrors.Backend(context.DeadlineExceeded)),
		f.profiles.EXPECT().CreateProfile(gomock.Any(), id.ID, id.Email).Return(self, nil),
	)
	f.auth.EXPECT().SignOut(gomock.Any()).Return(nil)
	f.renderer.EXPECT().Notify("request timed out", view.SeverityError)

	_, err := f.manager.Register(context.Background(), "alice@example.com", "secret1", "secret1")
	require.Error(t, err)

	f.auth.EXPECT().Authenticate(gomock.Any(), "alice@example.com", "secret1").Return(id, nil)
	f.profiles.EXPECT().GetProfile(gomock.Any(), id.ID).Return(nil, appErrors.ErrProfileNotFound)
	f.profiles.EXPECT().TouchLastSeen(gomock.Any(), id.ID).Return(nil)
	f.auth.EXPECT().Watch().DoAndReturn(watchNothing)

	s, err := f.manager.Login(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, self.Username, s.Profile().Username)
}

func Test_ManagerRegister(t *testing.T) {
	id := &identity.Identity{ID: uuid.New(), Email: "alice@example.com"}

	t.Run("happy path", func(t *testing.T) {
		f := newManagerFixture(t)
		self := &profileModel.Profile{ID: id.ID, Email: id.Email, Nickname: "alice", Username: "alice_ab12c"}
		f.auth.EXPECT().Register(gomock.Any(), "alice@example.com", "secret1").Return(id, nil)
		f.profiles.EXPECT().CreateProfile(gomock.Any(), id.ID, id.Email).Return(self, nil)
		f.renderer.EXPECT().Notify("Registration successful", view.SeveritySuccess)
		f.auth.EXPECT().Watch().DoAndReturn(watchNothing)

		s, err := f.manager.Register(context.Background(), "alice@example.com", "secret1", "secret1")
		require.NoError(t, err)
		assert.Equal(t, self.Username, s.Profile().Username)
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		f := newManagerFixture(t)
		f.renderer.EXPECT().Notify(appErrors.Message(appErrors.ErrPasswordMismatch), view.SeverityWarning)

		_, err := f.manager.Register(context.Background(), "alice@example.com", "secret1", "secret2")
		assert.ErrorIs(t, err, appErrors.ErrPasswordMismatch)
	})

	t.Run("profile creation fails", func(t *testing.T) {
		f := newManagerFixture(t)
		f.auth.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Return(id, nil)
		f.profiles.EXPECT().CreateProfile(gomock.Any(), id.ID, id.Email).Return(nil, appErrors.Internal("db down"))
		f.auth.EXPECT().SignOut(gomock.Any()).Return(nil)
		f.renderer.EXPECT().Notify("db down", view.SeverityError)

		_, err := f.manager.Register(context.Background(), "alice@example.com", "secret1", "secret1")
		require.Error(t, err)
	})
}
