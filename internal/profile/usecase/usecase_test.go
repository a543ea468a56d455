package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"chatline/config"
	"chatline/internal/profile"
	"chatline/internal/profile/mocks"
	"chatline/internal/profile/model"
	"chatline/internal/profile/repository"
	appErrors "chatline/pkg/errors"
	"chatline/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsecase(t *testing.T) (*ProfileUsecase, *mocks.MockProfileRepository, *mocks.MockBlobStore) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProfileRepository(ctrl)
	blobs := mocks.NewMockBlobStore(ctrl)
	uc := NewProfileUsecase(repo, blobs, logger.Logger{}, config.Config{})
	return uc, repo, blobs
}

func Test_CreateProfile(t *testing.T) {
	identityID := uuid.New()

	t.Run("happy path - generated username", func(t *testing.T) {
		uc, repo, _ := newUsecase(t)
		repo.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Return(nil)

		p, err := uc.CreateProfile(context.Background(), identityID, "Alice.Smith@example.com")
		require.NoError(t, err)
		assert.Equal(t, identityID, p.ID)
		assert.Equal(t, "Alice.Smith", p.Nickname)
		assert.Regexp(t, `^alice_smith_[a-z0-9]{5}$`, p.Username)
		assert.Empty(t, p.Bio)
		assert.Empty(t, p.AvatarURL)
	})

	t.Run("sad path - db down", func(t *testing.T) {
		uc, repo, _ := newUsecase(t)
		repo.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		p, err := uc.CreateProfile(context.Background(), identityID, "alice@example.com")
		assert.Nil(t, p)
		assert.Equal(t, appErrors.CodeInternal, appErrors.CodeOf(err))
	})
}

func Test_UpdateProfile(t *testing.T) {
	selfID := uuid.New()
	current := &model.Profile{ID: selfID, Nickname: "Alice", Username: "alice"}

	t.Run("happy path - username changed and free", func(t *testing.T) {
		uc, repo, _ := newUsecase(t)
		updated := &model.Profile{ID: selfID, Nickname: "Alice B", Username: "alice_b", Bio: "hi"}

		g := repo.EXPECT()
		g.GetProfileByID(gomock.Any(), selfID).Return(current, nil)
		g.UsernameTakenByOther(gomock.Any(), "alice_b", selfID).Return(false, nil)
		g.UpdateProfile(gomock.Any(), selfID, "Alice B", "alice_b", "hi").Return(updated, nil)

		got, err := uc.UpdateProfile(testContext(t), profile.UpdateProfileCommand{
			ID: selfID, Nickname: "  Alice B ", Username: "alice_b", Bio: " hi ",
		})
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("happy path - unchanged username skips the existence check", func(t *testing.T) {
		uc, repo, _ := newUsecase(t)

		g := repo.EXPECT()
		g.GetProfileByID(gomock.Any(), selfID).Return(current, nil)
		g.UpdateProfile(gomock.Any(), selfID, "Al", "alice", "").Return(current, nil)

		_, err := uc.UpdateProfile(testContext(t), profile.UpdateProfileCommand{ID: selfID, Nickname: "Al", Username: "alice"})
		require.NoError(t, err)
	})

	t.Run("sad path - username taken by someone else, no write", func(t *testing.T) {
		uc, repo, _ := newUsecase(t)

		g := repo.EXPECT()
		g.GetProfileByID(gomock.Any(), selfID).Return(current, nil)
		g.UsernameTakenByOther(gomock.Any(), "bob", selfID).Return(true, nil)

		got, err := uc.UpdateProfile(testContext(t), profile.UpdateProfileCommand{ID: selfID, Nickname: "Alice", Username: "bob"})
		assert.Nil(t, got)
		assert.Equal(t, appErrors.ErrDuplicateUsername, err)
	})

	t.Run("sad path - validation fails before any backend call", func(t *testing.T) {
		uc, _, _ := newUsecase(t)

		cases := map[string]struct {
			cmd  profile.UpdateProfileCommand
			want error
		}{
			"empty nickname":    {profile.UpdateProfileCommand{ID: selfID, Nickname: "  ", Username: "alice"}, appErrors.ErrNicknameRequired},
			"empty username":    {profile.UpdateProfileCommand{ID: selfID, Nickname: "A", Username: ""}, appErrors.ErrUsernameRequired},
			"short username":    {profile.UpdateProfileCommand{ID: selfID, Nickname: "A", Username: "al"}, appErrors.ErrInvalidUsername},
			"illegal character": {profile.UpdateProfileCommand{ID: selfID, Nickname: "A", Username: "al-ice"}, appErrors.ErrInvalidUsername},
		}
		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := uc.UpdateProfile(testContext(t), tc.cmd)
				assert.Equal(t, tc.want, err)
				assert.True(t, appErrors.IsValidation(err))
			})
		}
	})

	t.Run("sad path - db down on existence check", func(t *testing.T) {
		uc, repo, _ := newUsecase(t)

		g := repo.EXPECT()
		g.GetProfileByID(gomock.Any(), selfID).Return(current, nil)
		g.UsernameTakenByOther(gomock.Any(), "bobby", selfID).Return(false, errors.New("db down"))

		_, err := uc.UpdateProfile(testContext(t), profile.UpdateProfileCommand{ID: selfID, Nickname: "A", Username: "bobby"})
		assert.Equal(t, appErrors.CodeInternal, appErrors.CodeOf(err))
	})

	t.Run("sad path - profile missing", func(t *testing.T) {
		uc, repo, _ := newUsecase(t)
		repo.EXPECT().GetProfileByID(gomock.Any(), selfID).Return(nil, repository.ErrProfileNotFound)

		_, err := uc.UpdateProfile(testContext(t), profile.UpdateProfileCommand{ID: selfID, Nickname: "A", Username: "alice"})
		assert.Equal(t, appErrors.ErrProfileNotFound, err)
	})
}

func Test_UploadAvatar(t *testing.T) {
	selfID := uuid.New()

	t.Run("sad path - 6 MiB jpeg rejected before any call", func(t *testing.T) {
		uc, _, _ := newUsecase(t)

		_, err := uc.UploadAvatar(testContext(t), selfID, profile.AvatarUpload{
			Filename:    "big.jpg",
			ContentType: "image/jpeg",
			Data:        make([]byte, 6*1024*1024),
		})
		assert.Equal(t, appErrors.ErrInvalidAvatar, err)
		assert.True(t, appErrors.IsValidation(err))
	})

	t.Run("sad path - not an image", func(t *testing.T) {
		uc, _, _ := newUsecase(t)

		_, err := uc.UploadAvatar(testContext(t), selfID, profile.AvatarUpload{
			Filename:    "notes.txt",
			ContentType: "text/plain",
			Data:        []byte("hello"),
		})
		assert.Equal(t, appErrors.ErrInvalidAvatar, err)

		_, err = uc.UploadAvatar(testContext(t), selfID, profile.AvatarUpload{Filename: "x", Data: []byte("plain text")})
		assert.Equal(t, appErrors.ErrInvalidAvatar, err)
	})

	t.Run("happy path - stored under per-user timestamped path", func(t *testing.T) {
		uc, repo, blobs := newUsecase(t)
		uc.now = func() time.Time { return time.UnixMilli(1700000000123) }

		png := []byte("\x89PNG\r\n\x1a\n0000")
		wantPath := "avatars/" + selfID.String() + "/1700000000123_my_photo.png"

		blobs.EXPECT().Put(gomock.Any(), wantPath, "image/png", png).Return("http://cdn/"+wantPath, nil)
		repo.EXPECT().UpdateAvatarURL(gomock.Any(), selfID, "http://cdn/"+wantPath).Return(nil)

		uri, err := uc.UploadAvatar(testContext(t), selfID, profile.AvatarUpload{Filename: "../my photo.png", Data: png})
		require.NoError(t, err)
		assert.Equal(t, "http://cdn/"+wantPath, uri)
	})

	t.Run("sad path - blob store down", func(t *testing.T) {
		uc, _, blobs := newUsecase(t)
		blobs.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("disk full"))

		_, err := uc.UploadAvatar(testContext(t), selfID, profile.AvatarUpload{Filename: "a.gif", ContentType: "image/gif", Data: []byte("GIF89a")})
		assert.Equal(t, appErrors.CodeInternal, appErrors.CodeOf(err))
	})
}

func Test_SearchByUsernamePrefix(t *testing.T) {
	selfID := uuid.New()

	t.Run("happy path - default limit and self excluded", func(t *testing.T) {
		uc, repo, _ := newUsecase(t)
		found := []model.Profile{{ID: uuid.New(), Username: "ali"}, {ID: uuid.New(), Username: "alina"}}
		repo.EXPECT().SearchByUsernamePrefix(gomock.Any(), "ali", selfID, 10).Return(found, nil)

		got, err := uc.SearchByUsernamePrefix(testContext(t), selfID, " ali ", 0)
		require.NoError(t, err)
		assert.Equal(t, found, got)
	})

	t.Run("sad path - invalid query is reported", func(t *testing.T) {
		uc, _, _ := newUsecase(t)
		for _, q := range []string{"", "al i", "ali%", strings.Repeat("ж", 3)} {
			_, err := uc.SearchByUsernamePrefix(testContext(t), selfID, q, 10)
			assert.Equal(t, appErrors.ErrInvalidQuery, err, q)
		}
	})
}

func Test_FindByUsername(t *testing.T) {
	uc, repo, _ := newUsecase(t)
	repo.EXPECT().GetProfileByUsername(gomock.Any(), "ghost").Return(nil, repository.ErrProfileNotFound)

	_, err := uc.FindByUsername(testContext(t), "ghost")
	assert.Equal(t, appErrors.ErrProfileNotFound, err)

	_, err = uc.FindByUsername(testContext(t), "  ")
	assert.Equal(t, appErrors.ErrUsernameRequired, err)
}
