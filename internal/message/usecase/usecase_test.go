package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"chatline/config"
	chatModel "chatline/internal/chat/model"
	chatRepository "chatline/internal/chat/repository"
	"chatline/internal/livequery"
	"chatline/internal/message/mocks"
	"chatline/internal/message/model"
	appErrors "chatline/pkg/errors"
	"chatline/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uc            *MessageUsecase
	repo          *mocks.MockMessageRepository
	conversations *mocks.MockConversationStore
	notifier      *livequery.MemoryNotifier
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		repo:          mocks.NewMockMessageRepository(ctrl),
		conversations: mocks.NewMockConversationStore(ctrl),
		notifier:      livequery.NewMemoryNotifier(),
	}
	f.uc = NewMessageUsecase(f.repo, f.conversations, f.notifier, logger.Logger{}, config.Config{})
	t.Cleanup(f.uc.Close)
	return f
}

// open subscribes to conversationID and waits for the first snapshot.
func (f *fixture) open(t *testing.T, conversationID uuid.UUID, messages []model.Message) chan livequery.Snapshot[model.Message] {
	t.Helper()
	f.repo.EXPECT().ListByConversation(gomock.Any(), conversationID).Return(messages, nil).AnyTimes()

	updates := make(chan livequery.Snapshot[model.Message], 8)
	require.NoError(t, f.uc.SubscribeToMessages(context.Background(), conversationID, func(s livequery.Snapshot[model.Message]) {
		updates <- s
	}))
	select {
	case <-updates:
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}
	return updates
}

func Test_SendMessage(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	c1 := &chatModel.Conversation{ID: uuid.New(), Participants: []string{alice.String(), bob.String()}}

	t.Run("happy path - appends one message and updates summary", func(t *testing.T) {
		f := newFixture(t)
		f.open(t, c1.ID, nil)

		signals, release, err := f.notifier.Watch(context.Background(), livequery.ConversationsTopic(bob))
		require.NoError(t, err)
		defer release()

		f.conversations.EXPECT().GetConversation(gomock.Any(), c1.ID).Return(c1, nil)
		f.repo.EXPECT().AppendMessage(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *model.Message) error {
				assert.Equal(t, c1.ID, m.ConversationID)
				assert.Equal(t, alice, m.SenderID)
				assert.Equal(t, "hi", m.Text)
				assert.True(t, m.Timestamp.IsZero(), "timestamp is assigned by the server")
				m.ID = uuid.New()
				return nil
			}).Times(1)
		f.conversations.EXPECT().UpdateLastMessage(gomock.Any(), c1.ID, "hi").Return(nil).Times(1)

		m, err := f.uc.SendMessage(context.Background(), c1.ID, alice, "  hi ")
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "hi", m.Text)

		select {
		case <-signals:
		case <-time.After(time.Second):
			t.Fatal("peer's conversation list was not notified")
		}
	})

	t.Run("summary truncated to 50 characters", func(t *testing.T) {
		f := newFixture(t)
		f.open(t, c1.ID, nil)
		long := strings.Repeat("ж", 60)

		f.conversations.EXPECT().GetConversation(gomock.Any(), c1.ID).Return(c1, nil)
		f.repo.EXPECT().AppendMessage(gomock.Any(), gomock.Any()).Return(nil)
		f.conversations.EXPECT().UpdateLastMessage(gomock.Any(), c1.ID, strings.Repeat("ж", 50)+"...").Return(nil)

		m, err := f.uc.SendMessage(context.Background(), uuid.Nil, alice, long)
		require.NoError(t, err)
		assert.Equal(t, long, m.Text)
	})

	t.Run("blank text is a no-op", func(t *testing.T) {
		f := newFixture(t)
		f.open(t, c1.ID, nil)

		m, err := f.uc.SendMessage(context.Background(), c1.ID, alice, " \n\t ")
		assert.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("no open conversation is a no-op", func(t *testing.T) {
		f := newFixture(t)

		m, err := f.uc.SendMessage(context.Background(), c1.ID, alice, "hello")
		assert.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("sad path - sender not a participant", func(t *testing.T) {
		f := newFixture(t)
		f.open(t, c1.ID, nil)
		f.conversations.EXPECT().GetConversation(gomock.Any(), c1.ID).Return(c1, nil)

		_, err := f.uc.SendMessage(context.Background(), c1.ID, uuid.New(), "hello")
		assert.ErrorIs(t, err, appErrors.ErrNotParticipant)
	})

	t.Run("sad path - conversation gone", func(t *testing.T) {
		f := newFixture(t)
		f.open(t, c1.ID, nil)
		f.conversations.EXPECT().GetConversation(gomock.Any(), c1.ID).Return(nil, chatRepository.ErrConversationNotFound)

		_, err := f.uc.SendMessage(context.Background(), c1.ID, alice, "hello")
		assert.ErrorIs(t, err, appErrors.ErrConversationGone)
	})

	t.Run("sad path - append fails, summary untouched", func(t *testing.T) {
		f := newFixture(t)
		f.open(t, c1.ID, nil)
		f.conversations.EXPECT().GetConversation(gomock.Any(), c1.ID).Return(c1, nil)
		f.repo.EXPECT().AppendMessage(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.uc.SendMessage(context.Background(), c1.ID, alice, "hello")
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeInternal, appErrors.CodeOf(err))
	})

	t.Run("summary failure does not fail the send", func(t *testing.T) {
		f := newFixture(t)
		f.open(t, c1.ID, nil)
		f.conversations.EXPECT().GetConversation(gomock.Any(), c1.ID).Return(c1, nil)
		f.repo.EXPECT().AppendMessage(gomock.Any(), gomock.Any()).Return(nil)
		f.conversations.EXPECT().UpdateLastMessage(gomock.Any(), c1.ID, "hello").Return(errors.New("timeout"))

		m, err := f.uc.SendMessage(context.Background(), c1.ID, alice, "hello")
		require.NoError(t, err)
		assert.NotNil(t, m)
	})
}

func Test_SubscribeToMessages(t *testing.T) {
	alice := uuid.New()
	c1, c2 := uuid.New(), uuid.New()
	now := time.Now()
	history := []model.Message{
		{ID: uuid.New(), ConversationID: c1, SenderID: alice, Text: "first", Timestamp: now.Add(-time.Minute)},
		{ID: uuid.New(), ConversationID: c1, SenderID: alice, Text: "second", Timestamp: now},
	}

	f := newFixture(t)
	updates := f.open(t, c1, history)
	assert.Equal(t, c1, f.uc.Current())

	require.NoError(t, f.notifier.Publish(context.Background(), livequery.MessagesTopic(c1)))
	select {
	case s := <-updates:
		require.NoError(t, s.Err)
		require.Len(t, s.Items, 2)
		assert.Equal(t, "first", s.Items[0].Text)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after change")
	}

	// opening another conversation tears down the first subscription
	f.open(t, c2, nil)
	assert.Equal(t, c2, f.uc.Current())
	require.Eventually(t, func() bool {
		return f.notifier.Watchers(livequery.MessagesTopic(c1)) == 0
	}, 2*time.Second, 10*time.Millisecond)

	f.uc.Close()
	assert.Equal(t, uuid.Nil, f.uc.Current())
	require.Eventually(t, func() bool {
		return f.notifier.Watchers(livequery.MessagesTopic(c2)) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func Test_SendThrottle(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	c1 := &chatModel.Conversation{ID: uuid.New(), Participants: []string{alice.String(), bob.String()}}

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMessageRepository(ctrl)
	conversations := mocks.NewMockConversationStore(ctrl)
	uc := NewMessageUsecase(repo, conversations, livequery.NewMemoryNotifier(), logger.Logger{},
		config.Config{Session: config.Session{SendRatePerSecond: 10}})
	t.Cleanup(uc.Close)
	require.NotNil(t, uc.limiter)

	repo.EXPECT().ListByConversation(gomock.Any(), c1.ID).Return(nil, nil).AnyTimes()
	require.NoError(t, uc.SubscribeToMessages(context.Background(), c1.ID, func(livequery.Snapshot[model.Message]) {}))

	conversations.EXPECT().GetConversation(gomock.Any(), c1.ID).Return(c1, nil).Times(3)
	repo.EXPECT().AppendMessage(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	conversations.EXPECT().UpdateLastMessage(gomock.Any(), c1.ID, gomock.Any()).Return(nil).Times(3)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := uc.SendMessage(context.Background(), c1.ID, alice, "spam")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func Test_SendThrottleRespectsDeadline(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	c1 := &chatModel.Conversation{ID: uuid.New(), Participants: []string{alice.String(), bob.String()}}

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMessageRepository(ctrl)
	conversations := mocks.NewMockConversationStore(ctrl)
	uc := NewMessageUsecase(repo, conversations, livequery.NewMemoryNotifier(), logger.Logger{},
		config.Config{Session: config.Session{SendRatePerSecond: 1}})
	t.Cleanup(uc.Close)

	repo.EXPECT().ListByConversation(gomock.Any(), c1.ID).Return(nil, nil).AnyTimes()
	require.NoError(t, uc.SubscribeToMessages(context.Background(), c1.ID, func(livequery.Snapshot[model.Message]) {}))

	conversations.EXPECT().GetConversation(gomock.Any(), c1.ID).Return(c1, nil).Times(2)
	repo.EXPECT().AppendMessage(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	conversations.EXPECT().UpdateLastMessage(gomock.Any(), c1.ID, gomock.Any()).Return(nil).Times(1)

	_, err := uc.SendMessage(context.Background(), c1.ID, alice, "first")
	require.NoError(t, err)

	// the limiter holds the second send for about a second, well past this deadline
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	m, err := uc.SendMessage(ctx, c1.ID, alice, "second")
	require.Error(t, err)
	assert.Nil(t, m)
	assert.Equal(t, appErrors.CodeDeadlineExceeded, appErrors.CodeOf(err))
}
