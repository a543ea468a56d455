// Package view builds display-ready view models from domain records. It does
// no I/O; a Renderer draws the results.
package view

import (
	"fmt"
	"time"

	"chatline/internal/chat"
	messageModel "chatline/internal/message/model"
	profileModel "chatline/internal/profile/model"

	"github.com/google/uuid"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "info"
}

//go:generate mockgen -destination=mocks/mock_renderer.go -package=mocks chatline/internal/view Renderer

// Renderer draws complete lists; every call replaces what was drawn before.
// Calls may arrive from subscription goroutines.
type Renderer interface {
	RenderConversations(items []ConversationView)
	RenderMessages(items []MessageView)
	RenderSearchResults(items []ProfileView)
	Notify(text string, severity Severity)
}

type ConversationView struct {
	ID          uuid.UUID
	PeerID      uuid.UUID
	Title       string
	Handle      string
	AvatarURL   string
	LastMessage string
	When        string
}

type MessageView struct {
	ID       uuid.UUID
	Text     string
	Outgoing bool
	When     string
}

type ProfileView struct {
	ID        uuid.UUID
	Nickname  string
	Handle    string
	Bio       string
	AvatarURL string
	LastSeen  string
}

func Conversations(entries []chat.Entry, now time.Time) []ConversationView {
	out := make([]ConversationView, 0, len(entries))
	for _, e := range entries {
		peer := e.Peer
		if peer == nil {
			peer = profileModel.Placeholder(uuid.Nil)
		}
		out = append(out, ConversationView{
			ID:          e.Conversation.ID,
			PeerID:      peer.ID,
			Title:       peer.Nickname,
			Handle:      Handle(peer.Username),
			AvatarURL:   peer.AvatarURL,
			LastMessage: e.Conversation.LastMessage,
			When:        FormatRelative(e.Conversation.LastMessageTime, now),
		})
	}
	return out
}

func Messages(messages []messageModel.Message, self uuid.UUID, now time.Time) []MessageView {
	out := make([]MessageView, 0, len(messages))
	for i := range messages {
		m := &messages[i]
		out = append(out, MessageView{
			ID:       m.ID,
			Text:     m.Text,
			Outgoing: m.IsOutgoing(self),
			When:     FormatRelative(m.Timestamp, now),
		})
	}
	return out
}

func Profile(p *profileModel.Profile, now time.Time) ProfileView {
	return ProfileView{
		ID:        p.ID,
		Nickname:  p.Nickname,
		Handle:    Handle(p.Username),
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		LastSeen:  FormatRelative(p.LastSeen, now),
	}
}

func Profiles(profiles []profileModel.Profile, now time.Time) []ProfileView {
	out := make([]ProfileView, 0, len(profiles))
	for i := range profiles {
		out = append(out, Profile(&profiles[i], now))
	}
	return out
}

func Handle(username string) string {
	if username == "" {
		return ""
	}
	return "@" + username
}

// FormatRelative renders t relative to now: "just now" under a minute,
// "N min ago" under an hour, the clock time under a day, the date otherwise.
// A zero t renders as "".
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d min ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return t.In(now.Location()).Format("15:04")
	}
	return t.In(now.Location()).Format("02.01.2006")
}
