package main

import (
	"bytes"
	"testing"
	"time"

	profileModel "chatline/internal/profile/model"
	"chatline/internal/view"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_TerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := newTerminalRenderer(&buf)

	r.RenderConversations(nil)
	assert.Contains(t, buf.String(), "no conversations yet")

	buf.Reset()
	r.RenderConversations([]view.ConversationView{{Title: "Bob", Handle: "@bob", LastMessage: "hi", When: "just now"}})
	assert.Contains(t, buf.String(), "Bob")
	assert.Contains(t, buf.String(), "@bob")
	assert.Contains(t, buf.String(), "hi")

	buf.Reset()
	r.SetTitle(&profileModel.Profile{Nickname: "Bob", Username: "bob"})
	r.RenderMessages([]view.MessageView{{Text: "hello", Outgoing: true, When: "1 min ago"}, {Text: "hey"}})
	assert.Contains(t, buf.String(), "Bob")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "hey")

	buf.Reset()
	r.RenderSearchResults(nil)
	assert.Contains(t, buf.String(), "no users found")

	buf.Reset()
	r.Notify("this username is already taken", view.SeverityWarning)
	assert.Contains(t, buf.String(), "this username is already taken")

	buf.Reset()
	r.RenderProfile(profileModel.Profile{ID: uuid.New(), Nickname: "Alice", Username: "alice", Bio: "hello there", LastSeen: time.Now()})
	assert.Contains(t, buf.String(), "@alice")
	assert.Contains(t, buf.String(), "hello there")
}

func Test_TerminalRendererIsRenderer(t *testing.T) {
	var _ view.Renderer = newTerminalRenderer(&bytes.Buffer{})
}
