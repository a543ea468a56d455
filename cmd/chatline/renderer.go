package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	profileModel "chatline/internal/profile/model"
	"chatline/internal/view"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	selfColor    = lipgloss.Color("#10B981")
	mutedColor   = lipgloss.Color("#9CA3AF")
	warnColor    = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	handleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34D399")).
			Bold(true)

	incomingStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(primaryColor)

	outgoingStyle = lipgloss.NewStyle().
			Foreground(selfColor).
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(selfColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	severityStyles = map[view.Severity]lipgloss.Style{
		view.SeverityInfo:    lipgloss.NewStyle().Foreground(mutedColor),
		view.SeveritySuccess: lipgloss.NewStyle().Foreground(selfColor).Bold(true),
		view.SeverityWarning: lipgloss.NewStyle().Foreground(warnColor).Bold(true),
		view.SeverityError:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
	}
)

// terminalRenderer prints every full list it receives. Calls come from
// subscription goroutines, so output is serialized.
type terminalRenderer struct {
	mu    sync.Mutex
	out   io.Writer
	title string
}

func newTerminalRenderer(out io.Writer) *terminalRenderer {
	return &terminalRenderer{out: out}
}

func (r *terminalRenderer) SetTitle(peer *profileModel.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if peer == nil {
		r.title = ""
		return
	}
	r.title = peer.Nickname + " " + handleStyle.Render(view.Handle(peer.Username))
}

func (r *terminalRenderer) RenderConversations(items []view.ConversationView) {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Chats") + "\n")
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("  no conversations yet") + "\n")
	}
	for _, c := range items {
		fmt.Fprintf(&b, "%s %s  %s\n  %s\n",
			c.Title, handleStyle.Render(c.Handle), mutedStyle.Render(c.When), c.LastMessage)
	}
	r.print(b.String())
}

func (r *terminalRenderer) RenderMessages(items []view.MessageView) {
	r.mu.Lock()
	title := r.title
	r.mu.Unlock()

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title) + "\n")
	}
	for _, m := range items {
		style := incomingStyle
		if m.Outgoing {
			style = outgoingStyle
		}
		b.WriteString(style.Render(m.Text+"  "+mutedStyle.Render(m.When)) + "\n")
	}
	r.print(b.String())
}

func (r *terminalRenderer) RenderSearchResults(items []view.ProfileView) {
	var b strings.Builder
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("no users found") + "\n")
	}
	for _, p := range items {
		fmt.Fprintf(&b, "%s %s\n", p.Nickname, handleStyle.Render(p.Handle))
	}
	r.print(b.String())
}

func (r *terminalRenderer) RenderProfile(p profileModel.Profile) {
	v := view.Profile(&p, timeNow())
	lines := []string{
		titleStyle.Render(v.Nickname) + " " + handleStyle.Render(v.Handle),
		mutedStyle.Render("id " + shortID(v.ID)),
	}
	if v.Bio != "" {
		lines = append(lines, v.Bio)
	}
	if v.AvatarURL != "" {
		lines = append(lines, mutedStyle.Render(v.AvatarURL))
	}
	r.print(boxStyle.Render(strings.Join(lines, "\n")) + "\n")
}

func (r *terminalRenderer) Notify(text string, severity view.Severity) {
	style, ok := severityStyles[severity]
	if !ok {
		style = severityStyles[view.SeverityInfo]
	}
	r.print(style.Render(text) + "\n")
}

func (r *terminalRenderer) print(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, s)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
