// Package tui implements the interactive chat console for ctb-admin.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/x140y40/coolq-telegram-bot/pkg/api"
	"github.com/x140y40/coolq-telegram-bot/pkg/cqcode"
)

// Target names the single conversation the console talks to.
type Target struct {
	GroupID   int64
	DiscussID int64
	UserID    int64
}

// Action picks the send action for the target, group first, then discuss,
// then private. Empty means no target was given.
func (t Target) Action() string {
	switch {
	case t.GroupID > 0:
		return "send_group_msg"
	case t.DiscussID > 0:
		return "send_discuss_msg"
	case t.UserID > 0:
		return "send_private_msg"
	default:
		return ""
	}
}

func (t Target) params(message string) map[string]any {
	p := map[string]any{"message": message}
	switch {
	case t.GroupID > 0:
		p["group_id"] = t.GroupID
	case t.DiscussID > 0:
		p["discuss_id"] = t.DiscussID
	case t.UserID > 0:
		p["user_id"] = t.UserID
	}
	return p
}

func (t Target) label() string {
	switch {
	case t.GroupID > 0:
		return fmt.Sprintf("group %d", t.GroupID)
	case t.DiscussID > 0:
		return fmt.Sprintf("discuss %d", t.DiscussID)
	case t.UserID > 0:
		return fmt.Sprintf("user %d", t.UserID)
	default:
		return "(no target)"
	}
}

// RunChat blocks until the user quits the console.
func RunChat(client *api.Client, target Target) error {
	p := tea.NewProgram(newChatModel(client, target), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat console failed: %w", err)
	}
	return nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selfStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

type sentMsg struct {
	messageID int64
	err       error
}

type chatModel struct {
	client *api.Client
	target Target

	vp    viewport.Model
	input textinput.Model
	lines []string
	ready bool
}

func newChatModel(client *api.Client, target Target) chatModel {
	ti := textinput.New()
	ti.Placeholder = "type a message, /at <qq> to mention, ctrl+c to quit"
	ti.CharLimit = 4000
	ti.Focus()

	return chatModel{
		client: client,
		target: target,
		input:  ti,
		lines: []string{
			infoStyle.Render("connected to " + target.label()),
		},
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		inputHeight := 3
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - inputHeight
		}
		m.input.Width = msg.Width - 4
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			outgoing := renderOutgoing(text)
			m.appendLine(selfStyle.Render("me> ") + outgoing)
			return m, m.sendCmd(outgoing)
		}

	case sentMsg:
		if msg.err != nil {
			m.appendLine(errStyle.Render("send failed: " + msg.err.Error()))
		} else if msg.messageID != 0 {
			m.appendLine(infoStyle.Render(fmt.Sprintf("delivered (message_id=%d)", msg.messageID)))
		} else {
			m.appendLine(infoStyle.Render("delivered"))
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m chatModel) View() string {
	if !m.ready {
		return "loading..."
	}
	return fmt.Sprintf(
		"%s\n%s\n%s",
		m.vp.View(),
		m.input.View(),
		helpStyle.Render(titleStyle.Render("ctb chat")+" | "+m.target.label()+" | esc to quit"),
	)
}

func (m *chatModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refresh()
}

func (m *chatModel) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(strings.Join(m.lines, "\n"))
	m.vp.GotoBottom()
}

func (m chatModel) sendCmd(message string) tea.Cmd {
	client := m.client
	target := m.target
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		data, err := client.Call(ctx, target.Action(), target.params(message))
		if err != nil {
			return sentMsg{err: err}
		}
		return sentMsg{messageID: messageIDFrom(data)}
	}
}

func messageIDFrom(data any) int64 {
	obj, ok := data.(map[string]any)
	if !ok {
		return 0
	}
	switch v := obj["message_id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

// renderOutgoing expands the /at shorthand into a CQ mention segment so the
// console can exercise the same wire format as bot handlers.
func renderOutgoing(text string) string {
	rest, ok := strings.CutPrefix(text, "/at ")
	if !ok {
		return text
	}
	qq, body, _ := strings.Cut(strings.TrimSpace(rest), " ")
	var n int64
	if _, err := fmt.Sscanf(qq, "%d", &n); err != nil || n <= 0 {
		return text
	}
	out := cqcode.At(n).String()
	if strings.TrimSpace(body) != "" {
		out += " " + strings.TrimSpace(body)
	}
	return out
}
