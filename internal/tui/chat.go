// Package tui is the interactive display layer. It is thin glue over the
// session boundary: it submits utterances and renders the transcript.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"college-chatbot/internal/models"
	"college-chatbot/internal/session"
)

// quickQuestions are common questions bound to function keys.
var quickQuestions = []struct {
	key   string
	label string
	text  string
}{
	{"f1", "Tuition", "cse category 1 fee"},
	{"f2", "Hostel", "hostel fee"},
	{"f3", "Admission", "admission process"},
	{"f4", "Placements", "placements"},
	{"f5", "Scholarships", "scholarship"},
}

// replyMsg carries a completed submission back into the update loop.
type replyMsg struct{}

// errMsg carries a failed submission; the session appended nothing.
type errMsg struct{ err error }

// ChatModel is the root Bubble Tea model for the assistant.
type ChatModel struct {
	session *session.Session
	styles  Styles

	input   string
	width   int
	height  int
	waiting bool
	err     error
}

// NewChatModel builds the display model over an open session.
func NewChatModel(s *session.Session) ChatModel {
	return ChatModel{
		session: s,
		styles:  newStyles(),
		width:   80,
	}
}

func (m ChatModel) Init() tea.Cmd {
	return nil
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case replyMsg:
		m.waiting = false
		return m, nil

	case errMsg:
		m.waiting = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ChatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		text := strings.TrimSpace(m.input)
		if text == "" || m.waiting {
			return m, nil
		}
		m.input = ""
		return m.submit(text)

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeySpace:
		m.input += " "
		return m, nil

	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m, nil
	}

	if !m.waiting {
		for _, q := range quickQuestions {
			if msg.String() == q.key {
				return m.submit(q.text)
			}
		}
	}

	return m, nil
}

func (m ChatModel) submit(text string) (tea.Model, tea.Cmd) {
	m.waiting = true
	m.err = nil
	s := m.session
	return m, func() tea.Msg {
		if _, err := s.Submit(context.Background(), text); err != nil {
			return errMsg{err: err}
		}
		return replyMsg{}
	}
}

func (m ChatModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("VIT-AP AI Campus Assistant"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render("Get instant answers about admissions, fees, campus life"))
	b.WriteString("\n\n")

	maxMsg := m.width * 3 / 4
	if maxMsg < 20 {
		maxMsg = 20
	}

	for _, msg := range m.session.Transcript() {
		switch msg.Speaker {
		case models.SpeakerUser:
			line := m.styles.UserMsg.MaxWidth(maxMsg).Render(msg.Text)
			b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Right, line))
		default:
			b.WriteString(m.styles.BotMsg.MaxWidth(maxMsg).Render(msg.Text))
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("The assistant hit an internal fault: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Prompt.Render("> "))
	b.WriteString(m.input)
	if m.waiting {
		b.WriteString(m.styles.Subtle.Render(" …"))
	}
	b.WriteString("\n")

	var hints []string
	for _, q := range quickQuestions {
		hints = append(hints, strings.ToUpper(q.key)+" "+q.label)
	}
	hints = append(hints, "Esc quit")
	b.WriteString(m.styles.Footer.Render(strings.Join(hints, " · ")))

	return b.String()
}
