package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/qrpop/internal/ui/theme"
)

const defaultToastDuration = 3 * time.Second

type toastDismissMsg struct {
	seq int
}

// Toast is an auto-dismiss notification. It never blocks input.
type Toast struct {
	Visible  bool
	text     string
	isError  bool
	duration time.Duration
	seq      int
	theme    theme.Theme
}

// NewToast creates a new toast component.
func NewToast(t theme.Theme, _ theme.Styles) Toast {
	return Toast{
		theme:    t,
		duration: defaultToastDuration,
	}
}

// Show displays text and returns a Cmd that dismisses it after duration.
// A later Show supersedes the pending dismissal of an earlier one.
func (m *Toast) Show(text string, isError bool, duration time.Duration) tea.Cmd {
	m.Visible = true
	m.text = text
	m.isError = isError
	m.duration = duration
	if m.duration <= 0 {
		m.duration = defaultToastDuration
	}
	m.seq++
	seq := m.seq
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return toastDismissMsg{seq: seq}
	})
}

// Text returns the message currently shown.
func (m Toast) Text() string {
	return m.text
}

// IsError reports whether the current message is an error.
func (m Toast) IsError() bool {
	return m.isError
}

// Init implements tea.Model.
func (m Toast) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	if d, ok := msg.(toastDismissMsg); ok && d.seq == m.seq {
		m.Visible = false
		m.text = ""
	}
	return m, nil
}

// View renders the toast notification.
func (m Toast) View() string {
	if !m.Visible || m.text == "" {
		return ""
	}

	fg := m.theme.Green
	if m.isError {
		fg = m.theme.Red
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(m.theme.Surface).
		Bold(true).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		Render(m.text)
}
