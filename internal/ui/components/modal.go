package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/qrpop/internal/ui/msgs"
	"github.com/sadopc/qrpop/internal/ui/theme"
)

// Modal is a yes/no confirm dialog. Confirming emits the message given to Show.
type Modal struct {
	Visible   bool
	Title     string
	Message   string
	onConfirm tea.Msg
	focusOK   bool
	theme     theme.Theme
}

// NewModal creates a new modal dialog.
func NewModal(t theme.Theme, _ theme.Styles) Modal {
	return Modal{
		theme:   t,
		focusOK: true,
	}
}

// Show displays the modal with the given title, message, and confirm action.
func (m *Modal) Show(title, message string, onConfirm tea.Msg) {
	m.Visible = true
	m.Title = title
	m.Message = message
	m.onConfirm = onConfirm
	m.focusOK = true
}

// Init implements tea.Model.
func (m Modal) Init() tea.Cmd {
	return nil
}

func backToNormal() tea.Msg {
	return msgs.SetModeMsg{Mode: msgs.ModeNormal}
}

// Update implements tea.Model.
func (m Modal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "n":
		m.Visible = false
		return m, backToNormal
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.focusOK = !m.focusOK
		return m, nil
	case "y":
		m.focusOK = true
		fallthrough
	case "enter":
		m.Visible = false
		if m.focusOK && m.onConfirm != nil {
			confirm := m.onConfirm
			return m, tea.Batch(backToNormal, func() tea.Msg { return confirm })
		}
		return m, backToNormal
	}
	return m, nil
}

// View renders the modal dialog.
func (m Modal) View() string {
	if !m.Visible {
		return ""
	}

	const boxWidth = 46

	titleStyle := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(boxWidth - 4).
		Align(lipgloss.Center)
	messageStyle := lipgloss.NewStyle().
		Foreground(m.theme.Subtext).
		Width(boxWidth - 4).
		Align(lipgloss.Center)

	active := lipgloss.NewStyle().Padding(0, 3).Foreground(m.theme.Base).Bold(true)
	idle := lipgloss.NewStyle().Padding(0, 3).Background(m.theme.Surface).Foreground(m.theme.Subtext)

	okStyle, cancelStyle := active.Background(m.theme.Accent), idle
	if !m.focusOK {
		okStyle, cancelStyle = idle, active.Background(m.theme.Red)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		okStyle.Render("Yes"),
		"  ",
		cancelStyle.Render("No"),
	)
	buttonsRow := lipgloss.NewStyle().
		Width(boxWidth - 4).
		Align(lipgloss.Center).
		Render(buttons)

	content := titleStyle.Render(m.Title) + "\n\n" +
		messageStyle.Render(m.Message) + "\n\n" +
		buttonsRow

	return lipgloss.NewStyle().
		Width(boxWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}
