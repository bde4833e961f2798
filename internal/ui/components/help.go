package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/qrpop/internal/ui/msgs"
	"github.com/sadopc/qrpop/internal/ui/theme"
)

type helpSection struct {
	Title    string
	Bindings []helpBinding
}

type helpBinding struct {
	Key  string
	Desc string
}

var helpSections = []helpSection{
	{
		Title: "General",
		Bindings: []helpBinding{
			{"Ctrl+C", "Quit"},
			{"Ctrl+K", "Open command palette"},
			{"?", "Toggle this help"},
			{"Tab", "Switch between input and history"},
			{"Ctrl+T", "Next theme"},
		},
	},
	{
		Title: "Generate",
		Bindings: []helpBinding{
			{"i", "Edit text (insert mode)"},
			{"Enter", "Generate QR code"},
			{"Esc", "Back to normal mode"},
			{"< / >", "Lower / raise error correction"},
			{"d / Ctrl+S", "Download PNG"},
			{"y", "Copy text to clipboard"},
		},
	},
	{
		Title: "History",
		Bindings: []helpBinding{
			{"j / k", "Move cursor down / up"},
			{"Enter", "Regenerate selected entry"},
			{"X", "Clear history"},
		},
	},
}

// Help is a help overlay showing keybindings.
type Help struct {
	Visible  bool
	viewport viewport.Model
	theme    theme.Theme
	width    int
	height   int
	ready    bool
}

// NewHelp creates a new help overlay.
func NewHelp(t theme.Theme, _ theme.Styles) Help {
	return Help{theme: t}
}

// SetSize sets the terminal dimensions for centering.
func (m *Help) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Toggle toggles help visibility.
func (m *Help) Toggle() {
	m.Visible = !m.Visible
	if m.Visible {
		m.buildViewport()
	}
}

func (m *Help) buildViewport() {
	const contentWidth = 50

	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.Accent).
		Bold(true).
		Width(12).
		Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	sectionStyle := lipgloss.NewStyle().
		Foreground(m.theme.Blue).
		Bold(true).
		MarginTop(1)
	sepStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var lines []string
	for _, section := range helpSections {
		lines = append(lines, sectionStyle.Render(section.Title))
		lines = append(lines, sepStyle.Render(strings.Repeat("─", contentWidth)))
		for _, b := range section.Bindings {
			lines = append(lines, keyStyle.Render(b.Key)+sepStyle.Render(" │ ")+descStyle.Render(b.Desc))
		}
	}

	vpHeight := m.height - 8
	if vpHeight < 10 {
		vpHeight = 10
	}
	m.viewport = viewport.New(contentWidth, vpHeight)
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.ready = true
}

// Init implements tea.Model.
func (m Help) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Help) Update(msg tea.Msg) (Help, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "?", "q":
			m.Visible = false
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the help overlay.
func (m Help) View() string {
	if !m.Visible {
		return ""
	}
	if !m.ready {
		m.buildViewport()
	}

	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(50).
		Align(lipgloss.Center).
		Render("Keyboard Shortcuts")

	return lipgloss.NewStyle().
		Width(56).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(title + "\n\n" + m.viewport.View())
}
