package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/qrpop/internal/ui/msgs"
	"github.com/sadopc/qrpop/internal/ui/theme"
)

type clearStatusMsg struct{}

// StatusBar is a full-width bottom status bar.
type StatusBar struct {
	level     string
	modules   int
	pngSize   int
	history   int
	mode      msgs.AppMode
	message   string
	themeName string
	width     int
	theme     theme.Theme
}

// NewStatusBar creates a new status bar.
func NewStatusBar(t theme.Theme, _ theme.Styles) StatusBar {
	return StatusBar{
		theme: t,
		mode:  msgs.ModeNormal,
		level: "M",
	}
}

// SetRender records the size of the current QR code. Zero values clear it.
func (m *StatusBar) SetRender(modules, pngSize int) {
	m.modules = modules
	m.pngSize = pngSize
}

// SetLevel sets the error-correction level name.
func (m *StatusBar) SetLevel(level string) {
	m.level = level
}

// SetHistoryCount sets the number of stored history entries.
func (m *StatusBar) SetHistoryCount(n int) {
	m.history = n
}

// SetMode sets the current app mode.
func (m *StatusBar) SetMode(mode msgs.AppMode) {
	m.mode = mode
}

// SetWidth sets the available width.
func (m *StatusBar) SetWidth(w int) {
	m.width = w
}

// SetMessage sets a temporary status message.
func (m *StatusBar) SetMessage(text string) {
	m.message = text
}

// SetThemeName sets the theme name displayed on the right.
func (m *StatusBar) SetThemeName(name string) {
	m.themeName = name
}

// ClearStatus is the message source the app schedules to clear the status text.
func ClearStatus() tea.Msg {
	return clearStatusMsg{}
}

// Init implements tea.Model.
func (m StatusBar) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	if _, ok := msg.(clearStatusMsg); ok {
		m.message = ""
	}
	return m, nil
}

// View renders the status bar.
func (m StatusBar) View() string {
	bg := m.theme.Surface
	text := func(fg lipgloss.Color, s string) string {
		return lipgloss.NewStyle().Foreground(fg).Background(bg).Render(s)
	}

	var leftParts []string
	leftParts = append(leftParts, theme.LevelBadge(m.theme, m.level))
	if m.message != "" {
		leftParts = append(leftParts, text(m.theme.Text, m.message))
	} else {
		if m.modules > 0 {
			leftParts = append(leftParts, text(m.theme.Subtext, fmt.Sprintf("%dx%d", m.modules, m.modules)))
		}
		if m.pngSize > 0 {
			leftParts = append(leftParts, text(m.theme.Subtext, humanize.IBytes(uint64(m.pngSize))))
		}
		leftParts = append(leftParts, text(m.theme.Muted, fmt.Sprintf("%d/5 saved", m.history)))
	}
	left := strings.Join(leftParts, " │ ")

	modeStr := lipgloss.NewStyle().
		Foreground(m.theme.Accent).
		Background(bg).
		Bold(true).
		Render("[" + m.mode.String() + "]")

	var rightParts []string
	if m.themeName != "" {
		rightParts = append(rightParts, text(m.theme.Blue, m.themeName))
	}
	rightParts = append(rightParts, text(m.theme.Muted, "?:help  Ctrl+K:command"))
	hint := strings.Join(rightParts, " ")

	barStyle := lipgloss.NewStyle().
		Background(bg).
		Foreground(m.theme.Text).
		Width(m.width)

	total := lipgloss.Width(left) + lipgloss.Width(modeStr) + lipgloss.Width(hint)
	if total >= m.width {
		return barStyle.Render(" " + left + " " + modeStr + " " + hint)
	}

	remaining := m.width - total - 2
	gap1 := remaining / 2
	gap2 := remaining - gap1
	return barStyle.Render(" " + left +
		strings.Repeat(" ", gap1) + modeStr +
		strings.Repeat(" ", gap2) + hint)
}
