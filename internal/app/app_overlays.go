package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/qrpop/internal/ui/components"
	"github.com/sadopc/qrpop/internal/ui/msgs"
	"github.com/sadopc/qrpop/internal/ui/theme"
)

// handleSwitchTheme applies a named theme, or the next one when the name is
// empty. Panels keep their state; overlays are rebuilt.
func (a App) handleSwitchTheme(msg msgs.SwitchThemeMsg) (tea.Model, tea.Cmd) {
	t := theme.Next(a.theme.Name)
	if msg.Name != "" {
		t = theme.Resolve(msg.Name)
	}
	s := theme.NewStyles(t).WithSymbolColors(a.cfg.Foreground, a.cfg.Background)
	a.theme = t
	a.styles = s

	a.generator.SetStyles(t, s)
	a.historyList.SetStyles(t, s)

	a.statusBar = components.NewStatusBar(t, s)
	a.commandPalette = components.NewCommandPalette(t, s)
	a.help = components.NewHelp(t, s)
	a.toast = components.NewToast(t, s)
	a.modal = components.NewModal(t, s)

	a.statusBar.SetLevel(a.ctrl.Level().String())
	a.statusBar.SetThemeName(t.Name)
	a.statusBar.SetMode(a.mode)
	a.syncView()
	a.resizePanels()

	return a, a.toast.Show("Theme: "+t.Name, false, 2*time.Second)
}

func overlayCenter(_, overlay string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func overlayTopRight(bg, overlay string, width int) string {
	gap := max(width-lipgloss.Width(overlay)-2, 0)
	positioned := lipgloss.NewStyle().MarginLeft(gap).Render(overlay)
	return positioned + "\n" + bg
}
