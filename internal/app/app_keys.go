package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/qrpop/internal/ui/msgs"
)

// handleGlobalKey handles keys that work in every mode, including insert.
func (a App) handleGlobalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.CommandPalette):
		return func() tea.Msg { return msgs.OpenCommandPaletteMsg{} }
	case key.Matches(msg, a.keys.Download):
		return func() tea.Msg { return msgs.DownloadMsg{} }
	case key.Matches(msg, a.keys.NextTheme):
		return func() tea.Msg { return msgs.SwitchThemeMsg{} }
	}
	return nil
}

func (a App) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.QuitNormal):
		return a, tea.Quit
	case key.Matches(msg, a.keys.CycleFocus), key.Matches(msg, a.keys.CycleFocusRev):
		a.cycleFocus()
		return a, nil
	case key.Matches(msg, a.keys.FocusInput):
		a.setFocus(msgs.FocusInput)
		return a, nil
	case key.Matches(msg, a.keys.FocusHistory):
		a.setFocus(msgs.FocusHistory)
		return a, nil
	case key.Matches(msg, a.keys.Help):
		a.setMode(msgs.ModeModal)
		a.help.SetSize(a.width, a.height)
		a.help.Toggle()
		return a, nil
	}

	var cmd tea.Cmd
	switch a.focus {
	case msgs.FocusInput:
		a.generator, cmd = a.generator.Update(msg)
	case msgs.FocusHistory:
		a.historyList, cmd = a.historyList.Update(msg)
	}
	return a, cmd
}

func (a App) updateInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd := a.handleGlobalKey(msg); cmd != nil {
		return a, cmd
	}

	var cmd tea.Cmd
	a.generator, cmd = a.generator.Update(msg)
	if !a.generator.Editing() {
		a.setMode(msgs.ModeNormal)
	}
	return a, cmd
}

func (a *App) cycleFocus() {
	if a.focus == msgs.FocusInput {
		a.setFocus(msgs.FocusHistory)
	} else {
		a.setFocus(msgs.FocusInput)
	}
}

func (a *App) setFocus(p msgs.PanelFocus) {
	a.focus = p
	a.updateFocus()
}

func (a *App) updateFocus() {
	a.generator.SetFocused(a.focus == msgs.FocusInput)
	a.historyList.SetFocused(a.focus == msgs.FocusHistory)
	if a.focus != msgs.FocusInput && a.mode == msgs.ModeInsert {
		a.setMode(msgs.ModeNormal)
	}
}

func (a *App) setMode(m msgs.AppMode) {
	a.mode = m
	a.statusBar.SetMode(m)
}
