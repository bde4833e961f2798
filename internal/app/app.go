package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/qrpop/internal/config"
	"github.com/sadopc/qrpop/internal/controller"
	"github.com/sadopc/qrpop/internal/core/qr"
	"github.com/sadopc/qrpop/internal/ui/components"
	"github.com/sadopc/qrpop/internal/ui/layout"
	"github.com/sadopc/qrpop/internal/ui/msgs"
	"github.com/sadopc/qrpop/internal/ui/panels/generator"
	"github.com/sadopc/qrpop/internal/ui/panels/historylist"
	"github.com/sadopc/qrpop/internal/ui/theme"
)

// Deps are the App's collaborators. History is required.
type Deps struct {
	History    controller.HistoryRepository
	Downloader controller.Downloader
	Renderer   controller.QRRenderer
	Logger     *slog.Logger
	// Clipboard writes text to the system clipboard. Defaults to atotto/clipboard.
	Clipboard func(string) error
}

// App is the root Bubble Tea model.
type App struct {
	generator   generator.Model
	historyList historylist.Model

	statusBar      components.StatusBar
	commandPalette components.CommandPalette
	help           components.Help
	toast          components.Toast
	modal          components.Modal

	ctrl      *controller.Controller
	view      *popupView
	clipboard func(string) error
	cfg       config.Config
	log       *slog.Logger

	mode   msgs.AppMode
	focus  msgs.PanelFocus
	layout layout.PanelLayout
	keys   KeyMap

	theme  theme.Theme
	styles theme.Styles

	width  int
	height int
	ready  bool
}

// New creates the App and loads history.
func New(cfg config.Config, d Deps) (App, error) {
	if d.Renderer == nil {
		d.Renderer = qr.NewRenderer()
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if d.Clipboard == nil {
		d.Clipboard = clipboard.WriteAll
	}

	level, err := qr.ParseLevel(cfg.Level)
	if err != nil {
		d.Logger.Warn("invalid level in config, using M", "level", cfg.Level)
		level = qr.Medium
	}

	view := &popupView{}
	ctrl, err := controller.New(controller.Deps{
		Renderer:   d.Renderer,
		History:    d.History,
		Downloader: d.Downloader,
		View:       view,
		Logger:     d.Logger,
	},
		controller.WithLevel(level),
		controller.WithAppearance(cfg.Size, cfg.Foreground, cfg.Background),
	)
	if err != nil {
		return App{}, err
	}

	t := theme.Resolve(cfg.Theme)
	s := theme.NewStyles(t).WithSymbolColors(cfg.Foreground, cfg.Background)

	a := App{
		generator:   generator.New(t, s),
		historyList: historylist.New(t, s),

		statusBar:      components.NewStatusBar(t, s),
		commandPalette: components.NewCommandPalette(t, s),
		help:           components.NewHelp(t, s),
		toast:          components.NewToast(t, s),
		modal:          components.NewModal(t, s),

		ctrl:      ctrl,
		view:      view,
		clipboard: d.Clipboard,
		cfg:       cfg,
		log:       d.Logger,

		mode:  msgs.ModeNormal,
		focus: msgs.FocusInput,
		keys:  DefaultKeyMap(),

		theme:  t,
		styles: s,
	}

	a.generator.SetLevel(level)
	a.statusBar.SetLevel(level.String())
	a.statusBar.SetThemeName(t.Name)

	ctrl.Init(context.Background())
	a.syncView()
	a.updateFocus()
	return a, nil
}

// Init focuses the text input so the popup is ready for typing.
func (a App) Init() tea.Cmd {
	return func() tea.Msg { return msgs.FocusPanelMsg{Panel: msgs.FocusInput} }
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = layout.HandleResize(msg)
		a.resizePanels()
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		if a.commandPalette.Visible {
			var cmd tea.Cmd
			a.commandPalette, cmd = a.commandPalette.Update(msg)
			return a, cmd
		}
		if a.help.Visible {
			var cmd tea.Cmd
			a.help, cmd = a.help.Update(msg)
			return a, cmd
		}
		if a.modal.Visible {
			var cmd tea.Cmd
			a.modal, cmd = a.modal.Update(msg)
			return a, cmd
		}

		if a.focus == msgs.FocusInput && a.generator.Editing() {
			return a.updateInsert(msg)
		}
		if cmd := a.handleGlobalKey(msg); cmd != nil {
			return a, cmd
		}
		return a.handlePanelKey(msg)

	case msgs.GenerateMsg:
		return a.generate(msg.Text)

	case msgs.DownloadMsg:
		return a.download()

	case msgs.RegenerateMsg:
		return a.regenerate(msg.Index)

	case msgs.CycleLevelMsg:
		l := a.ctrl.Level().Next()
		if msg.Reverse {
			l = a.ctrl.Level().Prev()
		}
		return a.setLevel(l)

	case msgs.SetLevelMsg:
		l, err := qr.ParseLevel(msg.Level)
		if err != nil {
			return a, a.toast.Show(err.Error(), true, 0)
		}
		return a.setLevel(l)

	case msgs.CopyTextMsg:
		return a.copyText()

	case msgs.ConfirmClearHistoryMsg:
		if len(a.view.list) == 0 {
			return a, a.toast.Show("History is already empty", false, 2*time.Second)
		}
		a.setMode(msgs.ModeModal)
		a.modal.Show("Clear history?", "All saved entries will be removed.", msgs.ClearHistoryMsg{})
		return a, nil

	case msgs.ClearHistoryMsg:
		_ = a.ctrl.ClearHistory(context.Background())
		return a, a.syncView()

	case msgs.SwitchThemeMsg:
		return a.handleSwitchTheme(msg)

	case msgs.OpenCommandPaletteMsg:
		a.setMode(msgs.ModeCommandPalette)
		a.commandPalette.Open()
		return a, nil

	case msgs.ShowHelpMsg:
		a.setMode(msgs.ModeModal)
		a.help.SetSize(a.width, a.height)
		a.help.Toggle()
		return a, nil

	case msgs.SetModeMsg:
		// An overlay opened by the same command keeps its mode.
		if msg.Mode == msgs.ModeNormal && a.overlayVisible() {
			return a, nil
		}
		if msg.Mode == msgs.ModeNormal && a.focus == msgs.FocusInput && a.generator.Editing() {
			msg.Mode = msgs.ModeInsert
		}
		a.setMode(msg.Mode)
		return a, nil

	case msgs.FocusPanelMsg:
		a.setFocus(msg.Panel)
		if msg.Panel == msgs.FocusInput && !a.generator.Editing() {
			cmd := a.generator.Focus()
			a.setMode(msgs.ModeInsert)
			return a, cmd
		}
		return a, nil

	case msgs.CycleFocusMsg:
		a.cycleFocus()
		return a, nil

	case msgs.StatusMsg:
		a.statusBar.SetMessage(msg.Text)
		if msg.Duration > 0 {
			return a, tea.Tick(msg.Duration, func(time.Time) tea.Msg {
				return components.ClearStatus()
			})
		}
		return a, nil

	case msgs.ToastMsg:
		return a, a.toast.Show(msg.Text, msg.IsError, msg.Duration)
	}

	if components.IsThemePicker(msg) {
		a.setMode(msgs.ModeCommandPalette)
		a.commandPalette.OpenThemePicker(theme.Names())
		return a, nil
	}
	if components.IsHistoryPicker(msg) {
		if len(a.view.list) == 0 {
			return a, a.toast.Show("No history yet", false, 2*time.Second)
		}
		a.setMode(msgs.ModeCommandPalette)
		a.commandPalette.OpenHistoryPicker(a.view.list.Texts())
		return a, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.toast, cmd = a.toast.Update(msg)
	cmds = append(cmds, cmd)
	a.statusBar, cmd = a.statusBar.Update(msg)
	cmds = append(cmds, cmd)
	a.generator, cmd = a.generator.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a App) generate(text string) (tea.Model, tea.Cmd) {
	if err := a.ctrl.Submit(context.Background(), text); err != nil && !errors.Is(err, controller.ErrEmptyInput) {
		a.log.Debug("generate failed", "err", err)
	}
	return a, a.syncView()
}

func (a App) download() (tea.Model, tea.Cmd) {
	if a.ctrl.State() == controller.Idle {
		return a, nil
	}
	_, _ = a.ctrl.Export(context.Background())
	return a, a.syncView()
}

func (a App) regenerate(index int) (tea.Model, tea.Cmd) {
	if index < 0 || index >= len(a.view.list) {
		return a, nil
	}
	_ = a.ctrl.SelectHistoryEntry(context.Background(), a.view.list[index])
	return a, a.syncView()
}

func (a App) setLevel(l qr.Level) (tea.Model, tea.Cmd) {
	a.ctrl.SetLevel(l)
	a.generator.SetLevel(l)
	a.statusBar.SetLevel(l.String())
	if a.ctrl.State() == controller.Rendered {
		return a, func() tea.Msg {
			return msgs.StatusMsg{Text: "Level " + l.Name() + " applies to the next generation", Duration: 3 * time.Second}
		}
	}
	return a, nil
}

func (a App) copyText() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(a.generator.Value())
	if code := a.ctrl.Current(); code != nil {
		text = code.Text
	}
	if text == "" {
		return a, a.toast.Show("Nothing to copy", true, 2*time.Second)
	}
	if err := a.clipboard(text); err != nil {
		return a, a.toast.Show("Clipboard error: "+err.Error(), true, 3*time.Second)
	}
	return a, a.toast.Show("Copied to clipboard", false, 2*time.Second)
}

// syncView copies controller output into the panels and surfaces any notice.
func (a *App) syncView() tea.Cmd {
	v := a.view
	if v.inputDirty {
		a.generator.SetValue(v.input)
		v.inputDirty = false
	}
	a.generator.SetCode(v.code)
	a.generator.SetExportEnabled(v.exportEnabled)
	a.historyList.SetEntries(v.list)

	pngSize := 0
	if v.code != nil {
		pngSize = len(v.code.PNG)
	}
	a.statusBar.SetRender(v.code.Modules(), pngSize)
	a.statusBar.SetHistoryCount(len(v.list))

	n, ok := v.takeNotice()
	if !ok {
		return nil
	}
	d := 2 * time.Second
	if n.isError {
		d = 4 * time.Second
	}
	return a.toast.Show(n.text, n.isError, d)
}

func (a App) overlayVisible() bool {
	return a.commandPalette.Visible || a.help.Visible || a.modal.Visible
}

func (a *App) resizePanels() {
	l := a.layout
	a.generator.SetSize(l.GeneratorWidth, l.ContentHeight)
	a.historyList.SetSize(l.HistoryWidth, l.ContentHeight)
	a.statusBar.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)
	a.updateFocus()
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	title := a.styles.Title.Render(" qrpop") + a.styles.Muted.Render("  text → QR code")

	var panels string
	if a.layout.SinglePanel {
		if a.focus == msgs.FocusHistory {
			panels = a.historyList.View()
		} else {
			panels = a.generator.View()
		}
	} else {
		panels = lipgloss.JoinHorizontal(lipgloss.Top, a.generator.View(), a.historyList.View())
	}

	main := lipgloss.JoinVertical(lipgloss.Left, title, panels, a.statusBar.View())

	if a.commandPalette.Visible {
		main = overlayCenter(main, a.commandPalette.View(), a.width, a.height)
	}
	if a.help.Visible {
		main = overlayCenter(main, a.help.View(), a.width, a.height)
	}
	if a.modal.Visible {
		main = overlayCenter(main, a.modal.View(), a.width, a.height)
	}
	if a.toast.Visible {
		main = overlayTopRight(main, a.toast.View(), a.width)
	}
	return main
}
