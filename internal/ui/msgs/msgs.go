package msgs

import "time"

// Panel focus targets
type PanelFocus int

const (
	FocusInput PanelFocus = iota
	FocusHistory
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeInsert
	ModeCommandPalette
	ModeModal
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommandPalette:
		return "COMMAND"
	case ModeModal:
		return "MODAL"
	default:
		return "UNKNOWN"
	}
}

// FocusPanelMsg requests focus change to a specific panel.
type FocusPanelMsg struct {
	Panel PanelFocus
}

// CycleFocusMsg toggles focus between the input and the history list.
type CycleFocusMsg struct{}

// GenerateMsg submits text for QR generation.
type GenerateMsg struct {
	Text string
}

// DownloadMsg exports the current QR code as a PNG.
type DownloadMsg struct{}

// RegenerateMsg regenerates the history entry at Index.
type RegenerateMsg struct {
	Index int
}

// CycleLevelMsg moves the error-correction selector.
type CycleLevelMsg struct {
	Reverse bool
}

// SetLevelMsg selects an error-correction level by name (L, M, Q, H).
type SetLevelMsg struct {
	Level string
}

// CopyTextMsg copies the rendered text to the clipboard.
type CopyTextMsg struct{}

// ConfirmClearHistoryMsg asks the user before wiping history.
type ConfirmClearHistoryMsg struct{}

// ClearHistoryMsg wipes history.
type ClearHistoryMsg struct{}

// SwitchThemeMsg requests switching to a named theme. An empty name cycles.
type SwitchThemeMsg struct {
	Name string
}

// OpenCommandPaletteMsg opens the command palette.
type OpenCommandPaletteMsg struct{}

// ShowHelpMsg toggles the help overlay.
type ShowHelpMsg struct{}

// SetModeMsg changes the app mode.
type SetModeMsg struct {
	Mode AppMode
}

// StatusMsg sets a temporary status bar message.
type StatusMsg struct {
	Text     string
	Duration time.Duration
}

// ToastMsg shows a toast notification.
type ToastMsg struct {
	Text     string
	Duration time.Duration
	IsError  bool
}
