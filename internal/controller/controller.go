// Package controller turns user intent into QR renders, history updates and
// exports. It owns no UI; everything it touches is passed in as a capability.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sadopc/qrpop/internal/core/history"
	"github.com/sadopc/qrpop/internal/core/qr"
	"github.com/sadopc/qrpop/internal/export"
)

// ErrEmptyInput is returned by Submit when the trimmed input is empty.
var ErrEmptyInput = errors.New("please enter text or URL")

// QRRenderer renders a QR code.
type QRRenderer interface {
	Render(opts qr.Options) (*qr.Code, error)
}

// HistoryRepository is the bounded history store.
type HistoryRepository interface {
	Load(ctx context.Context) (history.List, error)
	Record(ctx context.Context, text string) (history.List, error)
	Clear(ctx context.Context) error
}

// Downloader saves an exported image and reports where it went.
type Downloader interface {
	Save(name string, data []byte) (string, error)
}

// View receives state changes.
type View interface {
	SetInput(text string)
	ShowRender(code *qr.Code)
	ShowHistory(list history.List)
	SetExportEnabled(enabled bool)
	ShowNotice(text string, isError bool)
}

// State is the controller's position in the popup lifecycle.
type State int

const (
	Idle State = iota
	Rendered
)

func (s State) String() string {
	if s == Rendered {
		return "rendered"
	}
	return "idle"
}

// Deps bundles the collaborators.
type Deps struct {
	Renderer   QRRenderer
	History    HistoryRepository
	Downloader Downloader
	View       View
	Logger     *slog.Logger
}

// Controller implements the popup behavior.
type Controller struct {
	renderer   QRRenderer
	history    HistoryRepository
	downloader Downloader
	view       View
	log        *slog.Logger

	level   qr.Level
	size    int
	dark    string
	light   string
	current *qr.Code
}

// Option configures a Controller.
type Option func(*Controller)

// WithLevel sets the initial error-correction level.
func WithLevel(l qr.Level) Option {
	return func(c *Controller) { c.level = l }
}

// WithAppearance overrides the fixed size and colors.
func WithAppearance(size int, dark, light string) Option {
	return func(c *Controller) {
		if size > 0 {
			c.size = size
		}
		if dark != "" {
			c.dark = dark
		}
		if light != "" {
			c.light = light
		}
	}
}

// New creates a controller. Renderer, History and View are required.
func New(d Deps, opts ...Option) (*Controller, error) {
	if d.Renderer == nil || d.History == nil || d.View == nil {
		return nil, errors.New("controller: renderer, history and view are required")
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		renderer:   d.Renderer,
		history:    d.History,
		downloader: d.Downloader,
		view:       d.View,
		log:        logger,
		level:      qr.Medium,
		size:       qr.DefaultSize,
		dark:       qr.DefaultDark,
		light:      qr.DefaultLight,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Init loads the stored history into the view.
func (c *Controller) Init(ctx context.Context) {
	list, err := c.history.Load(ctx)
	if err != nil {
		c.log.Warn("history load failed", "err", err)
	}
	c.view.ShowHistory(list)
	c.view.SetExportEnabled(false)
}

// Submit validates raw, renders it, and records it in history.
func (c *Controller) Submit(ctx context.Context, raw string) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		c.view.ShowNotice(ErrEmptyInput.Error(), true)
		return ErrEmptyInput
	}

	code, err := c.renderer.Render(qr.Options{
		Text:       text,
		Width:      c.size,
		Height:     c.size,
		ColorDark:  c.dark,
		ColorLight: c.light,
		Level:      c.level,
	})
	if err != nil {
		c.log.Error("render failed", "level", c.level.String(), "len", len(text), "err", err)
		c.view.ShowNotice("Render failed: "+err.Error(), true)
		return fmt.Errorf("rendering: %w", err)
	}

	c.current = code
	c.view.ShowRender(code)
	c.view.SetExportEnabled(true)
	c.log.Debug("rendered", "level", c.level.String(), "modules", code.Modules())

	list, err := c.history.Record(ctx, text)
	switch {
	case errors.Is(err, history.ErrReset):
		c.log.Warn("unreadable history replaced", "err", err)
		c.view.ShowNotice("Stored history was unreadable and has been reset", true)
	case err != nil:
		c.log.Warn("history save failed", "err", err)
		c.view.ShowNotice("History not saved: "+err.Error(), true)
	}
	if list != nil {
		c.view.ShowHistory(list)
	}
	return nil
}

// Export saves the current render. With nothing rendered it does nothing
// and returns an empty location.
func (c *Controller) Export(ctx context.Context) (string, error) {
	if c.current == nil || c.downloader == nil {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := export.Filename(c.current.Text)
	path, err := c.downloader.Save(name, c.current.PNG)
	if err != nil {
		c.log.Error("export failed", "file", name, "err", err)
		c.view.ShowNotice("Download failed: "+err.Error(), true)
		return "", fmt.Errorf("exporting: %w", err)
	}
	c.log.Info("exported", "path", path, "bytes", len(c.current.PNG))
	c.view.ShowNotice("Saved "+path, false)
	return path, nil
}

// SelectHistoryEntry re-runs the full submit pipeline for entry.
func (c *Controller) SelectHistoryEntry(ctx context.Context, entry history.Entry) error {
	c.view.SetInput(entry.Text)
	return c.Submit(ctx, entry.Text)
}

// ClearHistory empties the stored history.
func (c *Controller) ClearHistory(ctx context.Context) error {
	if err := c.history.Clear(ctx); err != nil {
		c.log.Warn("history clear failed", "err", err)
		c.view.ShowNotice("Could not clear history: "+err.Error(), true)
		return err
	}
	c.view.ShowHistory(history.List{})
	c.view.ShowNotice("History cleared", false)
	return nil
}

// SetLevel changes the level used by the next Submit.
func (c *Controller) SetLevel(l qr.Level) { c.level = l }

// Level returns the selected error-correction level.
func (c *Controller) Level() qr.Level { return c.level }

// Current returns the last successful render, or nil.
func (c *Controller) Current() *qr.Code { return c.current }

// State reports whether a render exists.
func (c *Controller) State() State {
	if c.current == nil {
		return Idle
	}
	return Rendered
}
