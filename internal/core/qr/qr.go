// Package qr renders text into QR code images. Symbol encoding and error
// correction are delegated to github.com/skip2/go-qrcode.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Default visual configuration.
const (
	DefaultSize  = 256
	DefaultDark  = "#000000"
	DefaultLight = "#ffffff"
)

// Options describes one render.
type Options struct {
	Text       string
	Width      int
	Height     int
	ColorDark  string
	ColorLight string
	Level      Level
}

// DefaultOptions returns the fixed configuration for text at the given level.
func DefaultOptions(text string, level Level) Options {
	return Options{
		Text:       text,
		Width:      DefaultSize,
		Height:     DefaultSize,
		ColorDark:  DefaultDark,
		ColorLight: DefaultLight,
		Level:      level,
	}
}

// Code is a rendered QR code.
type Code struct {
	Text  string
	Level Level
	Image image.Image
	PNG   []byte

	bitmap [][]bool
}

// Terminal renders the code using half-block characters, two modules per cell row.
func (c *Code) Terminal() string {
	if c == nil || len(c.bitmap) == 0 {
		return ""
	}
	var b strings.Builder
	rows := len(c.bitmap)
	for y := 0; y < rows; y += 2 {
		for x := range c.bitmap[y] {
			top := c.bitmap[y][x]
			bottom := false
			if y+1 < rows {
				bottom = c.bitmap[y+1][x]
			}
			switch {
			case top && bottom:
				b.WriteRune(' ')
			case top:
				b.WriteRune('▄')
			case bottom:
				b.WriteRune('▀')
			default:
				b.WriteRune('█')
			}
		}
		if y+2 < rows {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Modules returns the symbol width in modules, including the quiet zone.
func (c *Code) Modules() int {
	if c == nil {
		return 0
	}
	return len(c.bitmap)
}

// Renderer turns Options into a Code.
type Renderer struct{}

// NewRenderer returns a go-qrcode backed renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// ErrEmptyText is returned when there is nothing to encode.
var ErrEmptyText = errors.New("qr: empty text")

// Render encodes opts.Text and draws it onto a Width x Height canvas.
func (r *Renderer) Render(opts Options) (*Code, error) {
	if opts.Text == "" {
		return nil, ErrEmptyText
	}
	if opts.Width <= 0 {
		opts.Width = DefaultSize
	}
	if opts.Height <= 0 {
		opts.Height = opts.Width
	}

	dark, err := ParseHexColor(orDefault(opts.ColorDark, DefaultDark))
	if err != nil {
		return nil, err
	}
	light, err := ParseHexColor(orDefault(opts.ColorLight, DefaultLight))
	if err != nil {
		return nil, err
	}

	q, err := qrcode.New(opts.Text, opts.Level.recovery())
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}
	q.ForegroundColor = dark
	q.BackgroundColor = light

	side := min(opts.Width, opts.Height)
	symbol := q.Image(side)

	img := symbol
	if opts.Width != opts.Height {
		canvas := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: light}, image.Point{}, draw.Src)
		offset := image.Pt((opts.Width-side)/2, (opts.Height-side)/2)
		draw.Draw(canvas, symbol.Bounds().Add(offset), symbol, symbol.Bounds().Min, draw.Src)
		img = canvas
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}

	return &Code{
		Text:   opts.Text,
		Level:  opts.Level,
		Image:  img,
		PNG:    buf.Bytes(),
		bitmap: q.Bitmap(),
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ParseHexColor parses #rgb or #rrggbb.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
