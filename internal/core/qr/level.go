package qr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Level is a QR error-correction level.
type Level int

const (
	Low Level = iota
	Medium
	Quartile
	High
)

// Levels lists every level in selector order.
var Levels = []Level{Low, Medium, Quartile, High}

// String returns the single-letter level code.
func (l Level) String() string {
	switch l {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	default:
		return "?"
	}
}

// Name returns the long level name shown in the UI.
func (l Level) Name() string {
	switch l {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case Quartile:
		return "Quartile"
	case High:
		return "High"
	default:
		return "Unknown"
	}
}

// Next cycles to the following level, wrapping around.
func (l Level) Next() Level {
	return Levels[(int(l)+1)%len(Levels)]
}

// Prev cycles to the preceding level, wrapping around.
func (l Level) Prev() Level {
	return Levels[(int(l)-1+len(Levels))%len(Levels)]
}

// recovery maps a level to the encoder's internal code.
func (l Level) recovery() qrcode.RecoveryLevel {
	switch l {
	case Low:
		return qrcode.Low
	case Quartile:
		return qrcode.High
	case High:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// ParseLevel accepts a letter code (L, M, Q, H) or a long name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return Low, nil
	case "m", "medium":
		return Medium, nil
	case "q", "quartile":
		return Quartile, nil
	case "h", "high":
		return High, nil
	}
	return Medium, fmt.Errorf("unknown error-correction level %q (use L, M, Q, or H)", s)
}
