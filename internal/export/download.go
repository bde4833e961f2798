// Package export saves rendered QR codes as PNG files.
package export

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	filenamePrefix = "qr-code-"
	filenameExt    = ".png"
	maxNameRunes   = 20
)

// Filename returns the suggested download name for text:
// "qr-code-" + the first 20 characters of text + ".png". Path separators
// and control characters are replaced so the name is always a single
// path element.
func Filename(text string) string {
	runes := []rune(text)
	if len(runes) > maxNameRunes {
		runes = runes[:maxNameRunes]
	}
	for i, r := range runes {
		switch {
		case r == '/' || r == '\\' || r == os.PathSeparator:
			runes[i] = '_'
		case r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			runes[i] = '_'
		case unicode.IsControl(r):
			runes[i] = '_'
		}
	}
	return filenamePrefix + string(runes) + filenameExt
}

// DataURI encodes PNG bytes as a data URI.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// DirDownloader writes files into a directory.
type DirDownloader struct {
	Dir string
}

// NewDirDownloader returns a downloader writing into dir. An empty dir
// resolves to ~/Downloads when it exists, else the working directory.
func NewDirDownloader(dir string) *DirDownloader {
	if dir == "" {
		dir = DefaultDir()
	}
	return &DirDownloader{Dir: dir}
}

// DefaultDir returns ~/Downloads if present, otherwise ".".
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err == nil {
		d := filepath.Join(home, "Downloads")
		if fi, err := os.Stat(d); err == nil && fi.IsDir() {
			return d
		}
	}
	return "."
}

// Save writes data to Dir/name and returns the full path. An existing file
// with the same name is overwritten.
func (d *DirDownloader) Save(name string, data []byte) (string, error) {
	if name == "" || strings.ContainsRune(name, os.PathSeparator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if len(data) == 0 {
		return "", errors.New("nothing to save")
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating download dir: %w", err)
	}
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}
