package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

type yamlTheme struct {
	Name            string `yaml:"name"`
	Base            string `yaml:"base"`
	Surface         string `yaml:"surface"`
	Overlay         string `yaml:"overlay"`
	Text            string `yaml:"text"`
	Subtext         string `yaml:"subtext"`
	Muted           string `yaml:"muted"`
	Accent          string `yaml:"accent"`
	Red             string `yaml:"red"`
	Peach           string `yaml:"peach"`
	Yellow          string `yaml:"yellow"`
	Green           string `yaml:"green"`
	Blue            string `yaml:"blue"`
	BorderFocused   string `yaml:"border_focused"`
	BorderUnfocused string `yaml:"border_unfocused"`
}

// LoadCustomTheme reads a YAML theme. Missing colors are taken from Mocha.
func LoadCustomTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme file: %w", err)
	}

	var yt yamlTheme
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return Theme{}, fmt.Errorf("parsing theme YAML: %w", err)
	}
	if yt.Name == "" {
		base := filepath.Base(path)
		yt.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	t := CatppuccinMocha
	t.Name = yt.Name
	pick := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	pick(&t.Base, yt.Base)
	pick(&t.Surface, yt.Surface)
	pick(&t.Overlay, yt.Overlay)
	pick(&t.Text, yt.Text)
	pick(&t.Subtext, yt.Subtext)
	pick(&t.Muted, yt.Muted)
	pick(&t.Accent, yt.Accent)
	pick(&t.Red, yt.Red)
	pick(&t.Peach, yt.Peach)
	pick(&t.Yellow, yt.Yellow)
	pick(&t.Green, yt.Green)
	pick(&t.Blue, yt.Blue)
	pick(&t.BorderFocused, yt.BorderFocused)
	pick(&t.BorderUnfocused, yt.BorderUnfocused)
	return t, nil
}

// LoadCustomThemes loads every .yaml/.yml theme in dir, skipping broken files.
func LoadCustomThemes(dir string) map[string]Theme {
	themes := make(map[string]Theme)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return themes
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		t, err := LoadCustomTheme(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		themes[normalizeKey(t.Name)] = t
	}
	return themes
}
