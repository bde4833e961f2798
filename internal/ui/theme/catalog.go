package theme

import (
	"sort"
	"strings"
)

// Catalog maps normalized theme names to themes.
var Catalog = map[string]Theme{}

func init() {
	for _, t := range []Theme{CatppuccinMocha, CatppuccinLatte, Nord, Dracula, GruvboxDark, TokyoNight} {
		Catalog[normalizeKey(t.Name)] = t
	}
}

// Get returns a built-in theme by name.
func Get(name string) (Theme, bool) {
	t, ok := Catalog[normalizeKey(name)]
	return t, ok
}

// Names returns the built-in theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for _, t := range Catalog {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// Next returns the theme after name in Names order, wrapping around.
func Next(name string) Theme {
	names := Names()
	key := normalizeKey(name)
	for i, n := range names {
		if normalizeKey(n) == key {
			t, _ := Get(names[(i+1)%len(names)])
			return t
		}
	}
	return CatppuccinMocha
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
