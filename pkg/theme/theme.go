// Package theme holds the static colour palette of the frontend.
//
// It is declarative data shared with the CSS build (content globs, named colours) and
// used by server-rendered fragments such as the error modal. It has no runtime
// behaviour beyond lookup.
package theme

import (
	"fmt"
	"io"
	"maps"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// Theme is the palette and the template globs the CSS build scans.
type Theme struct {
	Content []string          `yaml:"content"`
	Colors  map[string]string `yaml:"colors"`
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Default returns the built-in palette.
func Default() Theme {
	return Theme{
		Content: []string{"web/templates/**/*.html"},
		Colors: map[string]string{
			"primary-500":   "#BE3CC7",
			"primary-600":   "#8E3095",
			"primary-700":   "#6A266F",
			"primary-800":   "#461A49",
			"primary-900":   "#220D23",
			"secondary-500": "#FC4A53",
			"secondary-600": "#E0464E",
			"secondary-700": "#A7383D",
			"secondary-800": "#6E272A",
			"secondary-900": "#351415",
			"accent-500":    "#684DCD",
			"accent-600":    "#523E9D",
			"accent-700":    "#3F3075",
			"accent-800":    "#2A214D",
			"accent-900":    "#151125",
		},
	}
}

// Color returns the hex value of a named colour.
func (t Theme) Color(name string) (string, bool) {
	c, ok := t.Colors[name]
	return c, ok
}

// MustColor is Color for names known at compile time. Unknown names yield black.
func (t Theme) MustColor(name string) string {
	if c, ok := t.Colors[name]; ok {
		return c
	}
	return "#000000"
}

// Names returns the colour names in sorted order.
func (t Theme) Names() []string {
	var names []string
	for name := range t.Colors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate checks every colour is a hex literal.
func (t Theme) Validate() error {
	for _, name := range t.Names() {
		if !hexColor.MatchString(t.Colors[name]) {
			return fmt.Errorf("theme colour %s: invalid hex value %q", name, t.Colors[name])
		}
	}
	return nil
}

// Decode reads a YAML theme. Colours it names override the defaults; the rest are kept.
func Decode(r io.Reader) (Theme, error) {
	var overlay Theme
	if err := yaml.NewDecoder(r).Decode(&overlay); err != nil && err != io.EOF {
		return Theme{}, fmt.Errorf("decode theme: %w", err)
	}

	t := Default()
	if len(overlay.Content) > 0 {
		t.Content = overlay.Content
	}
	maps.Copy(t.Colors, overlay.Colors)

	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// Load reads a YAML theme file.
func Load(path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, fmt.Errorf("open theme: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
