package highlight

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tern-editor/tern/internal/renderer/backend"
)

// Theme maps color tags to terminal colors. Rules reference tags such
// as "keyword"; the theme decides what they look like. Tags without a
// theme entry are tried as literal color names, so a rule may claim
// "blue" or "#ff8800" directly.
type Theme struct {
	colors map[string]backend.Color
}

// DefaultTheme returns the built-in theme: keywords blue, strings
// green, comments gray, warnings yellow, errors red.
func DefaultTheme() *Theme {
	return &Theme{colors: map[string]backend.Color{
		"keyword": backend.PaletteColor(4),
		"string":  backend.PaletteColor(2),
		"comment": backend.PaletteColor(8),
		"warning": backend.PaletteColor(3),
		"error":   backend.PaletteColor(1),
	}}
}

// NewTheme returns the default theme with the given tag colors laid
// over it. Color values are names like "blue" or hex like "#ff8800";
// an unparseable value is an error.
func NewTheme(colors map[string]string) (*Theme, error) {
	t := DefaultTheme()
	for tag, value := range colors {
		c, err := ParseColor(value)
		if err != nil {
			return nil, fmt.Errorf("theme color for %q: %w", tag, err)
		}
		t.colors[tag] = c
	}
	return t, nil
}

// Color resolves a tag to its terminal color. Unknown tags are tried
// as literal color names; anything else resolves to the default color.
func (t *Theme) Color(tag string) backend.Color {
	if tag == "" {
		return backend.Color{}
	}
	if c, ok := t.colors[tag]; ok {
		return c
	}
	if c, err := ParseColor(tag); err == nil {
		return c
	}
	return backend.Color{}
}

// Style returns the drawing style for a tag.
func (t *Theme) Style(tag string) backend.Style {
	return backend.Style{Fg: t.Color(tag)}
}

// Prefix returns the ANSI escape that switches the terminal to the
// tag's color, or "" when the tag resolves to the default color.
func (t *Theme) Prefix(tag string) string {
	return sgr(t.Color(tag))
}

// sgr renders a color as an ANSI SGR foreground sequence.
func sgr(c backend.Color) string {
	switch {
	case c.IsPalette():
		idx := c.Index()
		if idx < 8 {
			return fmt.Sprintf("\x1b[%dm", 30+idx)
		}
		if idx < 16 {
			return fmt.Sprintf("\x1b[%dm", 90+idx-8)
		}
		return fmt.Sprintf("\x1b[38;5;%dm", idx)
	case !c.IsDefault():
		r, g, b := c.RGB()
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	default:
		return ""
	}
}

// namedColors are the standard palette names accepted in themes and
// rule tags.
var namedColors = map[string]uint8{
	"black":         0,
	"red":           1,
	"green":         2,
	"yellow":        3,
	"blue":          4,
	"magenta":       5,
	"cyan":          6,
	"white":         7,
	"gray":          8,
	"grey":          8,
	"brightred":     9,
	"brightgreen":   10,
	"brightyellow":  11,
	"brightblue":    12,
	"brightmagenta": 13,
	"brightcyan":    14,
	"brightwhite":   15,
}

// ParseColor parses a palette name like "blue", a hex value like
// "#ff8800", or "default".
func ParseColor(value string) (backend.Color, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	if name == "default" {
		return backend.Color{}, nil
	}
	if idx, ok := namedColors[name]; ok {
		return backend.PaletteColor(idx), nil
	}
	if strings.HasPrefix(name, "#") {
		// colorful.Hex is lenient about length; only #rgb and #rrggbb
		// are valid here.
		if len(name) != 4 && len(name) != 7 {
			return backend.Color{}, fmt.Errorf("bad hex color %q", value)
		}
		c, err := colorful.Hex(name)
		if err != nil {
			return backend.Color{}, fmt.Errorf("bad hex color %q", value)
		}
		r, g, b := c.RGB255()
		return backend.RGBColor(r, g, b), nil
	}
	return backend.Color{}, fmt.Errorf("unknown color %q", value)
}
