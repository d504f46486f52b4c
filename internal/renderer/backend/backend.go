// Package backend provides the terminal abstraction the renderer draws
// through. The editing core never talks to a terminal directly; it emits
// clears, cursor moves, and styled text writes against this interface so
// tests can capture frames with the in-memory implementation.
package backend

import "time"

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
)

// Event represents a single input unit from the terminal.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Resize event fields
	Width, Height int
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

type colorMode uint8

const (
	colorDefault colorMode = iota
	colorPalette
	colorRGB
)

// Color is a terminal color. The zero value is the terminal's default.
type Color struct {
	mode    colorMode
	index   uint8
	r, g, b uint8
}

// PaletteColor returns a color from the 256-entry terminal palette.
// Indexes 0-7 are the standard ANSI colors, 8-15 the bright variants.
func PaletteColor(index uint8) Color {
	return Color{mode: colorPalette, index: index}
}

// RGBColor returns a 24-bit color.
func RGBColor(r, g, b uint8) Color {
	return Color{mode: colorRGB, r: r, g: g, b: b}
}

// IsDefault reports whether the color is the terminal default.
func (c Color) IsDefault() bool { return c.mode == colorDefault }

// IsPalette reports whether the color is a palette index.
func (c Color) IsPalette() bool { return c.mode == colorPalette }

// Index returns the palette index. Only meaningful when IsPalette is true.
func (c Color) Index() uint8 { return c.index }

// RGB returns the color channels. Only meaningful for RGB colors.
func (c Color) RGB() (r, g, b uint8) { return c.r, c.g, c.b }

// Style describes how written text is drawn. The zero value draws with
// the terminal's default foreground and no attributes.
type Style struct {
	Fg      Color
	Reverse bool
}

// Backend defines the terminal surface the renderer writes to.
// Implementations handle actual drawing to the terminal or capture
// output for tests.
type Backend interface {
	// Init acquires the terminal and enters raw mode.
	// Must be called before any other methods.
	Init() error

	// Shutdown restores the terminal and releases backend resources.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// Clear erases the entire screen with the default style.
	Clear()

	// MoveTo positions the pen at the given cell. Subsequent writes
	// start there, and ShowCursor reveals the cursor there.
	MoveTo(row, col int)

	// Write draws text at the pen using the current style and advances
	// the pen. Control bytes are drawn as spaces. Text past the right
	// edge is clipped.
	Write(text string)

	// SetStyle sets the style applied to subsequent writes.
	SetStyle(style Style)

	// ResetStyle restores the default style.
	ResetStyle()

	// ShowCursor reveals the cursor at the pen position.
	ShowCursor()

	// HideCursor hides the cursor.
	HideCursor()

	// Flush synchronizes buffered drawing with the actual display.
	Flush()

	// PollEvent waits up to timeout for the next input unit. It returns
	// false when the wait timed out or the backend has shut down. A
	// timeout of zero or less blocks until an event arrives.
	PollEvent(timeout time.Duration) (Event, bool)
}
