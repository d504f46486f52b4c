// Package renderer draws complete editor frames: document text through
// the highlighter, the optional directory panel, the two status rows,
// and the cursor. It owns no mutable state of its own; every frame is
// drawn fresh from the state handed to Draw.
package renderer

import (
	"strings"

	"github.com/tern-editor/tern/internal/renderer/backend"
	"github.com/tern-editor/tern/internal/renderer/highlight"
	"github.com/tern-editor/tern/internal/renderer/statusline"
	"github.com/tern-editor/tern/internal/renderer/viewport"
)

// reservedRows is the screen space kept for the status bar and the
// command/message line.
const reservedRows = 2

// LineSource provides read access to document content.
type LineSource interface {
	LineCount() int
	Line(row int) string
}

// ExplorerView is the read view of the directory panel.
type ExplorerView interface {
	Entries() []string
	Selected() int
}

// Frame carries everything one render pass draws from.
type Frame struct {
	Lines  LineSource
	View   *viewport.Viewport
	Syntax *highlight.Highlighter
	Status *statusline.StatusLine

	CursorRow     int
	CursorCol     int
	CursorVisible bool

	// Explorer, when non-nil, draws the directory panel over the left
	// columns of the text area. ExplorerWidth overrides the panel
	// width; zero means a third of the window.
	Explorer      ExplorerView
	ExplorerWidth int
}

// Renderer draws frames onto a backend.
type Renderer struct {
	be backend.Backend
}

// New creates a renderer drawing to be.
func New(be backend.Backend) *Renderer {
	return &Renderer{be: be}
}

// Draw renders one frame: resize and reconcile the viewport, text rows
// with "~" markers past end of document, the explorer panel, the
// status rows, and finally the cursor. Rows and spans never wrap; text
// outside the column window is clipped span-aware so color runs stay
// intact.
func (r *Renderer) Draw(f Frame) {
	r.be.HideCursor()
	r.be.Clear()

	width, height := r.be.Size()
	textRows := height - reservedRows
	if textRows < 1 {
		textRows = 1
	}
	f.View.Resize(width, textRows)
	f.View.Reconcile(f.CursorRow, f.CursorCol)

	for y := 0; y < textRows; y++ {
		row := f.View.RowOffset() + y
		r.be.MoveTo(y, 0)
		if row >= f.Lines.LineCount() {
			r.be.Write("~")
			continue
		}
		r.drawLine(f, y, f.Lines.Line(row))
	}

	if f.Explorer != nil {
		r.drawExplorer(f.Explorer, textRows, width, f.ExplorerWidth)
	}

	f.Status.Render(r.be, height-reservedRows, f.Syntax.Theme())

	screenRow, screenCol := f.View.ToScreen(f.CursorRow, f.CursorCol)
	r.be.MoveTo(screenRow, screenCol)
	if f.CursorVisible {
		r.be.ShowCursor()
	}
	r.be.Flush()
}

// drawLine writes the visible window of one document line. Spans come
// from scanning the raw line; clipping happens on logical columns, so
// a span crossing the window edge keeps its color on the visible part.
func (r *Renderer) drawLine(f Frame, y int, line string) {
	lo := f.View.ColOffset()
	hi := lo + f.View.Width()
	theme := f.Syntax.Theme()

	for _, s := range f.Syntax.ScanLine(line) {
		start, end := s.Start, s.End
		if end <= lo || start >= hi {
			continue
		}
		if start < lo {
			start = lo
		}
		if end > hi {
			end = hi
		}
		if s.Tag == "" {
			r.be.Write(line[start:end])
			continue
		}
		r.be.SetStyle(theme.Style(s.Tag))
		r.be.Write(line[start:end])
		r.be.ResetStyle()
	}
}

// drawExplorer paints the directory panel over the left edge of the
// text area, scrolling its window just enough to keep the selected
// entry visible.
func (r *Renderer) drawExplorer(ex ExplorerView, rows, width, want int) {
	panelWidth := want
	if panelWidth <= 0 {
		panelWidth = width / 3
		if panelWidth < 16 {
			panelWidth = 16
		}
	}
	if panelWidth > width {
		panelWidth = width
	}

	entries := ex.Entries()
	selected := ex.Selected()
	first := 0
	if selected >= rows {
		first = selected - rows + 1
	}

	for y := 0; y < rows && first+y < len(entries); y++ {
		current := first+y == selected
		marker := "  "
		if current {
			marker = "> "
		}
		text := marker + entries[first+y]
		if len(text) > panelWidth {
			text = text[:panelWidth]
		} else {
			text += strings.Repeat(" ", panelWidth-len(text))
		}
		r.be.MoveTo(y, 0)
		if current {
			r.be.SetStyle(backend.Style{Reverse: true})
		}
		r.be.Write(text)
		if current {
			r.be.ResetStyle()
		}
	}
}
