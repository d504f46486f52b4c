// Package cursor tracks the logical editing position within a document.
package cursor

// LineSource is the read view a cursor clamps against.
type LineSource interface {
	LineCount() int
	Line(row int) string
}

// Cursor is a logical buffer position: a row plus a column in
// [0, lineLength], where column lineLength is the append point.
// Cursor is an immutable value type.
type Cursor struct {
	row, col int
}

// New creates a cursor at the origin.
func New() Cursor { return Cursor{} }

// Row returns the cursor's line index.
func (c Cursor) Row() int { return c.row }

// Col returns the cursor's column index.
func (c Cursor) Col() int { return c.col }

// Move returns the cursor shifted by the given deltas, clamped to
// valid coordinates of lines: the row stays in range and the column
// lands in [0, length of the target row's line]. Moving vertically
// onto a shorter line pulls the column back to that line's length.
func (c Cursor) Move(deltaRow, deltaCol int, lines LineSource) Cursor {
	return c.MoveTo(c.row+deltaRow, c.col+deltaCol, lines)
}

// MoveTo returns a cursor at the given absolute position, clamped the
// same way Move clamps.
func (c Cursor) MoveTo(row, col int, lines LineSource) Cursor {
	maxRow := lines.LineCount() - 1
	if maxRow < 0 {
		maxRow = 0
	}
	if row < 0 {
		row = 0
	}
	if row > maxRow {
		row = maxRow
	}
	lineLen := len(lines.Line(row))
	if col < 0 {
		col = 0
	}
	if col > lineLen {
		col = lineLen
	}
	return Cursor{row: row, col: col}
}

// Clamp returns the cursor re-clamped against lines, for use after a
// mutation shrank the document under it.
func (c Cursor) Clamp(lines LineSource) Cursor {
	return c.MoveTo(c.row, c.col, lines)
}
