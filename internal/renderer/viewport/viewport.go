// Package viewport provides the visible window onto a document.
package viewport

// Viewport is the visible sub-window of a document: row and column
// offsets into the text plus the window dimensions in screen cells.
// Offsets only change through Reconcile, which keeps the cursor in
// view with minimal scroll churn.
type Viewport struct {
	rowOffset int
	colOffset int
	width     int
	height    int
}

// New creates a viewport with the given size. Width and height are
// clamped to a minimum of 1 to prevent degenerate windows.
func New(width, height int) *Viewport {
	v := &Viewport{}
	v.Resize(width, height)
	return v
}

// RowOffset returns the first visible document row.
func (v *Viewport) RowOffset() int { return v.rowOffset }

// ColOffset returns the first visible document column.
func (v *Viewport) ColOffset() int { return v.colOffset }

// Width returns the viewport width.
func (v *Viewport) Width() int { return v.width }

// Height returns the viewport height.
func (v *Viewport) Height() int { return v.height }

// Resize changes the window dimensions, clamped to a minimum of 1.
// Offsets are kept; the next Reconcile restores cursor visibility.
func (v *Viewport) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
}

// Reconcile adjusts the offsets by the minimal amount that brings the
// cursor back inside the window: the row offset moves down to the
// cursor row when the cursor went above it, and up just enough when
// the cursor passed the bottom edge; columns follow the symmetric
// rule. It runs every render pass, not only on explicit scrolls.
func (v *Viewport) Reconcile(cursorRow, cursorCol int) {
	if cursorRow < v.rowOffset {
		v.rowOffset = cursorRow
	}
	if cursorRow >= v.rowOffset+v.height {
		v.rowOffset = cursorRow - v.height + 1
	}
	if cursorCol < v.colOffset {
		v.colOffset = cursorCol
	}
	if cursorCol >= v.colOffset+v.width {
		v.colOffset = cursorCol - v.width + 1
	}
}

// ToScreen converts logical document coordinates to screen coordinates
// relative to the viewport origin.
func (v *Viewport) ToScreen(row, col int) (screenRow, screenCol int) {
	return row - v.rowOffset, col - v.colOffset
}

// ToLogical converts screen coordinates back to logical document
// coordinates.
func (v *Viewport) ToLogical(screenRow, screenCol int) (row, col int) {
	return screenRow + v.rowOffset, screenCol + v.colOffset
}

// Contains reports whether the logical position is inside the window.
func (v *Viewport) Contains(row, col int) bool {
	return row >= v.rowOffset && row < v.rowOffset+v.height &&
		col >= v.colOffset && col < v.colOffset+v.width
}
