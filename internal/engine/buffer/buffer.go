// Package buffer provides the line-oriented text storage for the
// editing core. A buffer is an ordered sequence of lines of single-byte
// characters. It always holds at least one line, and every operation is
// total: out-of-range positions clamp or degrade to a no-op instead of
// signaling errors.
package buffer

// Buffer holds document text as lines plus a modified flag. Line
// contents never include line terminators; those exist only in the
// on-disk form.
type Buffer struct {
	lines    []string
	modified bool
}

// New returns a buffer holding a single empty line.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// LineCount returns the number of lines, always at least 1.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the content of row. Out-of-range rows read as empty so
// rendering code stays branch-free.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// LineLen returns the byte length of row, 0 when out of range.
func (b *Buffer) LineLen(row int) int {
	return len(b.Line(row))
}

// SetLine replaces the content of row and sets the modified flag.
// Out-of-range rows are ignored.
func (b *Buffer) SetLine(row int, text string) {
	if row < 0 || row >= len(b.lines) {
		return
	}
	b.lines[row] = text
	b.modified = true
}

// InsertChar inserts ch at col in row's line and sets the modified
// flag. A column beyond the line length appends. Out-of-range rows are
// ignored.
func (b *Buffer) InsertChar(row, col int, ch byte) {
	if row < 0 || row >= len(b.lines) {
		return
	}
	line := b.lines[row]
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	b.lines[row] = line[:col] + string(ch) + line[col:]
	b.modified = true
}

// DeleteChar removes the character immediately before col in row's
// line and sets the modified flag. It is a no-op when col is 0 or row
// is out of range.
func (b *Buffer) DeleteChar(row, col int) {
	if row < 0 || row >= len(b.lines) {
		return
	}
	line := b.lines[row]
	if col > len(line) {
		col = len(line)
	}
	if col <= 0 {
		return
	}
	b.lines[row] = line[:col-1] + line[col:]
	b.modified = true
}

// InsertLine inserts a new empty line immediately after row and sets
// the modified flag. Rows past the end append, negative rows insert at
// the top.
func (b *Buffer) InsertLine(row int) {
	at := row + 1
	if at < 0 {
		at = 0
	}
	if at > len(b.lines) {
		at = len(b.lines)
	}
	b.lines = append(b.lines, "")
	copy(b.lines[at+1:], b.lines[at:])
	b.lines[at] = ""
	b.modified = true
}

// DeleteLine removes line row and sets the modified flag. Keeping at
// least one line takes priority over the delete: with a single line
// left this is a no-op, as it is for out-of-range rows.
func (b *Buffer) DeleteLine(row int) {
	if len(b.lines) <= 1 || row < 0 || row >= len(b.lines) {
		return
	}
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	b.modified = true
}

// IsModified reports whether the buffer changed since the last
// successful Load or Save.
func (b *Buffer) IsModified() bool { return b.modified }

// Lines returns a copy of all line contents.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}
