package backend

import (
	"strings"
	"time"
)

type memCell struct {
	ch    rune
	style Style
}

// Memory implements Backend against an in-memory cell grid. It is used
// by tests to capture rendered frames and to script input events.
type Memory struct {
	width  int
	height int
	cells  [][]memCell

	penRow   int
	penCol   int
	penStyle Style

	cursorVisible bool
	cursorRow     int
	cursorCol     int

	queued  []Event
	flushes int
}

// NewMemory creates a memory backend with the given dimensions.
func NewMemory(width, height int) *Memory {
	m := &Memory{}
	m.Resize(width, height)
	return m
}

func (m *Memory) Init() error { return nil }

func (m *Memory) Shutdown() {}

func (m *Memory) Size() (int, int) { return m.width, m.height }

// Resize changes the grid dimensions, discarding previous contents.
func (m *Memory) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	m.width = width
	m.height = height
	m.cells = make([][]memCell, height)
	for y := range m.cells {
		m.cells[y] = make([]memCell, width)
		for x := range m.cells[y] {
			m.cells[y][x] = memCell{ch: ' '}
		}
	}
}

func (m *Memory) Clear() {
	for y := range m.cells {
		for x := range m.cells[y] {
			m.cells[y][x] = memCell{ch: ' '}
		}
	}
}

func (m *Memory) MoveTo(row, col int) {
	m.penRow = row
	m.penCol = col
}

func (m *Memory) Write(text string) {
	for i := 0; i < len(text); i++ {
		ch := rune(text[i])
		if ch < 32 || ch == 127 {
			ch = ' '
		}
		if m.penRow >= 0 && m.penRow < m.height && m.penCol >= 0 && m.penCol < m.width {
			m.cells[m.penRow][m.penCol] = memCell{ch: ch, style: m.penStyle}
		}
		m.penCol++
	}
}

func (m *Memory) SetStyle(style Style) { m.penStyle = style }

func (m *Memory) ResetStyle() { m.penStyle = Style{} }

func (m *Memory) ShowCursor() {
	m.cursorVisible = true
	m.cursorRow = m.penRow
	m.cursorCol = m.penCol
}

func (m *Memory) HideCursor() { m.cursorVisible = false }

func (m *Memory) Flush() { m.flushes++ }

func (m *Memory) PollEvent(timeout time.Duration) (Event, bool) {
	if len(m.queued) == 0 {
		return Event{}, false
	}
	ev := m.queued[0]
	m.queued = m.queued[1:]
	return ev, true
}

// Feed queues events for PollEvent to return in order. Once the queue
// drains, PollEvent reports a timeout.
func (m *Memory) Feed(events ...Event) {
	m.queued = append(m.queued, events...)
}

// Row returns the text of one grid row with trailing blanks trimmed.
func (m *Memory) Row(row int) string {
	if row < 0 || row >= m.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < m.width; x++ {
		sb.WriteRune(m.cells[row][x].ch)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Rows returns every grid row, trailing blanks trimmed.
func (m *Memory) Rows() []string {
	rows := make([]string, m.height)
	for y := 0; y < m.height; y++ {
		rows[y] = m.Row(y)
	}
	return rows
}

// StyleAt returns the style of the cell at the given position.
func (m *Memory) StyleAt(row, col int) Style {
	if row < 0 || row >= m.height || col < 0 || col >= m.width {
		return Style{}
	}
	return m.cells[row][col].style
}

// CursorVisible reports whether the cursor was left visible.
func (m *Memory) CursorVisible() bool { return m.cursorVisible }

// Cursor returns the position the cursor was last shown at.
func (m *Memory) Cursor() (row, col int) { return m.cursorRow, m.cursorCol }

// Flushes returns how many times Flush has been called.
func (m *Memory) Flushes() int { return m.flushes }
