// Package statusline provides the status bar and message line drawn on
// the two reserved rows at the bottom of the screen.
package statusline

import (
	"fmt"
	"strings"

	"github.com/tern-editor/tern/internal/renderer/backend"
	"github.com/tern-editor/tern/internal/renderer/highlight"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders the bottom two screen rows: a reverse-video bar
// with file and position info, and a command or message line under it.
type StatusLine struct {
	// Display state
	path       string
	modified   bool
	line       int // 1-indexed for display
	col        int // 1-indexed for display
	totalLines int

	// Command line state
	commandActive bool
	commandBuffer string

	// Message display; consumed by the render that shows it
	message     string
	messageType MessageType
}

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{line: 1, col: 1, totalLines: 1}
}

// SetPath updates the displayed file path.
func (s *StatusLine) SetPath(path string) {
	s.path = path
}

// SetModified updates the unsaved-changes indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetPosition updates the cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line
	s.col = col
}

// SetTotalLines updates the total line count.
func (s *StatusLine) SetTotalLines(total int) {
	s.totalLines = total
}

// SetCommand switches the command line display on or off and sets the
// text being typed.
func (s *StatusLine) SetCommand(active bool, buffer string) {
	s.commandActive = active
	s.commandBuffer = buffer
}

// SetMessage sets a transient status message. It replaces any pending
// message and is cleared by the next Render that displays it.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// Message returns the pending message, if any.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// ClearMessage discards any pending message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// FormatBar returns the status bar text padded or truncated to width:
// the file path, an unsaved-changes marker, and the 1-indexed cursor
// position.
func (s *StatusLine) FormatBar(width int) string {
	status := s.path
	if s.modified {
		status += " [+]"
	}
	status += fmt.Sprintf(" | %d:%d", s.line, s.col)
	if len(status) > width {
		return status[:width]
	}
	return status + strings.Repeat(" ", width-len(status))
}

// Render draws the bar at row and the command or message line at
// row+1. Showing a pending message consumes it.
func (s *StatusLine) Render(b backend.Backend, row int, theme *highlight.Theme) {
	width, _ := b.Size()

	b.MoveTo(row, 0)
	b.SetStyle(backend.Style{Reverse: true})
	b.Write(s.FormatBar(width))
	b.ResetStyle()

	b.MoveTo(row+1, 0)
	switch {
	case s.commandActive:
		b.Write(":" + s.commandBuffer)
	case s.message != "":
		b.SetStyle(messageStyle(theme, s.messageType))
		b.Write(s.message)
		b.ResetStyle()
		s.ClearMessage()
	}
}

// messageStyle maps a message type to its theme color.
func messageStyle(theme *highlight.Theme, msgType MessageType) backend.Style {
	if theme == nil {
		return backend.Style{}
	}
	switch msgType {
	case MessageWarning:
		return theme.Style("warning")
	case MessageError:
		return theme.Style("error")
	default:
		return backend.Style{}
	}
}
