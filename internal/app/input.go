package app

import (
	"path/filepath"

	"github.com/tern-editor/tern/internal/plugin"
	"github.com/tern-editor/tern/internal/renderer/backend"
)

// handleEditKey applies one key in edit mode. Plugins observe the key
// before it takes effect; they cannot veto it.
func (s *Session) handleEditKey(ev backend.Event) {
	if code := pluginKeyCode(ev); code != 0 {
		s.plugins.NotifyKeyPress(code)
	}

	switch ev.Key {
	case backend.KeyRune:
		if ev.Rune == ':' {
			s.enterCommandMode()
			return
		}
		if ev.Rune >= 32 && ev.Rune <= 126 {
			s.insertRune(byte(ev.Rune))
		}
	case backend.KeyEnter:
		s.breakLine()
	case backend.KeyBackspace:
		s.deleteBack()
	case backend.KeyDelete:
		s.deleteForward()
	case backend.KeyUp:
		s.moveCursor(-1, 0)
	case backend.KeyDown:
		s.moveCursor(1, 0)
	case backend.KeyLeft:
		s.moveCursor(0, -1)
	case backend.KeyRight:
		s.moveCursor(0, 1)
	case backend.KeyHome:
		s.cur = s.cur.MoveTo(s.cur.Row(), 0, s.doc().Buf)
	case backend.KeyEnd:
		s.cur = s.cur.MoveTo(s.cur.Row(), s.doc().Buf.LineLen(s.cur.Row()), s.doc().Buf)
	case backend.KeyPageUp:
		s.moveCursor(-s.view.Height(), 0)
	case backend.KeyPageDown:
		s.moveCursor(s.view.Height(), 0)
	}
}

// enterCommandMode opens the colon prompt and remembers where to
// return when it is cancelled.
func (s *Session) enterCommandMode() {
	s.prevMode = s.mode
	s.mode = ModeCommand
	s.cmdBuf = ""
}

// handleCommandKey edits the pending colon command. These keys are
// not sent to plugins.
func (s *Session) handleCommandKey(ev backend.Event) {
	switch ev.Key {
	case backend.KeyEnter:
		cmd := s.cmdBuf
		s.mode = s.prevMode
		s.cmdBuf = ""
		s.execute(cmd)
	case backend.KeyEscape:
		s.mode = s.prevMode
		s.cmdBuf = ""
	case backend.KeyBackspace:
		if len(s.cmdBuf) > 0 {
			s.cmdBuf = s.cmdBuf[:len(s.cmdBuf)-1]
		}
	case backend.KeyRune:
		if ev.Rune >= 32 && ev.Rune <= 126 {
			s.cmdBuf += string(ev.Rune)
		}
	}
}

// handleExplorerKey navigates the directory panel.
func (s *Session) handleExplorerKey(ev backend.Event) {
	switch ev.Key {
	case backend.KeyUp:
		s.expl.MoveSelection(-1)
	case backend.KeyDown:
		s.expl.MoveSelection(1)
	case backend.KeyEnter:
		s.openSelectedEntry()
	case backend.KeyEscape:
		s.mode = ModeEdit
	case backend.KeyRune:
		switch ev.Rune {
		case 'k':
			s.expl.MoveSelection(-1)
		case 'j':
			s.expl.MoveSelection(1)
		case ':':
			s.enterCommandMode()
		}
	}
}

// openSelectedEntry descends into a directory or opens a file and
// returns to edit mode.
func (s *Session) openSelectedEntry() {
	entry, ok := s.expl.SelectedEntry()
	if !ok {
		return
	}
	target := filepath.Join(s.expl.Dir(), entry.Name)
	if entry.IsDir {
		s.expl.Scan(target)
		return
	}
	s.openPath(target)
	s.mode = ModeEdit
}

func (s *Session) insertRune(ch byte) {
	s.doc().Buf.InsertChar(s.cur.Row(), s.cur.Col(), ch)
	s.cur = s.cur.MoveTo(s.cur.Row(), s.cur.Col()+1, s.doc().Buf)
	s.plugins.NotifyBufferChange()
}

// deleteBack removes the character before the cursor. At column zero
// it does nothing; lines are never joined.
func (s *Session) deleteBack() {
	if s.cur.Col() == 0 {
		return
	}
	s.doc().Buf.DeleteChar(s.cur.Row(), s.cur.Col())
	s.cur = s.cur.MoveTo(s.cur.Row(), s.cur.Col()-1, s.doc().Buf)
	s.plugins.NotifyBufferChange()
}

// deleteForward removes the character under the cursor.
func (s *Session) deleteForward() {
	row, col := s.cur.Row(), s.cur.Col()
	if col >= s.doc().Buf.LineLen(row) {
		return
	}
	s.doc().Buf.DeleteChar(row, col+1)
	s.plugins.NotifyBufferChange()
}

// breakLine splits the current line at the cursor: the head stays,
// the tail moves to a new line below, and the cursor lands at the
// start of the tail.
func (s *Session) breakLine() {
	buf := s.doc().Buf
	row, col := s.cur.Row(), s.cur.Col()
	line := buf.Line(row)
	if col > len(line) {
		col = len(line)
	}

	buf.SetLine(row, line[:col])
	buf.InsertLine(row)
	buf.SetLine(row+1, line[col:])

	s.cur = s.cur.MoveTo(row+1, 0, buf)
	s.plugins.NotifyBufferChange()
}

func (s *Session) moveCursor(dRow, dCol int) {
	s.cur = s.cur.Move(dRow, dCol, s.doc().Buf)
}

// pluginKeyCode maps an input event to the plugin key contract. Zero
// means the event carries no key worth reporting.
func pluginKeyCode(ev backend.Event) int {
	switch ev.Key {
	case backend.KeyRune:
		return int(ev.Rune)
	case backend.KeyTab:
		return plugin.KeyTab
	case backend.KeyEnter:
		return plugin.KeyEnter
	case backend.KeyEscape:
		return plugin.KeyEscape
	case backend.KeyBackspace:
		return plugin.KeyBackspace
	case backend.KeyUp:
		return plugin.KeyUp
	case backend.KeyDown:
		return plugin.KeyDown
	case backend.KeyLeft:
		return plugin.KeyLeft
	case backend.KeyRight:
		return plugin.KeyRight
	case backend.KeyHome:
		return plugin.KeyHome
	case backend.KeyEnd:
		return plugin.KeyEnd
	case backend.KeyPageUp:
		return plugin.KeyPageUp
	case backend.KeyPageDown:
		return plugin.KeyPageDown
	case backend.KeyDelete:
		return plugin.KeyDelete
	}
	return 0
}
