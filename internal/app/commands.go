package app

import (
	"errors"
	"strings"

	"github.com/tern-editor/tern/internal/renderer/statusline"
)

// Messages surfaced on the command line.
const (
	msgSaved       = "File saved"
	msgUnsaved     = "Unsaved changes! Use :q! to force quit"
	msgNoFileName  = "No file name"
	msgDiskChanged = "File changed on disk"
)

// execute runs one colon command. Failures become status messages;
// commands never abort the session.
func (s *Session) execute(cmd string) {
	s.logger.Debug("command %q", cmd)
	switch {
	case cmd == "q":
		s.reportError(s.quit(false))
	case cmd == "q!":
		s.reportError(s.quit(true))
	case cmd == "w":
		s.reportError(s.save())
	case cmd == "wq":
		if err := s.save(); err != nil {
			s.reportError(err)
			return
		}
		s.reportError(s.quit(false))
	case strings.HasPrefix(cmd, "e "):
		s.openPath(cmd[2:])
		s.mode = ModeEdit
	case cmd == "explorer":
		s.toggleExplorer()
	default:
		s.status.SetMessage("Unknown command: "+cmd, statusline.MessageWarning)
	}
}

// toggleExplorer opens the directory panel on the current document's
// directory, or closes it when it is already up.
func (s *Session) toggleExplorer() {
	if s.mode == ModeExplorer {
		s.mode = ModeEdit
		return
	}
	s.mode = ModeExplorer
	s.expl.Scan(s.doc().Dir())
}

// save writes the current document back to its file. Failure leaves
// the modified flag alone.
func (s *Session) save() error {
	doc := s.doc()
	if doc.IsScratch() {
		return ErrNoFileName
	}
	if err := doc.Buf.Save(doc.Path); err != nil {
		s.logger.WithField("doc", doc.ID.String()).Error("save %s: %v", doc.Path, err)
		return &FileError{Op: "save", Path: doc.Path, Err: err}
	}
	doc.RecordDiskState()
	if s.watcher != nil {
		s.watcher.Rearm()
	}
	s.status.SetMessage(msgSaved, statusline.MessageInfo)
	s.logger.WithField("doc", doc.ID.String()).Info("saved %s", doc.Path)
	return nil
}

// quit stops the loop unless unsaved changes hold it back.
func (s *Session) quit(force bool) error {
	if !force && s.doc().Buf.IsModified() {
		return ErrUnsavedChanges
	}
	s.running = false
	return nil
}

// reportError translates a command error into its status-line
// message. Nil is a no-op.
func (s *Session) reportError(err error) {
	if err == nil {
		return
	}
	var fe *FileError
	switch {
	case errors.Is(err, ErrUnsavedChanges):
		s.status.SetMessage(msgUnsaved, statusline.MessageWarning)
	case errors.Is(err, ErrNoFileName):
		s.status.SetMessage(msgNoFileName, statusline.MessageError)
	case errors.As(err, &fe):
		s.status.SetMessage("Save failed: "+fe.Err.Error(), statusline.MessageError)
	default:
		s.status.SetMessage(err.Error(), statusline.MessageError)
	}
}
