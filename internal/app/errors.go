package app

import "errors"

// Errors reported by session commands.
var (
	// ErrQuit signals that the session should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrUnsavedChanges indicates the current document has edits
	// that have not been written to disk.
	ErrUnsavedChanges = errors.New("unsaved changes")

	// ErrNoFileName indicates a save was attempted on a scratch
	// document that has no path.
	ErrNoFileName = errors.New("no file name")
)

// FileError describes a failed file operation.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return e.Op + " " + e.Path
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}
