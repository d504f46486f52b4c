package app

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tern-editor/tern/internal/engine/buffer"
	"github.com/tern-editor/tern/internal/watch"
)

// Document is one open file and its buffer.
type Document struct {
	// ID identifies the document in logs, stable across renames.
	ID uuid.UUID

	// Path is the file path as given on open, empty for scratch
	// buffers. The status bar shows it verbatim.
	Path string

	// Buf holds the document content.
	Buf *buffer.Buffer

	// Disk fingerprint from the last load or save. Used to tell real
	// outside modifications from the editor's own writes.
	sig   watch.Sig
	sigOK bool
}

// NewDocument loads path into a fresh document. A missing file yields
// an empty buffer, the same as starting a new file. An empty path
// yields a scratch document.
func NewDocument(path string) *Document {
	if path == "" {
		return NewScratchDocument()
	}
	doc := &Document{
		ID:   uuid.New(),
		Path: path,
		Buf:  buffer.New(),
	}
	doc.Buf.Load(path)
	doc.RecordDiskState()
	return doc
}

// NewScratchDocument creates an empty document with no backing file.
func NewScratchDocument() *Document {
	return &Document{ID: uuid.New(), Buf: buffer.New()}
}

// IsScratch reports whether the document has no backing file.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Dir returns the directory associated with the document, for the
// explorer's starting point.
func (d *Document) Dir() string {
	if d.Path == "" {
		return "."
	}
	return filepath.Dir(d.Path)
}

// RecordDiskState refreshes the stored fingerprint after a load or
// save, so the next disk check does not flag our own write.
func (d *Document) RecordDiskState() {
	if d.Path == "" {
		d.sig, d.sigOK = watch.Sig{}, false
		return
	}
	d.sig, d.sigOK = watch.Stat(d.Path)
}

// DiskChanged compares the file on disk against the recorded
// fingerprint. A file that disappeared counts as changed.
func (d *Document) DiskChanged() bool {
	if d.Path == "" {
		return false
	}
	sig, ok := watch.Stat(d.Path)
	if !ok {
		return d.sigOK
	}
	if !d.sigOK {
		return true
	}
	return !sig.Equal(d.sig)
}
