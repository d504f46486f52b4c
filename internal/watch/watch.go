// Package watch observes the open file for modification by other
// processes. The parent directory is watched rather than the file
// itself, so editors that save by rename do not silently detach the
// watch. Events only signal that a check is due; callers compare a
// stat fingerprint to decide whether the content really changed,
// which also keeps the editor's own saves from raising alarms.
package watch

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned by operations on a closed watcher.
var ErrClosed = errors.New("watcher closed")

// Watcher tracks one file at a time.
type Watcher struct {
	mu     sync.Mutex
	fsw    *fsnotify.Watcher
	path   string // absolute path of the tracked file
	dir    string // watched parent directory
	closed bool
}

// New returns a watcher tracking nothing.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fsw: fsw}, nil
}

// Watch retargets the watcher at path, dropping any previous target
// and pending events. An empty path clears the watch. The file itself
// need not exist, but its directory must.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}

	if w.dir != "" {
		_ = w.fsw.Remove(w.dir)
		w.path, w.dir = "", ""
	}
	w.drainLocked()

	if path == "" {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	w.path, w.dir = abs, dir
	return nil
}

// Path returns the absolute path currently tracked, or "".
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Poll drains pending events without blocking and reports whether any
// touched the tracked file.
func (w *Watcher) Poll() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.path == "" {
		return false
	}

	changed := false
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return changed
			}
			if ev.Name == w.path {
				changed = true
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return changed
			}
		default:
			return changed
		}
	}
}

// Rearm discards events queued so far. Called after the editor's own
// save so stale notifications do not trigger a disk check.
func (w *Watcher) Rearm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.drainLocked()
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	w.path, w.dir = "", ""
	return w.fsw.Close()
}

func (w *Watcher) drainLocked() {
	for {
		select {
		case <-w.fsw.Events:
		case <-w.fsw.Errors:
		default:
			return
		}
	}
}

// Sig is a cheap content fingerprint for change detection.
type Sig struct {
	ModTime time.Time
	Size    int64
}

// Stat fingerprints path. The second return is false when the file
// cannot be statted, which callers treat as a change in itself.
func Stat(path string) (Sig, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return Sig{}, false
	}
	return Sig{ModTime: info.ModTime(), Size: info.Size()}, true
}

// Equal reports whether two fingerprints match.
func (s Sig) Equal(o Sig) bool {
	return s.Size == o.Size && s.ModTime.Equal(o.ModTime)
}
