// Package explorer provides the directory listing panel: an ordered
// list of entries with a single clamped selection. It is purely
// presentational state; opening files stays with the caller.
package explorer

import (
	"os"
	"path/filepath"
)

// Entry is one directory listing item.
type Entry struct {
	Name  string
	IsDir bool
}

// Explorer holds a directory listing and the selection within it.
type Explorer struct {
	dir      string
	entries  []Entry
	selected int
}

// New creates an explorer with an empty listing.
func New() *Explorer {
	return &Explorer{dir: "."}
}

// Scan replaces the listing with dir's entries in name order,
// directories marked, with a ".." entry first when dir has a parent.
// The selection resets to the top. An unreadable dir leaves the
// listing empty; the panel simply shows nothing.
func (e *Explorer) Scan(dir string) {
	e.dir = dir
	e.entries = nil
	e.selected = 0

	if abs, err := filepath.Abs(dir); err == nil && filepath.Dir(abs) != abs {
		e.entries = append(e.entries, Entry{Name: "..", IsDir: true})
	}

	listing, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, item := range listing {
		e.entries = append(e.entries, Entry{Name: item.Name(), IsDir: item.IsDir()})
	}
}

// Dir returns the directory of the current listing.
func (e *Explorer) Dir() string { return e.dir }

// Len returns the number of listed entries.
func (e *Explorer) Len() int { return len(e.entries) }

// MoveSelection shifts the selection by delta, clamped to the list
// bounds.
func (e *Explorer) MoveSelection(delta int) {
	e.selected += delta
	if e.selected < 0 {
		e.selected = 0
	}
	if e.selected >= len(e.entries) {
		e.selected = len(e.entries) - 1
	}
	if e.selected < 0 {
		e.selected = 0
	}
}

// Selected returns the selection index.
func (e *Explorer) Selected() int { return e.selected }

// SelectedEntry returns the selected entry, or ok false for an empty
// listing.
func (e *Explorer) SelectedEntry() (Entry, bool) {
	if len(e.entries) == 0 {
		return Entry{}, false
	}
	return e.entries[e.selected], true
}

// Entries returns display names for the listing, directories suffixed
// with a separator.
func (e *Explorer) Entries() []string {
	names := make([]string, len(e.entries))
	for i, entry := range e.entries {
		if entry.IsDir {
			names[i] = entry.Name + "/"
		} else {
			names[i] = entry.Name
		}
	}
	return names
}
