package explorer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func scanFixture(t *testing.T) (*Explorer, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	e := New()
	e.Scan(dir)
	return e, dir
}

func TestScanListsSortedEntries(t *testing.T) {
	e, _ := scanFixture(t)

	want := []string{"../", "a.txt", "b.txt", "sub/"}
	if got := e.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestScanResetsSelection(t *testing.T) {
	e, dir := scanFixture(t)
	e.MoveSelection(2)

	e.Scan(dir)

	if got := e.Selected(); got != 0 {
		t.Errorf("expected selection reset to 0, got %d", got)
	}
}

func TestScanUnreadableDirLeavesEmptyListing(t *testing.T) {
	e := New()
	e.Scan(filepath.Join(t.TempDir(), "missing"))

	if got := e.Len(); got != 1 {
		// Only the parent entry survives; the listing itself is empty.
		t.Errorf("expected just the parent entry, got %d entries", got)
	}
}

func TestMoveSelectionClamps(t *testing.T) {
	e, _ := scanFixture(t)

	e.MoveSelection(-5)
	if got := e.Selected(); got != 0 {
		t.Errorf("expected clamp at 0, got %d", got)
	}

	e.MoveSelection(100)
	if got := e.Selected(); got != e.Len()-1 {
		t.Errorf("expected clamp at %d, got %d", e.Len()-1, got)
	}

	e.MoveSelection(-1)
	if got := e.Selected(); got != e.Len()-2 {
		t.Errorf("expected single step back, got %d", got)
	}
}

func TestMoveSelectionEmptyListing(t *testing.T) {
	e := New()

	e.MoveSelection(1)
	e.MoveSelection(-1)

	if got := e.Selected(); got != 0 {
		t.Errorf("expected selection pinned at 0, got %d", got)
	}
	if _, ok := e.SelectedEntry(); ok {
		t.Error("empty listing should have no selected entry")
	}
}

func TestSelectedEntry(t *testing.T) {
	e, _ := scanFixture(t)
	e.MoveSelection(1) // a.txt

	entry, ok := e.SelectedEntry()
	if !ok {
		t.Fatal("expected a selected entry")
	}
	if entry.Name != "a.txt" || entry.IsDir {
		t.Errorf("expected file a.txt, got %+v", entry)
	}
}

func TestDescendIntoSubdirectory(t *testing.T) {
	e, dir := scanFixture(t)
	if err := os.WriteFile(filepath.Join(dir, "sub", "inner.txt"), []byte("y\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e.MoveSelection(3) // sub/
	entry, ok := e.SelectedEntry()
	if !ok || !entry.IsDir {
		t.Fatalf("expected directory entry, got %+v ok=%v", entry, ok)
	}

	e.Scan(filepath.Join(e.Dir(), entry.Name))

	want := []string{"../", "inner.txt"}
	if got := e.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParentEntryNavigatesUp(t *testing.T) {
	e, dir := scanFixture(t)

	entry, ok := e.SelectedEntry()
	if !ok || entry.Name != ".." {
		t.Fatalf("expected parent entry first, got %+v", entry)
	}

	e.Scan(filepath.Join(dir, entry.Name))

	if got := filepath.Clean(e.Dir()); got != filepath.Dir(dir) {
		t.Errorf("expected listing of %q, got %q", filepath.Dir(dir), got)
	}
}
