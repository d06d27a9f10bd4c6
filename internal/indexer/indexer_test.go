package indexer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverSortsAndSkipsDirs(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "Band", "Album"))
	mustWrite(t, filepath.Join(root, "Band", "Album", "02 Song.mp3"), "b")
	mustWrite(t, filepath.Join(root, "Band", "Album", "01 Song.mp3"), "a")

	paths, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("len(paths) = %d, want 2", len(paths))
	}
	if filepath.Base(paths[0]) != "01 Song.mp3" || filepath.Base(paths[1]) != "02 Song.mp3" {
		t.Errorf("paths not sorted: %v", paths)
	}
}

func TestDiscoverEmptyRoot(t *testing.T) {
	root := t.TempDir()
	paths, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("paths = %v, want empty", paths)
	}
}

func TestInternTableFirstSeenOrder(t *testing.T) {
	tab := newInternTable()
	band := tab.Intern("Band")
	other := tab.Intern("Other")
	bandAgain := tab.Intern("Band")

	if band != 0 || other != 1 {
		t.Errorf("first-seen ids = %d, %d, want 0, 1", band, other)
	}
	if bandAgain != band {
		t.Errorf("Intern(\"Band\") again = %d, want %d", bandAgain, band)
	}
	if len(tab.Values) != 2 {
		t.Errorf("len(Values) = %d, want 2 (no duplicate entries)", len(tab.Values))
	}
}

func TestInternTableEmptyStringIsAbsent(t *testing.T) {
	tab := newInternTable()
	if id := tab.Intern(""); id != -1 {
		t.Errorf("Intern(\"\") = %d, want -1", id)
	}
	if len(tab.Values) != 0 {
		t.Errorf("len(Values) = %d, want 0", len(tab.Values))
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", dir, err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
