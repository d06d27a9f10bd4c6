package tagcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildDatabaseEmptyMusicRoot(t *testing.T) {
	root := t.TempDir()

	db, report, err := BuildDatabase(context.Background(), root, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildDatabase: %v", err)
	}
	if len(db.Entries) != 0 {
		t.Errorf("Entries = %v, want empty", db.Entries)
	}
	if len(report.Errors) != 0 {
		t.Errorf("report.Errors = %v, want empty", report.Errors)
	}
}

func TestBuildDatabaseNonexistentRoot(t *testing.T) {
	_, _, err := BuildDatabase(context.Background(), "/does/not/exist/xyz", BuildOptions{})
	if err == nil {
		t.Error("BuildDatabase on a nonexistent root should fail")
	}
}

func TestBuildDatabaseSerialIsDeterministic(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "not-audio.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	dbA, _, err := BuildDatabase(context.Background(), root, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildDatabase (first run): %v", err)
	}
	dbB, _, err := BuildDatabase(context.Background(), root, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildDatabase (second run): %v", err)
	}

	if dbA.Serial != dbB.Serial {
		t.Errorf("Serial = %d then %d, want the same value for two builds of the same root", dbA.Serial, dbB.Serial)
	}

	dirA, dirB := t.TempDir(), t.TempDir()
	if err := WriteDatabase(dbA, dirA); err != nil {
		t.Fatalf("WriteDatabase A: %v", err)
	}
	if err := WriteDatabase(dbB, dirB); err != nil {
		t.Fatalf("WriteDatabase B: %v", err)
	}
	indexA, err := os.ReadFile(filepath.Join(dirA, IndexFileName))
	if err != nil {
		t.Fatalf("ReadFile A: %v", err)
	}
	indexB, err := os.ReadFile(filepath.Join(dirB, IndexFileName))
	if err != nil {
		t.Fatalf("ReadFile B: %v", err)
	}
	if string(indexA) != string(indexB) {
		t.Error("two BuildDatabase+WriteDatabase runs over the same root produced different master-index bytes")
	}
}

func TestBuildDatabaseSkipsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "not-audio.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	db, report, err := BuildDatabase(context.Background(), root, BuildOptions{Workers: 2})
	if err != nil {
		t.Fatalf("BuildDatabase: %v", err)
	}
	if len(db.Entries) != 0 {
		t.Errorf("Entries = %v, want empty (the one file has no readable tags)", db.Entries)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("report.Errors = %v, want exactly one failure", report.Errors)
	}
}
