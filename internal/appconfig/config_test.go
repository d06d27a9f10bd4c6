package appconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewParsesFlags(t *testing.T) {
	cfg, err := New([]string{
		"--music-root", "/music",
		"--output", "/out",
		"--device-prefix", "/Music/",
		"--workers", "4",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.MusicRoot != "/music" {
		t.Errorf("MusicRoot = %q, want /music", cfg.MusicRoot)
	}
	if cfg.OutputDir != "/out" {
		t.Errorf("OutputDir = %q, want /out", cfg.OutputDir)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestNewDefaultsDevicePrefix(t *testing.T) {
	cfg, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.DevicePrefix != "/Music/" {
		t.Errorf("DevicePrefix = %q, want /Music/", cfg.DevicePrefix)
	}
}

func TestValidateRequiresMusicRootToExist(t *testing.T) {
	cfg := &Config{MusicRoot: filepath.Join(os.TempDir(), "does-not-exist-xyz"), OutputDir: "out"}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should fail when MusicRoot does not exist")
	}
}

func TestValidateRequiresOutputDir(t *testing.T) {
	cfg := &Config{MusicRoot: t.TempDir(), OutputDir: ""}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should fail when OutputDir is empty")
	}
}

func TestValidateOK(t *testing.T) {
	cfg := &Config{MusicRoot: t.TempDir(), OutputDir: "out"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadGenreMapEmptyPath(t *testing.T) {
	m, err := LoadGenreMap("")
	if err != nil {
		t.Fatalf("LoadGenreMap(\"\") = %v, want nil error", err)
	}
	if m != nil {
		t.Errorf("LoadGenreMap(\"\") = %v, want nil map", m)
	}
}

func TestLoadGenreMapValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.json")
	if err := os.WriteFile(path, []byte(`{"Hip Hop":"Hip-Hop","RnB":"R&B"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := LoadGenreMap(path)
	if err != nil {
		t.Fatalf("LoadGenreMap: %v", err)
	}
	if m["Hip Hop"] != "Hip-Hop" || m["RnB"] != "R&B" {
		t.Errorf("LoadGenreMap = %v, want the two mappings from the file", m)
	}
}

func TestLoadGenreMapMissingFile(t *testing.T) {
	if _, err := LoadGenreMap(filepath.Join(t.TempDir(), "does-not-exist.json")); err == nil {
		t.Error("LoadGenreMap on a missing file should fail")
	}
}

func TestLoadGenreMapMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadGenreMap(path); err == nil {
		t.Error("LoadGenreMap on malformed JSON should fail")
	}
}
