package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	f := NewFileFromConfig(nil, "")

	if f.AllowNonRootAccess() {
		t.Fatalf("non-root access should default to false")
	}
	if f.WatchSchedule() != "" {
		t.Fatalf("watch schedule should default to empty, got %q", f.WatchSchedule())
	}
	if f.WatchSource() != WatchSourceMock {
		t.Fatalf("watch source should default to %q, got %q", WatchSourceMock, f.WatchSource())
	}
}

func TestLoadMissingFile(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}

	// Absent keys fall back to defaults.
	if f.WatchSource() != WatchSourceMock {
		t.Fatalf("watch source should default to %q, got %q", WatchSourceMock, f.WatchSource())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battreport.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	f.SetAllowNonRootAccess(true)
	f.SetWatchSchedule("@every 5m")
	f.SetWatchSource(WatchSourceHost)

	if err := f.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	if !loaded.AllowNonRootAccess() {
		t.Fatalf("allowNonRootAccess did not survive the round trip")
	}
	if loaded.WatchSchedule() != "@every 5m" {
		t.Fatalf("watchSchedule = %q, expected %q", loaded.WatchSchedule(), "@every 5m")
	}
	if loaded.WatchSource() != WatchSourceHost {
		t.Fatalf("watchSource = %q, expected %q", loaded.WatchSource(), WatchSourceHost)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("empty config file should not be an error: %v", err)
	}
	if f.AllowNonRootAccess() {
		t.Fatalf("empty file should behave like defaults")
	}
}
