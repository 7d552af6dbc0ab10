package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		LibraryRoot: "/home/user/Music",
		TrashFolder: "Trash",
		BaseDir:     "/home/user/.local/share/tunetidy",
		LogDir:      "/home/user/.local/share/tunetidy/log",
		Backups:     BackupStoreConfig{Type: "sqlite", DataDir: "/home/user/.local/share/tunetidy/backups"},
		Fuzzy:       FuzzyConfig{Enabled: true, Threshold: 0.9},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.LibraryRoot != original.LibraryRoot {
		t.Errorf("LibraryRoot = %q, want %q", got.LibraryRoot, original.LibraryRoot)
	}
	if got.TrashFolder != original.TrashFolder {
		t.Errorf("TrashFolder = %q, want %q", got.TrashFolder, original.TrashFolder)
	}
	if got.Backups.Type != "sqlite" {
		t.Errorf("Backups.Type = %q, want sqlite", got.Backups.Type)
	}
	if got.Backups.DataDir != original.Backups.DataDir {
		t.Errorf("Backups.DataDir = %q, want %q", got.Backups.DataDir, original.Backups.DataDir)
	}
	if !got.Fuzzy.Enabled || got.Fuzzy.Threshold != 0.9 {
		t.Errorf("Fuzzy = %+v, want enabled with threshold 0.9", got.Fuzzy)
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig("/music", "/data/tunetidy")

	if cfg.TrashFolder != "Trash" {
		t.Errorf("TrashFolder = %q, want Trash", cfg.TrashFolder)
	}
	if cfg.LogDir != filepath.Join("/data/tunetidy", "log") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.Backups.Type != "sqlite" {
		t.Errorf("Backups.Type = %q, want sqlite", cfg.Backups.Type)
	}
	if cfg.Fuzzy.Threshold != 0.85 {
		t.Errorf("Fuzzy.Threshold = %v, want 0.85", cfg.Fuzzy.Threshold)
	}
}

func TestInit_RefusesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunetidy.toml")

	cfg := NewConfig("/music", dir)
	if err := Init(path, cfg); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if err := Init(path, cfg); err == nil {
		t.Fatal("Init() on existing file should fail")
	}
}
