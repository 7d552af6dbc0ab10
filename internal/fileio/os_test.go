package fileio

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestOSFileIO_Move(t *testing.T) {
	fio := NewOSFileIO()

	t.Run("moves a file", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "a.mp3")
		dst := filepath.Join(dir, "b.mp3")
		writeFile(t, src)

		if err := fio.Move(src, dst); err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		if fio.Exists(src) {
			t.Error("source still exists after move")
		}
		if !fio.Exists(dst) {
			t.Error("destination missing after move")
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "a.mp3")
		dst := filepath.Join(dir, "b.mp3")
		writeFile(t, src)
		writeFile(t, dst)

		if err := fio.Move(src, dst); err == nil {
			t.Fatal("Move() onto existing file should fail")
		}
		if !fio.Exists(src) {
			t.Error("source was consumed by failed move")
		}
	})

	t.Run("missing source", func(t *testing.T) {
		dir := t.TempDir()
		if err := fio.Move(filepath.Join(dir, "nope.mp3"), filepath.Join(dir, "b.mp3")); err == nil {
			t.Fatal("Move() of missing source should fail")
		}
	})
}

func TestOSFileIO_EnsureDir(t *testing.T) {
	fio := NewOSFileIO()
	dir := t.TempDir()

	nested := filepath.Join(dir, "a", "b", "c")
	if err := fio.EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if !fio.Exists(nested) {
		t.Error("directory not created")
	}

	// Idempotent.
	if err := fio.EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir() second call error = %v", err)
	}
}
