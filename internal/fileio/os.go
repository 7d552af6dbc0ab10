// Package fileio implements the engine's file I/O on the real filesystem.
package fileio

import (
	"fmt"
	"os"
)

// OSFileIO performs real filesystem operations.
type OSFileIO struct{}

func NewOSFileIO() *OSFileIO { return &OSFileIO{} }

// Move renames a file. It refuses to overwrite: a pre-existing destination
// is an error, never a silent replacement.
func (f *OSFileIO) Move(oldPath, newPath string) error {
	if _, err := os.Stat(oldPath); err != nil {
		return fmt.Errorf("source does not exist: %s", oldPath)
	}
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("destination already exists: %s", newPath)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("moving %s to %s: %w", oldPath, newPath, err)
	}
	return nil
}

// Exists reports whether a file or directory exists at path.
func (f *OSFileIO) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the directory (and parents) if absent.
func (f *OSFileIO) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}
