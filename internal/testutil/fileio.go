package testutil

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryFileIO is an in-memory engine.FileIO for tests. It tracks file
// presence only; content is irrelevant to the engine.
type MemoryFileIO struct {
	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool

	// FailMove maps a source path to an error message; Move from that path
	// fails with it. Use to simulate unreadable or locked files.
	FailMove map[string]string
}

func NewMemoryFileIO() *MemoryFileIO {
	return &MemoryFileIO{
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		FailMove: make(map[string]string),
	}
}

// AddFile marks a file as existing.
func (m *MemoryFileIO) AddFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = true
}

func (m *MemoryFileIO) Move(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if msg, ok := m.FailMove[oldPath]; ok {
		return fmt.Errorf("%s", msg)
	}
	if !m.files[oldPath] {
		return fmt.Errorf("source does not exist: %s", oldPath)
	}
	if m.files[newPath] {
		return fmt.Errorf("destination already exists: %s", newPath)
	}

	delete(m.files, oldPath)
	m.files[newPath] = true
	return nil
}

func (m *MemoryFileIO) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[path] || m.dirs[path]
}

func (m *MemoryFileIO) EnsureDir(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return nil
}

// Paths returns every existing file path, sorted, for assertions.
func (m *MemoryFileIO) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// PathsUnder returns existing file paths with the given prefix, sorted.
func (m *MemoryFileIO) PathsUnder(prefix string) []string {
	var out []string
	for _, p := range m.Paths() {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}
