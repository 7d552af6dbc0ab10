package testutil

import (
	"fmt"
	"sync"

	"tunetidy/internal/model"
)

// MemoryTagIO is an in-memory engine.TagIO for tests. Paths without stored
// tags read back as an empty (fully absent) snapshot, like an untagged
// file on disk.
type MemoryTagIO struct {
	mu   sync.Mutex
	tags map[string]model.Metadata

	// ReadErr / WriteErr map a path to an error message returned by the
	// corresponding operation, for failure injection.
	ReadErr  map[string]string
	WriteErr map[string]string
}

func NewMemoryTagIO() *MemoryTagIO {
	return &MemoryTagIO{
		tags:     make(map[string]model.Metadata),
		ReadErr:  make(map[string]string),
		WriteErr: make(map[string]string),
	}
}

// SetTags seeds the stored snapshot for a path.
func (m *MemoryTagIO) SetTags(path string, md model.Metadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[path] = md
}

// Tags returns the stored snapshot for a path.
func (m *MemoryTagIO) Tags(path string) model.Metadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tags[path]
}

func (m *MemoryTagIO) ReadMetadata(path string) (model.Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg, ok := m.ReadErr[path]; ok {
		return model.Metadata{}, fmt.Errorf("%s", msg)
	}
	return m.tags[path], nil
}

func (m *MemoryTagIO) WriteMetadata(path string, update model.Metadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg, ok := m.WriteErr[path]; ok {
		return fmt.Errorf("%s", msg)
	}
	m.tags[path] = m.tags[path].Merge(update)
	return nil
}

func (m *MemoryTagIO) ReplaceMetadata(path string, md model.Metadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg, ok := m.WriteErr[path]; ok {
		return fmt.Errorf("%s", msg)
	}
	m.tags[path] = md
	return nil
}

// Rename moves stored tags from one path to another, mirroring a file
// move performed by the file I/O fake.
func (m *MemoryTagIO) Rename(oldPath, newPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if md, ok := m.tags[oldPath]; ok {
		m.tags[newPath] = md
		delete(m.tags, oldPath)
	}
}
