package backup

import (
	"fmt"
	"sort"
	"sync"

	"tunetidy/internal/model"
)

// MemoryStore is an in-memory backup store. It enforces the same
// write-once-per-id contract as the SQLite store and is safe for
// concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]*model.BackupSnapshot
	order []string // insertion order, for stable listing
}

// NewMemoryStore creates an empty in-memory backup store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]*model.BackupSnapshot)}
}

// Put stores a snapshot under id. A second Put with the same id fails.
func (m *MemoryStore) Put(id string, snap *model.BackupSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.snaps[id]; exists {
		return fmt.Errorf("backup %s already exists", id)
	}

	m.snaps[id] = copySnapshot(snap)
	m.order = append(m.order, id)
	return nil
}

// Get returns the snapshot for id, or nil when no such snapshot exists.
func (m *MemoryStore) Get(id string) (*model.BackupSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.snaps[id]
	if !ok {
		return nil, nil
	}
	return copySnapshot(snap), nil
}

// List returns all snapshots, newest first.
func (m *MemoryStore) List() ([]*model.BackupSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*model.BackupSnapshot, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, copySnapshot(m.snaps[m.order[i]]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error { return nil }

// copySnapshot guards the stored snapshot against caller mutation.
func copySnapshot(snap *model.BackupSnapshot) *model.BackupSnapshot {
	out := *snap
	out.Entries = make([]model.SnapshotEntry, len(snap.Entries))
	copy(out.Entries, snap.Entries)
	return &out
}
