package backup

import (
	"testing"
	"time"

	"tunetidy/internal/engine"
	"tunetidy/internal/model"
)

func testStores(t *testing.T) map[string]engine.BackupStore {
	t.Helper()

	sqlite, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]engine.BackupStore{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func sampleSnapshot(id string, at time.Time) *model.BackupSnapshot {
	return &model.BackupSnapshot{
		ID:        id,
		Operation: "rename",
		CreatedAt: at,
		Entries: []model.SnapshotEntry{
			{
				OriginalPath:     "/music/yesterday.mp3",
				OriginalFilename: "yesterday.mp3",
				OriginalMetadata: model.Metadata{
					Artist: model.String("The Beatles"),
					Title:  model.String("Yesterday"),
					Year:   model.Int(1965),
				},
			},
			{
				OriginalPath:     "/music/untagged.mp3",
				OriginalFilename: "untagged.mp3",
			},
		},
	}
}

func TestStore_PutGet(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			snap := sampleSnapshot("b1", at)
			if err := store.Put("b1", snap); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			got, err := store.Get("b1")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got == nil {
				t.Fatal("Get() returned nil for stored snapshot")
			}
			if got.Operation != "rename" {
				t.Errorf("Operation = %q, want rename", got.Operation)
			}
			if len(got.Entries) != 2 {
				t.Fatalf("entries = %d, want 2", len(got.Entries))
			}

			first := got.Entries[0]
			if first.OriginalPath != "/music/yesterday.mp3" {
				t.Errorf("OriginalPath = %q", first.OriginalPath)
			}
			if first.OriginalMetadata.ArtistOrEmpty() != "The Beatles" {
				t.Errorf("Artist = %q", first.OriginalMetadata.ArtistOrEmpty())
			}
			if first.OriginalMetadata.Year == nil || *first.OriginalMetadata.Year != 1965 {
				t.Errorf("Year = %v, want 1965", first.OriginalMetadata.Year)
			}

			// Absence must survive the round trip.
			second := got.Entries[1]
			if second.OriginalMetadata.Artist != nil || second.OriginalMetadata.Title != nil {
				t.Errorf("untagged entry came back with tags: %+v", second.OriginalMetadata)
			}
		})
	}
}

func TestStore_GetUnknownID(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.Get("nope")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != nil {
				t.Fatalf("Get() = %+v, want nil", got)
			}
		})
	}
}

func TestStore_IDsAreWriteOnce(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Put("b1", sampleSnapshot("b1", at)); err != nil {
				t.Fatalf("first Put() error = %v", err)
			}
			if err := store.Put("b1", sampleSnapshot("b1", at)); err == nil {
				t.Fatal("second Put() with same id should fail")
			}
		})
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			for i, id := range []string{"old", "mid", "new"} {
				snap := sampleSnapshot(id, base.Add(time.Duration(i)*time.Hour))
				if err := store.Put(id, snap); err != nil {
					t.Fatalf("Put(%s) error = %v", id, err)
				}
			}

			snaps, err := store.List()
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(snaps) != 3 {
				t.Fatalf("List() = %d snapshots, want 3", len(snaps))
			}
			if snaps[0].ID != "new" || snaps[2].ID != "old" {
				t.Errorf("order = [%s %s %s], want newest first", snaps[0].ID, snaps[1].ID, snaps[2].ID)
			}
		})
	}
}
