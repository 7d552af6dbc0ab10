package engine

import "tunetidy/internal/model"

// TagIO reads and writes music tags. The engine never parses binary tag
// formats itself; implementations own the frame-level details.
type TagIO interface {
	// ReadMetadata returns the current tag snapshot for the file.
	ReadMetadata(path string) (model.Metadata, error)

	// WriteMetadata applies the present (non-nil) fields of update to the
	// file's tags, leaving other fields untouched.
	WriteMetadata(path string, update model.Metadata) error

	// ReplaceMetadata rewrites the file's tags to exactly md, removing
	// fields that are absent in md. Restore depends on this to return a
	// file to its captured state.
	ReplaceMetadata(path string, md model.Metadata) error
}

// FileIO performs the filesystem side effects the engine delegates.
// Move must refuse to overwrite an existing destination.
type FileIO interface {
	Move(oldPath, newPath string) error
	Exists(path string) bool
	EnsureDir(path string) error
}

// BackupStore persists backup snapshots keyed by id. Ids are write-once:
// a second Put with the same id must fail. Snapshots are never deleted.
type BackupStore interface {
	Put(id string, snap *model.BackupSnapshot) error

	// Get returns the snapshot for id, or nil when no such snapshot exists.
	Get(id string) (*model.BackupSnapshot, error)

	// List returns all snapshots, newest first.
	List() ([]*model.BackupSnapshot, error)

	Close() error
}

// ReportWriter renders a cleanup report into a human-readable artifact in
// the given directory and returns the path written. Rendering formats are
// the export package's concern, not the engine's.
type ReportWriter interface {
	WriteCleanupReport(dir string, report *model.CleanupReport) (string, error)
}
