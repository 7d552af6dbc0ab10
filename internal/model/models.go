package model

import "time"

// Metadata is an immutable snapshot of a file's music tags.
// Every field is a pointer: nil means the tag is absent, which is distinct
// from an empty string. Updates produce a new snapshot via Merge.
type Metadata struct {
	Artist      *string
	Title       *string
	Album       *string
	AlbumArtist *string
	Year        *int
	Genre       *string
	Duration    *float64 // seconds
	TrackNumber *int
}

// HasArtist reports whether the artist tag is present and non-empty.
func (m Metadata) HasArtist() bool { return m.Artist != nil && *m.Artist != "" }

// HasTitle reports whether the title tag is present and non-empty.
func (m Metadata) HasTitle() bool { return m.Title != nil && *m.Title != "" }

// HasAlbum reports whether the album tag is present and non-empty.
func (m Metadata) HasAlbum() bool { return m.Album != nil && *m.Album != "" }

// ArtistOrEmpty returns the artist tag or "" when absent.
func (m Metadata) ArtistOrEmpty() string {
	if m.Artist == nil {
		return ""
	}
	return *m.Artist
}

// TitleOrEmpty returns the title tag or "" when absent.
func (m Metadata) TitleOrEmpty() string {
	if m.Title == nil {
		return ""
	}
	return *m.Title
}

// Merge returns a new snapshot with every present field of update applied
// over m. Absent (nil) fields of update leave m's values untouched.
func (m Metadata) Merge(update Metadata) Metadata {
	out := m
	if update.Artist != nil {
		out.Artist = update.Artist
	}
	if update.Title != nil {
		out.Title = update.Title
	}
	if update.Album != nil {
		out.Album = update.Album
	}
	if update.AlbumArtist != nil {
		out.AlbumArtist = update.AlbumArtist
	}
	if update.Year != nil {
		out.Year = update.Year
	}
	if update.Genre != nil {
		out.Genre = update.Genre
	}
	if update.Duration != nil {
		out.Duration = update.Duration
	}
	if update.TrackNumber != nil {
		out.TrackNumber = update.TrackNumber
	}
	return out
}

// String returns a pointer to s, for building Metadata literals.
func String(s string) *string { return &s }

// Int returns a pointer to n, for building Metadata literals.
func Int(n int) *int { return &n }

// Float returns a pointer to f, for building Metadata literals.
func Float(f float64) *float64 { return &f }

// IssueType classifies a naming issue found on a file.
type IssueType string

const (
	IssueNoArtist        IssueType = "no_artist"
	IssueNoTitle         IssueType = "no_title"
	IssueNoStandard      IssueType = "no_standard"
	IssueInvalidChars    IssueType = "invalid_chars"
	IssueMissingMetadata IssueType = "missing_metadata"
	IssueDuplicate       IssueType = "duplicate"
)

// Severity ranks how urgent a naming issue is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// NamingIssue is a single problem detected on a file's name or tags.
type NamingIssue struct {
	Type        IssueType
	Severity    Severity
	Description string
}

// FileRecord is one scanned file. The absolute Path is its identity within
// a scan. Issues and SuggestedName are derived from Filename and Metadata
// and must be recomputed whenever Metadata changes.
type FileRecord struct {
	Path      string
	Filename  string
	Directory string
	Size      int64
	IsRoot    bool // parent directory equals the scanned root exactly
	Metadata  Metadata

	Issues        []NamingIssue
	SuggestedName string // "" when no suggestion can be made
}

// DuplicateGroup is a cluster of files sharing one duplicate key, split by
// location. A group only exists when both partitions are non-empty.
type DuplicateGroup struct {
	Key            string
	RootFiles      []FileRecord
	OrganizedFiles []FileRecord
}

// SnapshotEntry captures one file's state before a batch mutation.
type SnapshotEntry struct {
	OriginalPath     string
	OriginalFilename string
	OriginalMetadata Metadata
}

// BackupSnapshot is the pre-mutation capture of a whole batch run.
// Snapshots are write-once per ID and never deleted.
type BackupSnapshot struct {
	ID        string
	Operation string // "rename", "metadata", "autofix", "organize"
	Params    string // operation-specific, e.g. organize target dir
	CreatedAt time.Time
	Entries   []SnapshotEntry
}

// MovedFile records one successful trash move in a cleanup run.
type MovedFile struct {
	OriginalPath string
	TrashPath    string
	Filename     string
	Metadata     Metadata
	MatchedWith  []string // organized paths the file duplicated
}

// FailedFile records one per-file failure in a cleanup or batch run.
type FailedFile struct {
	Path     string
	Filename string
	Error    string
}

// CleanupReport is the write-once artifact of a single cleanup run.
type CleanupReport struct {
	Timestamp     time.Time
	RootDirectory string
	TrashFolder   string
	MovedFiles    []MovedFile
	FailedFiles   []FailedFile
}
