// Package backup provides the persistent BackupSnapshot store: SQLite for
// real use, memory for tests, selected by config.
package backup

import (
	"database/sql"
	"errors"
	"fmt"

	"tunetidy/internal/backup/migrations"
	"tunetidy/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore persists backup snapshots in a SQLite database.
// Snapshot ids are write-once, enforced by the primary key.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the store at path and applies any
// pending schema migrations. path can be ":memory:" for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup database: %w", err)
	}

	// SQLite defaults foreign keys to OFF for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating backup database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put stores a snapshot under id. A second Put with the same id fails.
func (s *SQLiteStore) Put(id string, snap *model.BackupSnapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO backups (id, operation, params, created_at) VALUES (?, ?, ?, ?)`,
		id, snap.Operation, snap.Params, snap.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting backup %s: %w", id, err)
	}

	for i, entry := range snap.Entries {
		md := entry.OriginalMetadata
		_, err = tx.Exec(
			`INSERT INTO backup_entries
				(backup_id, position, original_path, original_filename,
				 artist, title, album, album_artist, year, genre, duration, track_number)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, entry.OriginalPath, entry.OriginalFilename,
			nullString(md.Artist), nullString(md.Title), nullString(md.Album),
			nullString(md.AlbumArtist), nullInt(md.Year), nullString(md.Genre),
			nullFloat(md.Duration), nullInt(md.TrackNumber),
		)
		if err != nil {
			return fmt.Errorf("inserting backup entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing backup %s: %w", id, err)
	}
	return nil
}

// Get returns the snapshot for id, or nil when no such snapshot exists.
func (s *SQLiteStore) Get(id string) (*model.BackupSnapshot, error) {
	snap := &model.BackupSnapshot{ID: id}

	err := s.db.QueryRow(
		`SELECT operation, params, created_at FROM backups WHERE id = ?`, id,
	).Scan(&snap.Operation, &snap.Params, &snap.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding backup %s: %w", id, err)
	}

	entries, err := s.loadEntries(id)
	if err != nil {
		return nil, err
	}
	snap.Entries = entries
	return snap, nil
}

// List returns all snapshots, newest first.
func (s *SQLiteStore) List() ([]*model.BackupSnapshot, error) {
	rows, err := s.db.Query(`SELECT id, operation, params, created_at FROM backups ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	defer rows.Close()

	var snaps []*model.BackupSnapshot
	for rows.Next() {
		snap := &model.BackupSnapshot{}
		if err := rows.Scan(&snap.ID, &snap.Operation, &snap.Params, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning backup row: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating backups: %w", err)
	}

	for _, snap := range snaps {
		entries, err := s.loadEntries(snap.ID)
		if err != nil {
			return nil, err
		}
		snap.Entries = entries
	}
	return snaps, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) loadEntries(backupID string) ([]model.SnapshotEntry, error) {
	rows, err := s.db.Query(
		`SELECT original_path, original_filename,
				artist, title, album, album_artist, year, genre, duration, track_number
		 FROM backup_entries WHERE backup_id = ? ORDER BY position`,
		backupID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading entries for backup %s: %w", backupID, err)
	}
	defer rows.Close()

	var entries []model.SnapshotEntry
	for rows.Next() {
		var entry model.SnapshotEntry
		var artist, title, album, albumArtist, genre sql.NullString
		var year, trackNumber sql.NullInt64
		var duration sql.NullFloat64

		err := rows.Scan(&entry.OriginalPath, &entry.OriginalFilename,
			&artist, &title, &album, &albumArtist, &year, &genre, &duration, &trackNumber)
		if err != nil {
			return nil, fmt.Errorf("scanning backup entry: %w", err)
		}

		entry.OriginalMetadata = model.Metadata{
			Artist:      fromNullString(artist),
			Title:       fromNullString(title),
			Album:       fromNullString(album),
			AlbumArtist: fromNullString(albumArtist),
			Year:        fromNullInt(year),
			Genre:       fromNullString(genre),
			Duration:    fromNullFloat(duration),
			TrackNumber: fromNullInt(trackNumber),
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries for backup %s: %w", backupID, err)
	}
	return entries, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func fromNullString(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

func fromNullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func fromNullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Float64
	return &f
}
