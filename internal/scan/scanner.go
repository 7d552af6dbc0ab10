// Package scan walks a music directory and produces the FileRecords the
// engine and detector consume.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tunetidy/internal/engine"
	"tunetidy/internal/model"
	"tunetidy/internal/naming"
)

// Scanner discovers MP3 files and reads their tags through the injected
// tag collaborator.
type Scanner struct {
	tags   engine.TagIO
	logger engine.Logger
}

func NewScanner(tags engine.TagIO, logger engine.Logger) *Scanner {
	return &Scanner{tags: tags, logger: logger}
}

// Scan walks rootDir and returns a record per MP3 file found. When
// recursive is false only the root directory itself is listed. A tag read
// failure degrades that record to absent metadata rather than aborting the
// scan; a missing or non-directory root is a hard error.
func (s *Scanner) Scan(rootDir string, recursive bool) ([]model.FileRecord, error) {
	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}

	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("root directory does not exist: %s", rootDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", rootDir)
	}

	var records []model.FileRecord

	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != rootDir {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".mp3") {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		records = append(records, s.newRecord(rootDir, path, fi.Size()))
		return nil
	}

	if err := filepath.WalkDir(rootDir, walk); err != nil {
		return nil, fmt.Errorf("walking %s: %w", rootDir, err)
	}

	s.logger.Info("scan finished", "root", rootDir, "files", len(records))
	return records, nil
}

// newRecord builds one FileRecord with its metadata, issues and suggested
// name populated.
func (s *Scanner) newRecord(rootDir, path string, size int64) model.FileRecord {
	rec := model.FileRecord{
		Path:      path,
		Filename:  filepath.Base(path),
		Directory: filepath.Dir(path),
		Size:      size,
		IsRoot:    filepath.Dir(path) == rootDir,
	}

	md, err := s.tags.ReadMetadata(path)
	if err != nil {
		// Unreadable tags are a per-file condition, not a scan failure.
		s.logger.Warn("could not read tags", "path", path, "error", err)
	} else {
		rec.Metadata = md
	}

	naming.Derive(&rec)
	return rec
}

// Refresh re-reads a record's tags and recomputes its derived fields.
// Call after a mutation changed the file.
func (s *Scanner) Refresh(rec *model.FileRecord) error {
	md, err := s.tags.ReadMetadata(rec.Path)
	if err != nil {
		return fmt.Errorf("re-reading tags: %w", err)
	}
	rec.Metadata = md
	naming.Derive(rec)
	return nil
}
