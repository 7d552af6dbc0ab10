package engine

import (
	"fmt"
	"path/filepath"

	"tunetidy/internal/model"
	"tunetidy/internal/naming"
)

// OrganizeResult is the structured report of an organize run.
type OrganizeResult struct {
	Status   Status
	BackupID string
	Moved    []RenameOutcome
	Failed   []model.FailedFile
}

// OrganizedPath plans where a file belongs in an {Artist}/{Album} tree.
// Missing tags fall back to "Unknown Artist" / "Unknown Album"; directory
// names are sanitized like filenames.
func OrganizedPath(targetDir, filename string, md model.Metadata) string {
	artist := "Unknown Artist"
	if md.HasArtist() {
		artist = naming.Sanitize(*md.Artist)
	}
	album := "Unknown Album"
	if md.HasAlbum() {
		album = naming.Sanitize(*md.Album)
	}
	return filepath.Join(targetDir, artist, album, filename)
}

// Organize moves files into an {Artist}/{Album} tree under targetDir.
// Like every batch mutation, the run captures a backup snapshot first when
// requested; the snapshot records targetDir so restore can find the moved
// files again.
func (s *Service) Organize(files []model.FileRecord, targetDir string, createBackup bool) (*OrganizeResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files given")
	}
	if targetDir == "" {
		return nil, fmt.Errorf("target directory is required")
	}

	result := &OrganizeResult{}

	if createBackup {
		id, err := s.captureBackup(files, "organize", targetDir)
		if err != nil {
			return nil, err
		}
		result.BackupID = id
	}

	for _, f := range files {
		dest := OrganizedPath(targetDir, f.Filename, f.Metadata)
		if dest == f.Path {
			result.Moved = append(result.Moved, RenameOutcome{OldPath: f.Path, NewPath: dest, NewName: f.Filename})
			continue
		}

		if err := s.files.EnsureDir(filepath.Dir(dest)); err != nil {
			result.Failed = append(result.Failed, model.FailedFile{
				Path:     f.Path,
				Filename: f.Filename,
				Error:    fmt.Sprintf("creating folder: %v", err),
			})
			continue
		}

		if err := s.files.Move(f.Path, dest); err != nil {
			result.Failed = append(result.Failed, model.FailedFile{
				Path:     f.Path,
				Filename: f.Filename,
				Error:    err.Error(),
			})
			continue
		}

		s.logger.Debug("file organized", "old", f.Path, "new", dest)
		result.Moved = append(result.Moved, RenameOutcome{OldPath: f.Path, NewPath: dest, NewName: f.Filename})
	}

	result.Status = statusFor(result.Failed)
	s.logger.Info("organize finished", "moved", len(result.Moved), "failed", len(result.Failed))
	return result, nil
}
