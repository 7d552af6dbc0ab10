package engine

import (
	"fmt"
	"path/filepath"

	"tunetidy/internal/model"
	"tunetidy/internal/naming"
)

// RenameOutcome records one successful file move within a batch run.
type RenameOutcome struct {
	OldPath string
	NewPath string
	NewName string
}

// BatchResult is the structured report of a rename or metadata-update run.
// Per-file failures live in Failed; they never abort the run.
type BatchResult struct {
	Status   Status
	BackupID string // "" when no backup was requested
	Renamed  []RenameOutcome
	Updated  []string // paths whose tags were written
	Failed   []model.FailedFile
}

// captureBackup snapshots every input record and persists the snapshot
// before any mutation. The capture uses the metadata already carried by the
// records, so it cannot partially fail per file; only the store write can
// fail, and that aborts the whole run.
func (s *Service) captureBackup(files []model.FileRecord, operation, params string) (string, error) {
	snap := &model.BackupSnapshot{
		ID:        s.idgen.New(),
		Operation: operation,
		Params:    params,
		CreatedAt: s.clock.Now(),
		Entries:   make([]model.SnapshotEntry, 0, len(files)),
	}

	for _, f := range files {
		snap.Entries = append(snap.Entries, model.SnapshotEntry{
			OriginalPath:     f.Path,
			OriginalFilename: f.Filename,
			OriginalMetadata: f.Metadata,
		})
	}

	if err := s.backups.Put(snap.ID, snap); err != nil {
		return "", fmt.Errorf("writing backup snapshot: %w", err)
	}

	s.logger.Info("backup captured", "backup_id", snap.ID, "operation", operation, "files", len(files))
	return snap.ID, nil
}

// BatchRename renames every file to its suggested standard name. Files
// without a derivable suggestion are recorded as failures. An unbacked
// mutation is the failure mode this tool exists to prevent, so when
// createBackup is set and the snapshot cannot be written, nothing is
// renamed and the error is returned.
func (s *Service) BatchRename(files []model.FileRecord, createBackup bool) (*BatchResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files given")
	}

	result := &BatchResult{}

	if createBackup {
		id, err := s.captureBackup(files, "rename", "")
		if err != nil {
			return nil, err
		}
		result.BackupID = id
	}

	for _, f := range files {
		newName := f.SuggestedName
		if newName == "" {
			var ok bool
			newName, ok = naming.SuggestName(f.Filename, f.Metadata)
			if !ok {
				result.Failed = append(result.Failed, model.FailedFile{
					Path:     f.Path,
					Filename: f.Filename,
					Error:    "no suggested name could be derived",
				})
				continue
			}
		}

		if newName == f.Filename {
			// Already standard.
			result.Renamed = append(result.Renamed, RenameOutcome{OldPath: f.Path, NewPath: f.Path, NewName: newName})
			continue
		}

		newPath := filepath.Join(f.Directory, newName)
		if err := s.files.Move(f.Path, newPath); err != nil {
			result.Failed = append(result.Failed, model.FailedFile{
				Path:     f.Path,
				Filename: f.Filename,
				Error:    err.Error(),
			})
			continue
		}

		s.logger.Debug("file renamed", "old", f.Path, "new", newPath)
		result.Renamed = append(result.Renamed, RenameOutcome{OldPath: f.Path, NewPath: newPath, NewName: newName})
	}

	result.Status = statusFor(result.Failed)
	s.logger.Info("batch rename finished", "renamed", len(result.Renamed), "failed", len(result.Failed))
	return result, nil
}

// BatchUpdateMetadata writes the present fields of update to every file's
// tags. Each file is attempted independently.
func (s *Service) BatchUpdateMetadata(files []model.FileRecord, update model.Metadata, createBackup bool) (*BatchResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files given")
	}

	result := &BatchResult{}

	if createBackup {
		id, err := s.captureBackup(files, "metadata", "")
		if err != nil {
			return nil, err
		}
		result.BackupID = id
	}

	for _, f := range files {
		if err := s.tags.WriteMetadata(f.Path, update); err != nil {
			result.Failed = append(result.Failed, model.FailedFile{
				Path:     f.Path,
				Filename: f.Filename,
				Error:    err.Error(),
			})
			continue
		}
		result.Updated = append(result.Updated, f.Path)
	}

	result.Status = statusFor(result.Failed)
	s.logger.Info("batch metadata update finished", "updated", len(result.Updated), "failed", len(result.Failed))
	return result, nil
}
