package engine

import (
	"fmt"
	"path/filepath"

	"tunetidy/internal/model"
	"tunetidy/internal/naming"
)

// RestoreResult reports a restore run. Every captured entry is attempted
// regardless of earlier failures.
type RestoreResult struct {
	BackupID string
	Restored int
	Failed   []model.FailedFile
	Message  string
}

// Restore replays a backup snapshot: each captured entry's file is moved
// back to its original path (when a batch had renamed it) and its tags are
// rewritten to the captured originals. Restoring an already-correct file is
// a no-op, so running the same restore twice yields the same final state.
// An unknown backupID is a hard error; nothing is attempted.
func (s *Service) Restore(backupID string) (*RestoreResult, error) {
	snap, err := s.backups.Get(backupID)
	if err != nil {
		return nil, fmt.Errorf("reading backup snapshot: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("backup %q not found", backupID)
	}

	s.logger.Info("restore started", "backup_id", backupID, "operation", snap.Operation, "entries", len(snap.Entries))

	result := &RestoreResult{BackupID: backupID}

	// Replay in reverse capture order.
	for i := len(snap.Entries) - 1; i >= 0; i-- {
		entry := snap.Entries[i]

		current, err := s.locate(snap, entry)
		if err != nil {
			result.Failed = append(result.Failed, model.FailedFile{
				Path:     entry.OriginalPath,
				Filename: entry.OriginalFilename,
				Error:    err.Error(),
			})
			continue
		}

		if current != entry.OriginalPath {
			if err := s.files.Move(current, entry.OriginalPath); err != nil {
				result.Failed = append(result.Failed, model.FailedFile{
					Path:     entry.OriginalPath,
					Filename: entry.OriginalFilename,
					Error:    fmt.Sprintf("moving back: %v", err),
				})
				continue
			}
		}

		if err := s.tags.ReplaceMetadata(entry.OriginalPath, entry.OriginalMetadata); err != nil {
			result.Failed = append(result.Failed, model.FailedFile{
				Path:     entry.OriginalPath,
				Filename: entry.OriginalFilename,
				Error:    fmt.Sprintf("rewriting tags: %v", err),
			})
			continue
		}

		result.Restored++
	}

	result.Message = fmt.Sprintf("restored %d of %d files from backup %s", result.Restored, len(snap.Entries), backupID)
	s.logger.Info("restore finished", "backup_id", backupID, "restored", result.Restored, "failed", len(result.Failed))
	return result, nil
}

// locate finds where a captured file currently lives. The original path is
// probed first (covers metadata-only runs and already-restored files), then
// the deterministic destination the captured operation would have moved it
// to. Batch renames always target the suggested name derived from the
// captured filename and tags, and organize runs record their target
// directory in the snapshot params, so both destinations are recomputable.
func (s *Service) locate(snap *model.BackupSnapshot, entry model.SnapshotEntry) (string, error) {
	if s.files.Exists(entry.OriginalPath) {
		return entry.OriginalPath, nil
	}

	switch snap.Operation {
	case "rename", "autofix":
		if newName, ok := naming.SuggestName(entry.OriginalFilename, entry.OriginalMetadata); ok {
			candidate := filepath.Join(filepath.Dir(entry.OriginalPath), newName)
			if s.files.Exists(candidate) {
				return candidate, nil
			}
		}
	case "organize":
		if snap.Params != "" {
			candidate := OrganizedPath(snap.Params, entry.OriginalFilename, entry.OriginalMetadata)
			if s.files.Exists(candidate) {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("cannot locate file (looked at %s)", entry.OriginalPath)
}
