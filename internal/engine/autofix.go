package engine

import (
	"fmt"
	"path/filepath"

	"tunetidy/internal/model"
	"tunetidy/internal/naming"
)

// FixOutcome reports what auto-fix achieved for one file. The two sub-steps
// are independent: a file can have its tags filled and still fail the
// rename, and both facts stay visible here.
type FixOutcome struct {
	Path           string
	MetadataFilled bool
	Renamed        bool
	NewPath        string // set when Renamed
}

// AutoFixResult is the structured report of an auto-fix run.
type AutoFixResult struct {
	Status   Status
	BackupID string
	Outcomes []FixOutcome
	Failed   []model.FailedFile
}

// BatchAutoFix repairs each file in two sub-steps: first fill any absent
// artist/title tags recoverable from the filename, then rename the file to
// the canonical name derived from the (possibly just-updated) tags. Files
// where neither sub-step applies pass through with an all-false outcome.
func (s *Service) BatchAutoFix(files []model.FileRecord, createBackup bool) (*AutoFixResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files given")
	}

	result := &AutoFixResult{}

	if createBackup {
		id, err := s.captureBackup(files, "autofix", "")
		if err != nil {
			return nil, err
		}
		result.BackupID = id
	}

	for _, f := range files {
		outcome := FixOutcome{Path: f.Path}
		md := f.Metadata

		// Sub-step 1: fill absent tags from the filename.
		if !md.HasArtist() || !md.HasTitle() {
			if artist, title, ok := naming.ParseFilename(f.Filename); ok {
				update := model.Metadata{}
				if !md.HasArtist() {
					update.Artist = model.String(artist)
				}
				if !md.HasTitle() {
					update.Title = model.String(title)
				}

				if err := s.tags.WriteMetadata(f.Path, update); err != nil {
					result.Failed = append(result.Failed, model.FailedFile{
						Path:     f.Path,
						Filename: f.Filename,
						Error:    fmt.Sprintf("filling metadata: %v", err),
					})
				} else {
					outcome.MetadataFilled = true
					md = md.Merge(update)
				}
			}
		}

		// Sub-step 2: rename using the updated tags.
		if newName, ok := naming.SuggestName(f.Filename, md); ok && newName != f.Filename {
			newPath := filepath.Join(f.Directory, newName)
			if err := s.files.Move(f.Path, newPath); err != nil {
				result.Failed = append(result.Failed, model.FailedFile{
					Path:     f.Path,
					Filename: f.Filename,
					Error:    fmt.Sprintf("renaming: %v", err),
				})
			} else {
				outcome.Renamed = true
				outcome.NewPath = newPath
				s.logger.Debug("file fixed", "old", f.Path, "new", newPath)
			}
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.Status = statusFor(result.Failed)
	s.logger.Info("auto-fix finished", "files", len(files), "failed", len(result.Failed))
	return result, nil
}
