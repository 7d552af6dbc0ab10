package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"tunetidy/internal/model"
)

// DefaultTrashFolder is used when the caller passes an empty trash name.
const DefaultTrashFolder = "Trash"

// CleanupDuplicates moves the root copies of the selected duplicate groups
// into a trash folder under rootDirectory and returns the run's report.
// Organized copies are never touched: the loop below only ever iterates
// RootFiles. A name collision in trash is resolved with a deterministic
// numeric suffix (name_1.mp3, name_2.mp3, …, first free counter wins).
func (s *Service) CleanupDuplicates(groups []model.DuplicateGroup, rootDirectory, trashFolderName string) (*model.CleanupReport, error) {
	if rootDirectory == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if trashFolderName == "" {
		trashFolderName = DefaultTrashFolder
	}

	trashDir := filepath.Join(rootDirectory, trashFolderName)
	if err := s.files.EnsureDir(trashDir); err != nil {
		return nil, fmt.Errorf("creating trash folder: %w", err)
	}

	report := &model.CleanupReport{
		Timestamp:     s.clock.Now(),
		RootDirectory: rootDirectory,
		TrashFolder:   trashDir,
	}

	for _, group := range groups {
		matched := make([]string, len(group.OrganizedFiles))
		for i, organized := range group.OrganizedFiles {
			matched[i] = organized.Path
		}

		for _, rootFile := range group.RootFiles {
			dest := s.trashDestination(trashDir, rootFile.Filename)

			if err := s.files.Move(rootFile.Path, dest); err != nil {
				report.FailedFiles = append(report.FailedFiles, model.FailedFile{
					Path:     rootFile.Path,
					Filename: rootFile.Filename,
					Error:    err.Error(),
				})
				continue
			}

			s.logger.Debug("duplicate trashed", "path", rootFile.Path, "trash", dest)
			report.MovedFiles = append(report.MovedFiles, model.MovedFile{
				OriginalPath: rootFile.Path,
				TrashPath:    dest,
				Filename:     rootFile.Filename,
				Metadata:     rootFile.Metadata,
				MatchedWith:  matched,
			})
		}
	}

	if s.reports != nil {
		if path, err := s.reports.WriteCleanupReport(trashDir, report); err != nil {
			s.logger.Warn("could not persist cleanup report", "error", err)
		} else {
			s.logger.Info("cleanup report written", "path", path)
		}
	}

	s.logger.Info("cleanup finished", "moved", len(report.MovedFiles), "failed", len(report.FailedFiles))
	return report, nil
}

// trashDestination picks a free destination path inside the trash folder.
func (s *Service) trashDestination(trashDir, filename string) string {
	dest := filepath.Join(trashDir, filename)
	if !s.files.Exists(dest) {
		return dest
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	for i := 1; ; i++ {
		dest = filepath.Join(trashDir, fmt.Sprintf("%s_%d%s", base, i, ext))
		if !s.files.Exists(dest) {
			return dest
		}
	}
}
