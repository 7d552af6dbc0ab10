// Package engine applies batch mutations to a music library with
// backup-before-mutation safety, and moves confirmed duplicates to trash.
// All file and tag I/O goes through injected collaborators; the engine
// itself performs no syscalls and keeps no state between calls beyond the
// append-only backup history.
package engine

import (
	"tunetidy/internal/model"
)

// Status is the overall outcome of a batch-style run. Individual file
// failures never escalate to a hard error; they only downgrade the status.
type Status string

const (
	StatusCompleted       Status = "completed"
	StatusPartiallyFailed Status = "partially_failed"
)

// Service coordinates tag I/O, file I/O and the backup store to perform
// batch operations. Construct it with NewService; the zero value is not
// usable.
type Service struct {
	tags    TagIO
	files   FileIO
	backups BackupStore
	reports ReportWriter
	logger  Logger
	clock   Clock
	idgen   IDGenerator
}

// NewService creates a Service with the provided dependencies.
func NewService(tags TagIO, files FileIO, backups BackupStore, reports ReportWriter, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		tags:    tags,
		files:   files,
		backups: backups,
		reports: reports,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
	}
}

// ListBackups returns the stored backup history, newest first.
func (s *Service) ListBackups() ([]*model.BackupSnapshot, error) {
	return s.backups.List()
}

func statusFor(failed []model.FailedFile) Status {
	if len(failed) == 0 {
		return StatusCompleted
	}
	return StatusPartiallyFailed
}
