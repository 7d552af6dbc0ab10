// Package app is the application layer between the CLI and the engine.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and manages resource lifecycles on Close.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"tunetidy/internal/backup"
	"tunetidy/internal/config"
	"tunetidy/internal/dupes"
	"tunetidy/internal/engine"
	"tunetidy/internal/export"
	"tunetidy/internal/fileio"
	"tunetidy/internal/model"
	"tunetidy/internal/quality"
	"tunetidy/internal/scan"
	"tunetidy/internal/tagio"
)

// App wires the scanner, duplicate detector, engine and export renderers
// behind path-based operations. The caller must call Close when done.
type App struct {
	cfg      *config.Config
	store    engine.BackupStore
	scanner  *scan.Scanner
	service  *engine.Service
	exporter *export.Exporter
	logFile  *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "Scan", "Cleanup").
func NewApp(cfg *config.Config, operation string) (*App, error) {
	opID := time.Now().UTC().Format("20060102T150405Z") + "-" + operation
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	store, err := backup.NewStoreFromConfig(cfg.Backups)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating backup store: %w", err)
	}

	adapter := &slogAdapter{l: logger}
	tags := tagio.NewID3v2TagIO()
	files := fileio.NewOSFileIO()
	clock := engine.RealClock{}

	svc := engine.NewService(tags, files, store, export.NewFileReportWriter(), adapter, clock, engine.UUIDGenerator{})

	return &App{
		cfg:      cfg,
		store:    store,
		scanner:  scan.NewScanner(tags, adapter),
		service:  svc,
		exporter: export.NewExporter(clock),
		logFile:  logFile,
	}, nil
}

// resolveRoot picks the directory an operation works on: the explicit path
// when given, otherwise the configured library root.
func (a *App) resolveRoot(rawPath string) (string, error) {
	if rawPath == "" {
		rawPath = a.cfg.LibraryRoot
	}
	if rawPath == "" {
		return "", fmt.Errorf("no directory given and no library_root configured")
	}
	abs, err := filepath.Abs(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// Scan walks the directory and returns a record per MP3 file.
func (a *App) Scan(rawPath string, recursive bool) ([]model.FileRecord, error) {
	root, err := a.resolveRoot(rawPath)
	if err != nil {
		return nil, err
	}
	return a.scanner.Scan(root, recursive)
}

// Analyze scans and returns only the records carrying naming issues.
func (a *App) Analyze(rawPath string, recursive bool) ([]model.FileRecord, error) {
	records, err := a.Scan(rawPath, recursive)
	if err != nil {
		return nil, err
	}

	var flagged []model.FileRecord
	for _, rec := range records {
		if len(rec.Issues) > 0 {
			flagged = append(flagged, rec)
		}
	}
	return flagged, nil
}

// Duplicates scans and clusters the files into duplicate groups.
func (a *App) Duplicates(rawPath string) (dupes.Result, error) {
	records, err := a.Scan(rawPath, true)
	if err != nil {
		return dupes.Result{}, err
	}
	return dupes.Detect(records), nil
}

// SimilarPairs scans and reports fuzzy near-matches at the configured
// threshold. Advisory only; cleanup never acts on these.
func (a *App) SimilarPairs(rawPath string) ([]dupes.SimilarPair, error) {
	records, err := a.Scan(rawPath, true)
	if err != nil {
		return nil, err
	}
	return dupes.FindSimilar(records, float32(a.cfg.Fuzzy.Threshold)), nil
}

// Cleanup detects duplicates under the directory and moves the root copies
// to the trash folder.
func (a *App) Cleanup(rawPath, trashFolderName string) (*model.CleanupReport, error) {
	root, err := a.resolveRoot(rawPath)
	if err != nil {
		return nil, err
	}
	if trashFolderName == "" {
		trashFolderName = a.cfg.TrashFolder
	}

	records, err := a.scanner.Scan(root, true)
	if err != nil {
		return nil, err
	}
	result := dupes.Detect(records)
	return a.service.CleanupDuplicates(result.Groups, root, trashFolderName)
}

// Rename scans the directory and renames every file to its standard name.
func (a *App) Rename(rawPath string, recursive, createBackup bool) (*engine.BatchResult, error) {
	records, err := a.Scan(rawPath, recursive)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no MP3 files found")
	}
	return a.service.BatchRename(records, createBackup)
}

// AutoFix scans the directory and repairs tags and names in one pass.
func (a *App) AutoFix(rawPath string, recursive, createBackup bool) (*engine.AutoFixResult, error) {
	records, err := a.Scan(rawPath, recursive)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no MP3 files found")
	}
	return a.service.BatchAutoFix(records, createBackup)
}

// SetMetadata scans the directory and writes the present fields of update
// to every file's tags.
func (a *App) SetMetadata(rawPath string, update model.Metadata, recursive, createBackup bool) (*engine.BatchResult, error) {
	records, err := a.Scan(rawPath, recursive)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no MP3 files found")
	}
	return a.service.BatchUpdateMetadata(records, update, createBackup)
}

// Organize scans the directory and moves the files into an {Artist}/{Album}
// tree under targetDir.
func (a *App) Organize(rawPath, targetDir string, createBackup bool) (*engine.OrganizeResult, error) {
	records, err := a.Scan(rawPath, true)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no MP3 files found")
	}

	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, fmt.Errorf("resolving target: %w", err)
	}
	return a.service.Organize(records, absTarget, createBackup)
}

// Quality scans the directory and estimates per-file audio quality from
// size and tagged duration.
func (a *App) Quality(rawPath string, recursive bool) ([]quality.Assessment, error) {
	records, err := a.Scan(rawPath, recursive)
	if err != nil {
		return nil, err
	}
	return quality.AnalyzeAll(records), nil
}

// Restore replays a backup snapshot.
func (a *App) Restore(backupID string) (*engine.RestoreResult, error) {
	return a.service.Restore(backupID)
}

// Backups returns the stored backup history, newest first.
func (a *App) Backups() ([]*model.BackupSnapshot, error) {
	return a.service.ListBackups()
}

// Export scans the directory and writes the listing to w in the given
// format.
func (a *App) Export(rawPath string, format export.Format, w io.Writer) error {
	records, err := a.Scan(rawPath, true)
	if err != nil {
		return err
	}
	return a.exporter.Library(w, format, records)
}

// ExportIssues scans the directory and writes the issues-only report to w.
func (a *App) ExportIssues(rawPath string, w io.Writer) error {
	records, err := a.Scan(rawPath, true)
	if err != nil {
		return err
	}
	return a.exporter.IssuesReport(w, records)
}

// Close releases the backup store and the log file.
func (a *App) Close() error {
	var firstErr error

	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing backup store: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
