// Package export renders library listings and cleanup reports as text,
// CSV and JSON.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tunetidy/internal/model"
)

const rule = "================================================================================"
const thinRule = "--------------------------------------------------------------------------------"

// RenderCleanupReport writes the human-readable form of a cleanup run.
func RenderCleanupReport(w io.Writer, report *model.CleanupReport) error {
	var b bytes.Buffer

	fmt.Fprintf(&b, "%s\nDUPLICATE CLEANUP REPORT\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Timestamp: %s\n", report.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Root Directory: %s\n", report.RootDirectory)
	fmt.Fprintf(&b, "Trash Folder: %s\n", report.TrashFolder)
	fmt.Fprintf(&b, "Total Files Moved: %d\n", len(report.MovedFiles))
	fmt.Fprintf(&b, "Total Failed: %d\n\n", len(report.FailedFiles))

	if len(report.MovedFiles) > 0 {
		fmt.Fprintf(&b, "%s\nMOVED FILES\n%s\n\n", thinRule, thinRule)
		for i, moved := range report.MovedFiles {
			fmt.Fprintf(&b, "%d. %s\n", i+1, moved.Filename)
			fmt.Fprintf(&b, "   Original Path: %s\n", moved.OriginalPath)
			fmt.Fprintf(&b, "   Trash Path: %s\n", moved.TrashPath)
			fmt.Fprintf(&b, "   Artist: %s\n", orNA(moved.Metadata.ArtistOrEmpty()))
			fmt.Fprintf(&b, "   Title: %s\n", orNA(moved.Metadata.TitleOrEmpty()))
			fmt.Fprintf(&b, "   Matched with organized files:\n")
			for _, match := range moved.MatchedWith {
				fmt.Fprintf(&b, "      - %s\n", match)
			}
			b.WriteString("\n")
		}
	}

	if len(report.FailedFiles) > 0 {
		fmt.Fprintf(&b, "%s\nFAILED OPERATIONS\n%s\n\n", thinRule, thinRule)
		for i, failed := range report.FailedFiles {
			fmt.Fprintf(&b, "%d. %s\n", i+1, failed.Filename)
			fmt.Fprintf(&b, "   Path: %s\n", failed.Path)
			fmt.Fprintf(&b, "   Error: %s\n\n", failed.Error)
		}
	}

	fmt.Fprintf(&b, "%s\nEND OF REPORT\n%s\n", rule, rule)

	_, err := w.Write(b.Bytes())
	return err
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// FileReportWriter persists cleanup reports as timestamped text files in
// the trash folder, one file per run.
type FileReportWriter struct{}

func NewFileReportWriter() *FileReportWriter { return &FileReportWriter{} }

func (*FileReportWriter) WriteCleanupReport(dir string, report *model.CleanupReport) (string, error) {
	name := fmt.Sprintf("duplicate_cleanup_report_%s.txt", report.Timestamp.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	var buf bytes.Buffer
	if err := RenderCleanupReport(&buf, report); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing cleanup report: %w", err)
	}
	return path, nil
}
