package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tunetidy/internal/model"
	"tunetidy/internal/naming"
	"tunetidy/internal/testutil"
)

func sampleRecords() []model.FileRecord {
	good := model.FileRecord{
		Path:     "/music/Pink Floyd/Pink Floyd - Time.mp3",
		Filename: "Pink Floyd - Time.mp3",
		Size:     9000000,
		Metadata: model.Metadata{
			Artist:   model.String("Pink Floyd"),
			Title:    model.String("Time"),
			Album:    model.String("The Dark Side of the Moon"),
			Year:     model.Int(1973),
			Genre:    model.String("Progressive Rock"),
			Duration: model.Float(413.5),
		},
		IsRoot: false,
	}
	bad := model.FileRecord{
		Path:     "/music/track07.mp3",
		Filename: "track07.mp3",
		Size:     4000000,
		IsRoot:   true,
	}
	naming.Derive(&good)
	naming.Derive(&bad)
	return []model.FileRecord{good, bad}
}

func TestExporter_LibraryText(t *testing.T) {
	var buf bytes.Buffer
	e := NewExporter(testutil.FixedClock())

	if err := e.Library(&buf, FormatText, sampleRecords()); err != nil {
		t.Fatalf("Library() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"MUSIC LIBRARY REPORT",
		"Generated: 2025-03-01 12:00:00",
		"Total Files: 2",
		"1. Pink Floyd - Time.mp3",
		"Artist: Pink Floyd",
		"2. track07.mp3",
		"Issues:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestExporter_LibraryCSV(t *testing.T) {
	var buf bytes.Buffer
	e := NewExporter(testutil.FixedClock())

	if err := e.Library(&buf, FormatCSV, sampleRecords()); err != nil {
		t.Fatalf("Library() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Filename" || rows[0][2] != "Artist" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][2] != "Pink Floyd" || rows[1][5] != "1973" {
		t.Errorf("data row = %v", rows[1])
	}
	if rows[2][9] != "Yes" {
		t.Errorf("untagged file should flag issues, row = %v", rows[2])
	}
}

func TestExporter_LibraryJSON(t *testing.T) {
	var buf bytes.Buffer
	e := NewExporter(testutil.FixedClock())

	if err := e.Library(&buf, FormatJSON, sampleRecords()); err != nil {
		t.Fatalf("Library() error = %v", err)
	}

	var doc struct {
		Generated  time.Time `json:"generated"`
		TotalFiles int       `json:"total_files"`
		Files      []struct {
			Filename string `json:"filename"`
			Metadata struct {
				Artist *string `json:"artist"`
			} `json:"metadata"`
			Issues []struct {
				Type string `json:"type"`
			} `json:"issues"`
		} `json:"files"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.TotalFiles != 2 || len(doc.Files) != 2 {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.Files[0].Metadata.Artist == nil || *doc.Files[0].Metadata.Artist != "Pink Floyd" {
		t.Errorf("first file metadata = %+v", doc.Files[0].Metadata)
	}
	if doc.Files[1].Metadata.Artist != nil {
		t.Error("absent artist should stay null in JSON")
	}
	if len(doc.Files[1].Issues) == 0 {
		t.Error("untagged file should carry issues")
	}
}

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"txt", "csv", "json"} {
		if _, err := ParseFormat(ok); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", ok, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestExporter_IssuesReport(t *testing.T) {
	var buf bytes.Buffer
	e := NewExporter(testutil.FixedClock())

	if err := e.IssuesReport(&buf, sampleRecords()); err != nil {
		t.Fatalf("IssuesReport() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Files with Issues: 1") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "Pink Floyd - Time.mp3") {
		t.Error("clean file should not appear in the issues report")
	}
	if !strings.Contains(out, "missing_metadata: 1 files") {
		t.Error("summary line missing")
	}
	if !strings.Contains(out, "[HIGH]") {
		t.Error("severity marker missing")
	}
}

func TestFileReportWriter(t *testing.T) {
	dir := t.TempDir()
	report := &model.CleanupReport{
		Timestamp:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		RootDirectory: "/music",
		TrashFolder:   dir,
		MovedFiles: []model.MovedFile{{
			OriginalPath: "/music/a.mp3",
			TrashPath:    filepath.Join(dir, "a.mp3"),
			Filename:     "a.mp3",
			MatchedWith:  []string{"/music/X/a.mp3"},
		}},
		FailedFiles: []model.FailedFile{{
			Path: "/music/b.mp3", Filename: "b.mp3", Error: "file is locked",
		}},
	}

	path, err := NewFileReportWriter().WriteCleanupReport(dir, report)
	if err != nil {
		t.Fatalf("WriteCleanupReport() error = %v", err)
	}
	if filepath.Base(path) != "duplicate_cleanup_report_20250301_120000.txt" {
		t.Errorf("report filename = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"DUPLICATE CLEANUP REPORT",
		"Total Files Moved: 1",
		"Total Failed: 1",
		"Artist: N/A",
		"- /music/X/a.mp3",
		"Error: file is locked",
		"END OF REPORT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
