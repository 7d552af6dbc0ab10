package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"tunetidy/internal/engine"
	"tunetidy/internal/model"
)

// Format selects the library export encoding.
type Format string

const (
	FormatText Format = "txt"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatCSV, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown export format %q (txt, csv or json)", s)
	}
}

// Exporter renders library listings. The clock stamps the generated
// headers so output is reproducible in tests.
type Exporter struct {
	clock engine.Clock
}

func NewExporter(clock engine.Clock) *Exporter {
	return &Exporter{clock: clock}
}

// Library writes the records in the requested format.
func (e *Exporter) Library(w io.Writer, format Format, records []model.FileRecord) error {
	switch format {
	case FormatText:
		return e.libraryText(w, records)
	case FormatCSV:
		return e.libraryCSV(w, records)
	case FormatJSON:
		return e.libraryJSON(w, records)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func (e *Exporter) libraryText(w io.Writer, records []model.FileRecord) error {
	fmt.Fprintf(w, "%s\nMUSIC LIBRARY REPORT\n", rule)
	fmt.Fprintf(w, "Generated: %s\n", e.clock.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Total Files: %d\n%s\n\n", len(records), rule)

	for i, rec := range records {
		fmt.Fprintf(w, "%d. %s\n", i+1, rec.Filename)
		fmt.Fprintf(w, "   Path: %s\n", rec.Path)
		if rec.Metadata.HasArtist() {
			fmt.Fprintf(w, "   Artist: %s\n", *rec.Metadata.Artist)
		}
		if rec.Metadata.HasTitle() {
			fmt.Fprintf(w, "   Title: %s\n", *rec.Metadata.Title)
		}
		if rec.Metadata.HasAlbum() {
			fmt.Fprintf(w, "   Album: %s\n", *rec.Metadata.Album)
		}
		if rec.Metadata.Year != nil {
			fmt.Fprintf(w, "   Year: %d\n", *rec.Metadata.Year)
		}
		if len(rec.Issues) > 0 {
			fmt.Fprintf(w, "   Issues: %d\n", len(rec.Issues))
			for _, issue := range rec.Issues {
				fmt.Fprintf(w, "     - %s\n", issue.Description)
			}
		}
		if rec.SuggestedName != "" && rec.SuggestedName != rec.Filename {
			fmt.Fprintf(w, "   Suggested: %s\n", rec.SuggestedName)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func (e *Exporter) libraryCSV(w io.Writer, records []model.FileRecord) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Filename", "Path", "Artist", "Title", "Album", "Year", "Genre",
		"Duration (s)", "Size (bytes)", "Has Issues", "Issues Count", "Suggested Name",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		hasIssues := "No"
		if len(rec.Issues) > 0 {
			hasIssues = "Yes"
		}
		row := []string{
			rec.Filename,
			rec.Path,
			rec.Metadata.ArtistOrEmpty(),
			rec.Metadata.TitleOrEmpty(),
			stringOrEmpty(rec.Metadata.Album),
			intOrEmpty(rec.Metadata.Year),
			stringOrEmpty(rec.Metadata.Genre),
			floatOrEmpty(rec.Metadata.Duration),
			strconv.FormatInt(rec.Size, 10),
			hasIssues,
			strconv.Itoa(len(rec.Issues)),
			rec.SuggestedName,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// jsonFile is the wire shape of one record in the JSON export.
type jsonFile struct {
	Filename      string       `json:"filename"`
	Path          string       `json:"path"`
	Size          int64        `json:"size"`
	IsRoot        bool         `json:"is_root"`
	Metadata      jsonMetadata `json:"metadata"`
	Issues        []jsonIssue  `json:"issues,omitempty"`
	SuggestedName string       `json:"suggested_name,omitempty"`
}

type jsonMetadata struct {
	Artist      *string  `json:"artist"`
	Title       *string  `json:"title"`
	Album       *string  `json:"album"`
	AlbumArtist *string  `json:"album_artist,omitempty"`
	Year        *int     `json:"year"`
	Genre       *string  `json:"genre"`
	Duration    *float64 `json:"duration"`
	TrackNumber *int     `json:"track_number,omitempty"`
}

type jsonIssue struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

type jsonLibrary struct {
	Generated  time.Time  `json:"generated"`
	TotalFiles int        `json:"total_files"`
	Files      []jsonFile `json:"files"`
}

func (e *Exporter) libraryJSON(w io.Writer, records []model.FileRecord) error {
	doc := jsonLibrary{
		Generated:  e.clock.Now(),
		TotalFiles: len(records),
		Files:      make([]jsonFile, 0, len(records)),
	}

	for _, rec := range records {
		jf := jsonFile{
			Filename: rec.Filename,
			Path:     rec.Path,
			Size:     rec.Size,
			IsRoot:   rec.IsRoot,
			Metadata: jsonMetadata{
				Artist:      rec.Metadata.Artist,
				Title:       rec.Metadata.Title,
				Album:       rec.Metadata.Album,
				AlbumArtist: rec.Metadata.AlbumArtist,
				Year:        rec.Metadata.Year,
				Genre:       rec.Metadata.Genre,
				Duration:    rec.Metadata.Duration,
				TrackNumber: rec.Metadata.TrackNumber,
			},
			SuggestedName: rec.SuggestedName,
		}
		for _, issue := range rec.Issues {
			jf.Issues = append(jf.Issues, jsonIssue{
				Type:        string(issue.Type),
				Severity:    string(issue.Severity),
				Description: issue.Description,
			})
		}
		doc.Files = append(doc.Files, jf)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// IssuesReport writes a text report restricted to records that have at
// least one naming issue, with a per-type summary up front.
func (e *Exporter) IssuesReport(w io.Writer, records []model.FileRecord) error {
	var flagged []model.FileRecord
	counts := make(map[model.IssueType]int)
	var order []model.IssueType

	for _, rec := range records {
		if len(rec.Issues) == 0 {
			continue
		}
		flagged = append(flagged, rec)
		for _, issue := range rec.Issues {
			if counts[issue.Type] == 0 {
				order = append(order, issue.Type)
			}
			counts[issue.Type]++
		}
	}

	fmt.Fprintf(w, "%s\nMUSIC LIBRARY - ISSUES REPORT\n", rule)
	fmt.Fprintf(w, "Generated: %s\n", e.clock.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Total Files: %d\n", len(records))
	fmt.Fprintf(w, "Files with Issues: %d\n%s\n\n", len(flagged), rule)

	fmt.Fprintf(w, "ISSUES SUMMARY:\n%s\n", thinRule)
	for _, issueType := range order {
		fmt.Fprintf(w, "%s: %d files\n", issueType, counts[issueType])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "DETAILED ISSUES:\n%s\n", thinRule)
	for i, rec := range flagged {
		fmt.Fprintf(w, "%d. %s\n", i+1, rec.Filename)
		fmt.Fprintf(w, "   Path: %s\n", rec.Path)
		fmt.Fprintf(w, "   Issues:\n")
		for _, issue := range rec.Issues {
			fmt.Fprintf(w, "     - [%s] %s\n", severityUpper(issue.Severity), issue.Description)
		}
		if rec.SuggestedName != "" && rec.SuggestedName != rec.Filename {
			fmt.Fprintf(w, "   Suggested fix: %s\n", rec.SuggestedName)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func severityUpper(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return "HIGH"
	case model.SeverityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func stringOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intOrEmpty(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatOrEmpty(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
