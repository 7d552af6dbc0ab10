// Package naming checks filenames against the library naming standard
// "{Artist} - {Title}.mp3" and derives canonical names from tags.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"tunetidy/internal/model"
)

// standardPattern parses "<artist> - <title>.mp3". The left side is
// non-greedy so the split happens at the first " - " occurrence; titles
// containing the separator are ambiguous by construction and stay that way.
var standardPattern = regexp.MustCompile(`(?i)^(.+?) - (.+)\.mp3$`)

// invalidChars are characters that must not appear in filenames.
var invalidChars = regexp.MustCompile(`[/\\?%*:|"<>]`)

// TitleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Sanitize removes invalid filename characters, collapses whitespace runs
// to a single space and trims.
func Sanitize(s string) string {
	s = invalidChars.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// CanonicalName builds the standard filename for an artist/title pair.
// It is total: any non-empty pair yields a usable name.
func CanonicalName(artist, title string) string {
	return fmt.Sprintf("%s - %s.mp3", Sanitize(TitleCase(artist)), Sanitize(TitleCase(title)))
}

// ParseFilename recovers an artist/title pair from a standard-form
// filename. ok is false when the name does not match the pattern.
func ParseFilename(filename string) (artist, title string, ok bool) {
	m := standardPattern.FindStringSubmatch(filename)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// Analyze reports every naming issue that applies to the file, in a fixed
// evaluation order so output is stable across runs.
func Analyze(filename string, md model.Metadata) []model.NamingIssue {
	var issues []model.NamingIssue

	if !md.HasArtist() {
		issues = append(issues, model.NamingIssue{
			Type:        model.IssueNoArtist,
			Severity:    model.SeverityHigh,
			Description: "artist is missing from the metadata",
		})
	}

	if !md.HasTitle() {
		issues = append(issues, model.NamingIssue{
			Type:        model.IssueNoTitle,
			Severity:    model.SeverityHigh,
			Description: "title is missing from the metadata",
		})
	}

	if md.HasArtist() && md.HasTitle() {
		canonical := CanonicalName(*md.Artist, *md.Title)
		if filename != canonical {
			issues = append(issues, model.NamingIssue{
				Type:        model.IssueNoStandard,
				Severity:    model.SeverityMedium,
				Description: fmt.Sprintf("name does not follow the standard %q", canonical),
			})
		}
	}

	if invalidChars.MatchString(filename) {
		issues = append(issues, model.NamingIssue{
			Type:        model.IssueInvalidChars,
			Severity:    model.SeverityHigh,
			Description: "name contains invalid characters",
		})
	}

	// Total tag absence is reported on top of the individual artist/title
	// issues: it signals a file with no tags at all.
	if !md.HasArtist() && !md.HasTitle() && !md.HasAlbum() {
		issues = append(issues, model.NamingIssue{
			Type:        model.IssueMissingMetadata,
			Severity:    model.SeverityHigh,
			Description: "file has no usable tags",
		})
	}

	return issues
}

// SuggestName returns the canonical name for the file, preferring stored
// metadata and falling back to parsing the filename itself. ok is false
// when neither source yields an artist/title pair.
func SuggestName(filename string, md model.Metadata) (string, bool) {
	if md.HasArtist() && md.HasTitle() {
		return CanonicalName(*md.Artist, *md.Title), true
	}

	artist, title, ok := ParseFilename(filename)
	if !ok {
		return "", false
	}
	return CanonicalName(artist, title), true
}

// Derive recomputes the issue list and suggested name for a record.
// Call it whenever the record's metadata changes.
func Derive(rec *model.FileRecord) {
	rec.Issues = Analyze(rec.Filename, rec.Metadata)
	rec.SuggestedName, _ = SuggestName(rec.Filename, rec.Metadata)
}
