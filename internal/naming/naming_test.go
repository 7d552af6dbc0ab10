package naming

import (
	"testing"

	"tunetidy/internal/model"
)

func TestTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"the beatles", "The Beatles"},
		{"WISH YOU WERE HERE", "Wish You Were Here"},
		{"pink  floyd", "Pink Floyd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name   string
		artist string
		title  string
		want   string
	}{
		{"plain", "The Beatles", "Yesterday", "The Beatles - Yesterday.mp3"},
		{"lower case input", "the beatles", "yesterday", "The Beatles - Yesterday.mp3"},
		{"invalid chars removed", "AC/DC", "Back In Black", "Acdc - Back In Black.mp3"},
		{"whitespace collapsed", "Pink   Floyd", "Wish  You Were Here", "Pink Floyd - Wish You Were Here.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalName(tt.artist, tt.title); got != tt.want {
				t.Errorf("CanonicalName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFilename(t *testing.T) {
	t.Run("standard form", func(t *testing.T) {
		artist, title, ok := ParseFilename("The Beatles - Yesterday.mp3")
		if !ok || artist != "The Beatles" || title != "Yesterday" {
			t.Fatalf("ParseFilename() = %q, %q, %v", artist, title, ok)
		}
	})

	t.Run("case insensitive extension", func(t *testing.T) {
		_, _, ok := ParseFilename("Artist - Title.MP3")
		if !ok {
			t.Fatal("expected match for upper-case extension")
		}
	})

	t.Run("splits at first separator", func(t *testing.T) {
		artist, title, ok := ParseFilename("Nine Inch Nails - The Day The World Went Away - Quiet.mp3")
		if !ok {
			t.Fatal("expected match")
		}
		if artist != "Nine Inch Nails" {
			t.Errorf("artist = %q", artist)
		}
		if title != "The Day The World Went Away - Quiet" {
			t.Errorf("title = %q", title)
		}
	})

	t.Run("no separator", func(t *testing.T) {
		if _, _, ok := ParseFilename("track1.mp3"); ok {
			t.Fatal("expected no match")
		}
	})
}

func issueTypes(issues []model.NamingIssue) []model.IssueType {
	types := make([]model.IssueType, len(issues))
	for i, issue := range issues {
		types[i] = issue.Type
	}
	return types
}

func TestAnalyze(t *testing.T) {
	t.Run("conforming file has no issues", func(t *testing.T) {
		md := model.Metadata{Artist: model.String("The Beatles"), Title: model.String("Yesterday")}
		issues := Analyze("The Beatles - Yesterday.mp3", md)
		if len(issues) != 0 {
			t.Fatalf("issues = %v, want none", issueTypes(issues))
		}
	})

	t.Run("non-standard name yields exactly no_standard", func(t *testing.T) {
		md := model.Metadata{Artist: model.String("The Beatles"), Title: model.String("Yesterday")}
		issues := Analyze("Yesterday.mp3", md)
		if len(issues) != 1 || issues[0].Type != model.IssueNoStandard {
			t.Fatalf("issues = %v, want [no_standard]", issueTypes(issues))
		}
		if issues[0].Severity != model.SeverityMedium {
			t.Errorf("severity = %q, want medium", issues[0].Severity)
		}
	})

	t.Run("untagged file reports all absence issues in order", func(t *testing.T) {
		issues := Analyze("track1.mp3", model.Metadata{})
		want := []model.IssueType{model.IssueNoArtist, model.IssueNoTitle, model.IssueMissingMetadata}
		got := issueTypes(issues)
		if len(got) != len(want) {
			t.Fatalf("issues = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("issues = %v, want %v", got, want)
			}
		}
	})

	t.Run("empty string tag counts as absent", func(t *testing.T) {
		md := model.Metadata{Artist: model.String(""), Title: model.String("Yesterday")}
		issues := Analyze("Yesterday.mp3", md)
		if len(issues) != 1 || issues[0].Type != model.IssueNoArtist {
			t.Fatalf("issues = %v, want [no_artist]", issueTypes(issues))
		}
	})

	t.Run("invalid characters flagged", func(t *testing.T) {
		md := model.Metadata{Artist: model.String("A"), Title: model.String("B")}
		issues := Analyze(`A - B?.mp3`, md)
		got := issueTypes(issues)
		if len(got) != 2 || got[0] != model.IssueNoStandard || got[1] != model.IssueInvalidChars {
			t.Fatalf("issues = %v, want [no_standard invalid_chars]", got)
		}
	})

	t.Run("album alone suppresses missing_metadata", func(t *testing.T) {
		md := model.Metadata{Album: model.String("Abbey Road")}
		for _, issue := range Analyze("track1.mp3", md) {
			if issue.Type == model.IssueMissingMetadata {
				t.Fatal("missing_metadata reported despite album tag")
			}
		}
	})
}

func TestSuggestName(t *testing.T) {
	t.Run("from metadata", func(t *testing.T) {
		md := model.Metadata{Artist: model.String("pink floyd"), Title: model.String("wish you were here")}
		got, ok := SuggestName("whatever.mp3", md)
		if !ok || got != "Pink Floyd - Wish You Were Here.mp3" {
			t.Fatalf("SuggestName() = %q, %v", got, ok)
		}
	})

	t.Run("metadata separator is not re-parsed", func(t *testing.T) {
		md := model.Metadata{Artist: model.String("Orchestral Manoeuvres"), Title: model.String("Joan Of Arc - Maid Of Orleans")}
		got, ok := SuggestName("x.mp3", md)
		if !ok || got != "Orchestral Manoeuvres - Joan Of Arc - Maid Of Orleans.mp3" {
			t.Fatalf("SuggestName() = %q, %v", got, ok)
		}
	})

	t.Run("fallback to filename parse", func(t *testing.T) {
		got, ok := SuggestName("the beatles - yesterday.mp3", model.Metadata{})
		if !ok || got != "The Beatles - Yesterday.mp3" {
			t.Fatalf("SuggestName() = %q, %v", got, ok)
		}
	})

	t.Run("no suggestion possible", func(t *testing.T) {
		if _, ok := SuggestName("track1.mp3", model.Metadata{}); ok {
			t.Fatal("expected no suggestion")
		}
	})
}
