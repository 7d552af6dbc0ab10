// Package tagio implements the engine's tag I/O on ID3v2 frames.
package tagio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"

	"tunetidy/internal/model"
)

// ID3v2TagIO reads and writes ID3v2 tags on MP3 files.
// Duration comes from the TLEN frame when present; decoding audio frames
// to measure it is outside this component.
type ID3v2TagIO struct{}

func NewID3v2TagIO() *ID3v2TagIO { return &ID3v2TagIO{} }

// ReadMetadata returns the file's current tag snapshot. A file without any
// tag reads back as a fully absent snapshot, not an error.
func (t *ID3v2TagIO) ReadMetadata(path string) (model.Metadata, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return model.Metadata{}, fmt.Errorf("opening tags of %s: %w", path, err)
	}
	defer tag.Close()

	md := model.Metadata{}
	if v := tag.Artist(); v != "" {
		md.Artist = model.String(v)
	}
	if v := tag.Title(); v != "" {
		md.Title = model.String(v)
	}
	if v := tag.Album(); v != "" {
		md.Album = model.String(v)
	}
	if v := tag.Genre(); v != "" {
		md.Genre = model.String(v)
	}
	if v := tag.GetTextFrame("TPE2").Text; v != "" {
		md.AlbumArtist = model.String(v)
	}
	if year, ok := parseYear(tag.Year()); ok {
		md.Year = model.Int(year)
	}
	if track, ok := parseTrack(tag.GetTextFrame(tag.CommonID("Track number/Position in set")).Text); ok {
		md.TrackNumber = model.Int(track)
	}
	if seconds, ok := parseLength(tag.GetTextFrame("TLEN").Text); ok {
		md.Duration = model.Float(seconds)
	}

	return md, nil
}

// WriteMetadata applies the present fields of update, leaving every other
// frame untouched.
func (t *ID3v2TagIO) WriteMetadata(path string, update model.Metadata) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("opening tags of %s: %w", path, err)
	}
	defer tag.Close()

	setFrames(tag, update)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("saving tags of %s: %w", path, err)
	}
	return nil
}

// ReplaceMetadata rewrites the tag to exactly md. Frames absent from md
// are removed, which is what restore needs to undo an auto-fix fill.
func (t *ID3v2TagIO) ReplaceMetadata(path string, md model.Metadata) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("opening tags of %s: %w", path, err)
	}
	defer tag.Close()

	tag.DeleteAllFrames()
	setFrames(tag, md)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("saving tags of %s: %w", path, err)
	}
	return nil
}

func setFrames(tag *id3v2.Tag, md model.Metadata) {
	if md.Artist != nil {
		tag.SetArtist(*md.Artist)
	}
	if md.Title != nil {
		tag.SetTitle(*md.Title)
	}
	if md.Album != nil {
		tag.SetAlbum(*md.Album)
	}
	if md.Genre != nil {
		tag.SetGenre(*md.Genre)
	}
	if md.AlbumArtist != nil {
		tag.AddTextFrame("TPE2", tag.DefaultEncoding(), *md.AlbumArtist)
	}
	if md.Year != nil {
		tag.SetYear(strconv.Itoa(*md.Year))
	}
	if md.TrackNumber != nil {
		tag.AddTextFrame(tag.CommonID("Track number/Position in set"), tag.DefaultEncoding(), strconv.Itoa(*md.TrackNumber))
	}
	if md.Duration != nil {
		tag.AddTextFrame("TLEN", tag.DefaultEncoding(), strconv.Itoa(int(*md.Duration*1000)))
	}
}

// parseYear accepts "1973" as well as longer timestamp forms like
// "1973-03-01" that ID3v2.4 allows.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 4 {
		s = s[:4]
	}
	year, err := strconv.Atoi(s)
	if err != nil || year == 0 {
		return 0, false
	}
	return year, true
}

// parseLength converts a TLEN value (track length in milliseconds) to
// seconds.
func parseLength(s string) (float64, bool) {
	millis, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || millis <= 0 {
		return 0, false
	}
	return float64(millis) / 1000, true
}

// parseTrack accepts "3" as well as the "3/12" position-of-total form.
func parseTrack(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "/"); idx >= 0 {
		s = s[:idx]
	}
	track, err := strconv.Atoi(s)
	if err != nil || track == 0 {
		return 0, false
	}
	return track, true
}
