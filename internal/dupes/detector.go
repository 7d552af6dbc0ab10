// Package dupes clusters scanned files into duplicate groups.
//
// The authoritative policy is exact equality of normalized artist::title
// keys, with the root-vs-organized asymmetry: a group only matters when the
// same track exists both loose in the root directory and curated in a
// subfolder. A fuzzy secondary matcher lives in fuzzy.go and never feeds
// the cleanup path.
package dupes

import (
	"tunetidy/internal/model"
	"tunetidy/internal/normalize"
)

// Result is the outcome of one detection run. Groups are ordered by first
// occurrence of their key in the input.
type Result struct {
	Groups          []model.DuplicateGroup
	WithoutMetadata []model.FileRecord
}

// Key builds the duplicate key for a metadata snapshot. ok is false when
// artist or title is absent or normalizes to empty, in which case the file
// can never participate in a group.
func Key(md model.Metadata) (string, bool) {
	artist := normalize.Key(md.ArtistOrEmpty())
	title := normalize.Key(md.TitleOrEmpty())
	if artist == "" || title == "" {
		return "", false
	}
	return artist + "::" + title, true
}

// Detect groups the given files by duplicate key. It never rejects input:
// files lacking a usable key accumulate in WithoutMetadata, and an empty
// input yields an empty result. Detection holds no state across calls, so
// re-running on a grown file set is always safe.
func Detect(files []model.FileRecord) Result {
	var result Result

	byKey := make(map[string][]model.FileRecord)
	var keyOrder []string

	for _, f := range files {
		key, ok := Key(f.Metadata)
		if !ok {
			result.WithoutMetadata = append(result.WithoutMetadata, f)
			continue
		}
		if _, seen := byKey[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		byKey[key] = append(byKey[key], f)
	}

	for _, key := range keyOrder {
		members := byKey[key]
		if len(members) < 2 {
			continue
		}

		group := model.DuplicateGroup{Key: key}
		for _, f := range members {
			if f.IsRoot {
				group.RootFiles = append(group.RootFiles, f)
			} else {
				group.OrganizedFiles = append(group.OrganizedFiles, f)
			}
		}

		// All-root or all-organized clusters are not duplicate signals:
		// root-only files have nothing curated to compare against and
		// organized-only files are already where they belong.
		if len(group.RootFiles) == 0 || len(group.OrganizedFiles) == 0 {
			continue
		}

		result.Groups = append(result.Groups, group)
	}

	return result
}
