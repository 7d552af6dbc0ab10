package dupes

import (
	"github.com/hbollon/go-edlib"

	"tunetidy/internal/model"
	"tunetidy/internal/normalize"
)

// SimilarPair is a near-match between two files that the exact-key detector
// did not group. Score is the combined Jaro-Winkler similarity in [0,1].
type SimilarPair struct {
	A     model.FileRecord
	B     model.FileRecord
	Score float32
}

// FindSimilar scans all file pairs for fuzzy artist/title matches at or
// above threshold. Pairs already sharing an exact duplicate key are
// skipped. This is advisory output only: cleanup moves are gated on exact
// key equality, never on fuzzy scores.
func FindSimilar(files []model.FileRecord, threshold float32) []SimilarPair {
	type candidate struct {
		rec    model.FileRecord
		key    string
		artist string
		title  string
	}

	var candidates []candidate
	for _, f := range files {
		if !f.Metadata.HasArtist() || !f.Metadata.HasTitle() {
			continue
		}
		key, _ := Key(f.Metadata)
		candidates = append(candidates, candidate{
			rec:    f,
			key:    key,
			artist: normalize.Fold(*f.Metadata.Artist),
			title:  normalize.Fold(*f.Metadata.Title),
		})
	}

	var pairs []SimilarPair
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			if a.key != "" && a.key == b.key {
				continue // exact duplicates are the detector's job
			}

			titleSim, err := edlib.StringsSimilarity(a.title, b.title, edlib.JaroWinkler)
			if err != nil {
				continue
			}
			artistSim, err := edlib.StringsSimilarity(a.artist, b.artist, edlib.JaroWinkler)
			if err != nil {
				continue
			}

			// Title carries more weight than artist: remasters and typos
			// show up in titles far more often than in artist tags.
			score := 0.6*titleSim + 0.4*artistSim
			if score >= threshold {
				pairs = append(pairs, SimilarPair{A: a.rec, B: b.rec, Score: score})
			}
		}
	}

	return pairs
}
