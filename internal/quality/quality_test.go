package quality

import (
	"testing"

	"tunetidy/internal/model"
)

// rec builds a record sized to hit the given bitrate over 100 seconds.
func rec(kbps float64) model.FileRecord {
	return model.FileRecord{
		Size:     int64(kbps * 1000 / 8 * 100),
		Metadata: model.Metadata{Duration: model.Float(100)},
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name   string
		rec    model.FileRecord
		rating Rating
		score  int
	}{
		{"excellent", rec(320), RatingExcellent, 5},
		{"good", rec(192), RatingGood, 4},
		{"acceptable", rec(128), RatingAcceptable, 3},
		{"low", rec(96), RatingLow, 2},
		{"very low", rec(64), RatingVeryLow, 1},
		{"no duration", model.FileRecord{Size: 1024}, RatingUnknown, 0},
		{"no size", model.FileRecord{Metadata: model.Metadata{Duration: model.Float(100)}}, RatingUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Analyze(tt.rec)
			if report.Rating != tt.rating {
				t.Errorf("Rating = %q, want %q", report.Rating, tt.rating)
			}
			if report.Score != tt.score {
				t.Errorf("Score = %d, want %d", report.Score, tt.score)
			}
		})
	}
}

func TestAnalyze_NeedsUpgrade(t *testing.T) {
	if Analyze(rec(96)).NeedsUpgrade == false {
		t.Error("96 kbps should need upgrade")
	}
	if Analyze(rec(192)).NeedsUpgrade == true {
		t.Error("192 kbps should not need upgrade")
	}
}

func TestFindLowQuality(t *testing.T) {
	records := []model.FileRecord{rec(320), rec(96), {Size: 1024}}
	low := FindLowQuality(records, 128)
	if len(low) != 1 {
		t.Fatalf("low quality = %d records, want 1 (unknown excluded)", len(low))
	}
}
