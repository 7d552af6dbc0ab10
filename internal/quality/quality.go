// Package quality estimates audio quality from file size and tagged
// duration. No audio frames are decoded: the estimate is byte-rate math,
// which is exact for constant-bitrate MP3s and a fair average otherwise.
package quality

import "tunetidy/internal/model"

// Rating buckets an estimated bitrate.
type Rating string

const (
	RatingExcellent  Rating = "excellent"
	RatingGood       Rating = "good"
	RatingAcceptable Rating = "acceptable"
	RatingLow        Rating = "low"
	RatingVeryLow    Rating = "very_low"
	RatingUnknown    Rating = "unknown"
)

// Bitrate thresholds in kbps.
const (
	thresholdExcellent  = 320
	thresholdGood       = 192
	thresholdAcceptable = 128
	thresholdLow        = 96
)

// Report is the quality estimate for one file.
type Report struct {
	BitrateKbps  float64
	Rating       Rating
	Score        int // 0 (unknown) to 5 (excellent)
	NeedsUpgrade bool
}

// Analyze estimates a record's quality. Records without a tagged duration
// rate as unknown; the estimate needs both size and duration.
func Analyze(rec model.FileRecord) Report {
	if rec.Metadata.Duration == nil || *rec.Metadata.Duration <= 0 || rec.Size <= 0 {
		return Report{Rating: RatingUnknown}
	}

	kbps := float64(rec.Size) * 8 / *rec.Metadata.Duration / 1000

	report := Report{BitrateKbps: kbps}
	switch {
	case kbps >= thresholdExcellent:
		report.Rating, report.Score = RatingExcellent, 5
	case kbps >= thresholdGood:
		report.Rating, report.Score = RatingGood, 4
	case kbps >= thresholdAcceptable:
		report.Rating, report.Score = RatingAcceptable, 3
	case kbps >= thresholdLow:
		report.Rating, report.Score = RatingLow, 2
	default:
		report.Rating, report.Score = RatingVeryLow, 1
	}
	report.NeedsUpgrade = kbps < thresholdAcceptable

	return report
}

// Assessment pairs a record with its quality estimate.
type Assessment struct {
	Record model.FileRecord
	Report Report
}

// AnalyzeAll estimates every record's quality, preserving input order.
func AnalyzeAll(records []model.FileRecord) []Assessment {
	out := make([]Assessment, 0, len(records))
	for _, rec := range records {
		out = append(out, Assessment{Record: rec, Report: Analyze(rec)})
	}
	return out
}

// FindLowQuality returns the records whose estimated bitrate falls below
// thresholdKbps. Records rating unknown are excluded: absence of evidence
// is not low quality.
func FindLowQuality(records []model.FileRecord, thresholdKbps float64) []model.FileRecord {
	var out []model.FileRecord
	for _, rec := range records {
		report := Analyze(rec)
		if report.Rating == RatingUnknown {
			continue
		}
		if report.BitrateKbps < thresholdKbps {
			out = append(out, rec)
		}
	}
	return out
}
