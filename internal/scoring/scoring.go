// Package scoring computes qualification confidence from scorecard answers.
// All functions are pure; callers recompute on every answer change.
package scoring

import (
	"math"

	"github.com/truckline/bdm-console/internal/model"
)

// CategoryCount holds per-state answer counts for one category.
type CategoryCount struct {
	Category model.Category `json:"category"`
	Positive int            `json:"positive"`
	Negative int            `json:"negative"`
	Unknown  int            `json:"unknown"`
	Blank    int            `json:"blank"`
}

// Summary is the full scoring result for a scorecard.
type Summary struct {
	Categories []CategoryCount `json:"categories"`
	Positives  int             `json:"positives"`
	Negatives  int             `json:"negatives"`
	Confidence float64         `json:"confidence"`
	Tier       Tier            `json:"tier"`
}

// CountCategory tallies answer states for a single component.
func CountCategory(cat model.Category, comp model.FAINTComponent) CategoryCount {
	cc := CategoryCount{Category: cat}
	for _, q := range comp {
		switch q.State {
		case model.StatePositive:
			cc.Positive++
		case model.StateNegative:
			cc.Negative++
		case model.StateUnknown:
			cc.Unknown++
		default:
			cc.Blank++
		}
	}
	return cc
}

// Score computes per-category counts, totals, confidence percentage, and
// the percentage-band tier for a scorecard.
func Score(s *model.Scorecard) Summary {
	sum := Summary{Categories: make([]CategoryCount, 0, len(model.Categories))}
	for _, cat := range model.Categories {
		cc := CountCategory(cat, s.Component(cat))
		sum.Categories = append(sum.Categories, cc)
		sum.Positives += cc.Positive
		sum.Negatives += cc.Negative
	}
	sum.Confidence = ConfidencePercent(sum.Positives, sum.Negatives)
	sum.Tier = ConfidenceTier(sum.Confidence)
	return sum
}

// maxScore is the total question count: 8 questions across 5 categories.
const maxScore = model.QuestionsPerCategory * 5

// ConfidencePercent converts positive/negative counts into a 0-100
// confidence percentage. Each negative cancels half a positive; the result
// never goes below zero.
func ConfidencePercent(positives, negatives int) float64 {
	raw := float64(positives) - 0.5*float64(negatives)
	pct := math.Max(0, raw) / maxScore * 100
	return math.Min(100, pct)
}

// Tier is a coarse qualification band used for visual treatment.
type Tier string

const (
	TierHigh Tier = "High"
	TierGood Tier = "Good"
	TierFair Tier = "Fair"
	TierLow  Tier = "Low"
)

// ConfidenceTier bands a confidence percentage. Distinct from RawScoreTier:
// different dashboard elements use each, with different breakpoints.
func ConfidenceTier(pct float64) Tier {
	switch {
	case pct >= 75:
		return TierHigh
	case pct >= 50:
		return TierGood
	case pct >= 30:
		return TierFair
	default:
		return TierLow
	}
}

// RawScoreTier bands the absolute positive count (0-40). Kept separate from
// ConfidenceTier; the two are not interchangeable.
func RawScoreTier(positives int) Tier {
	switch {
	case positives >= 30:
		return TierHigh
	case positives >= 15:
		return TierGood
	default:
		return TierLow
	}
}
