package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truckline/bdm-console/internal/model"
)

func fill(comp model.FAINTComponent, state model.QuestionState) {
	for i := range comp {
		comp[i].State = state
	}
}

func TestScoreCountsSumToForty(t *testing.T) {
	t.Parallel()

	s := model.NewScorecard("am", "cust", "opp")
	fill(s.Funds, model.StatePositive)
	fill(s.Authority, model.StateNegative)
	s.Interest[0].State = model.StateUnknown
	s.Interest[1].State = model.StatePositive

	sum := Score(s)
	total := 0
	for _, cc := range sum.Categories {
		total += cc.Positive + cc.Negative + cc.Unknown + cc.Blank
	}
	assert.Equal(t, 40, total)
}

func TestScoreAllFundsPositive(t *testing.T) {
	t.Parallel()

	// All 8 Funds questions positive, everything else blank.
	s := model.NewScorecard("am", "cust", "opp")
	fill(s.Funds, model.StatePositive)

	sum := Score(s)
	require.Len(t, sum.Categories, 5)
	assert.Equal(t, model.CategoryFunds, sum.Categories[0].Category)
	assert.Equal(t, 8, sum.Categories[0].Positive)
	assert.Equal(t, 8, sum.Positives)
	assert.Equal(t, 0, sum.Negatives)
	assert.InDelta(t, 20.0, sum.Confidence, 0.0001)
	assert.Equal(t, TierLow, sum.Tier)
}

func TestConfidencePercent(t *testing.T) {
	t.Parallel()

	t.Run("bounds", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0, ConfidencePercent(0, 0), 0.0001)
		assert.InDelta(t, 100, ConfidencePercent(40, 0), 0.0001)
	})

	t.Run("negatives cancel half a positive", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 17.5, ConfidencePercent(8, 2), 0.0001)
	})

	t.Run("clamped at zero", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0, ConfidencePercent(2, 20), 0.0001)
		assert.InDelta(t, 0, ConfidencePercent(0, 40), 0.0001)
	})

	t.Run("monotone in positives and negatives", func(t *testing.T) {
		t.Parallel()
		for n := 0; n <= 40; n++ {
			prev := -1.0
			for p := 0; p <= 40; p++ {
				pct := ConfidencePercent(p, n)
				assert.GreaterOrEqual(t, pct, prev)
				assert.GreaterOrEqual(t, pct, 0.0)
				assert.LessOrEqual(t, pct, 100.0)
				prev = pct
			}
		}
		for p := 0; p <= 40; p++ {
			prev := 101.0
			for n := 0; n <= 40; n++ {
				pct := ConfidencePercent(p, n)
				assert.LessOrEqual(t, pct, prev)
				prev = pct
			}
		}
	})
}

func TestConfidenceTier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TierHigh, ConfidenceTier(75))
	assert.Equal(t, TierHigh, ConfidenceTier(100))
	assert.Equal(t, TierGood, ConfidenceTier(74.9))
	assert.Equal(t, TierGood, ConfidenceTier(50))
	assert.Equal(t, TierFair, ConfidenceTier(49.9))
	assert.Equal(t, TierFair, ConfidenceTier(30))
	assert.Equal(t, TierLow, ConfidenceTier(29.9))
	assert.Equal(t, TierLow, ConfidenceTier(0))
}

func TestRawScoreTier(t *testing.T) {
	t.Parallel()

	// Raw-count bands differ from the percentage bands and must stay separate.
	assert.Equal(t, TierHigh, RawScoreTier(30))
	assert.Equal(t, TierHigh, RawScoreTier(40))
	assert.Equal(t, TierGood, RawScoreTier(29))
	assert.Equal(t, TierGood, RawScoreTier(15))
	assert.Equal(t, TierLow, RawScoreTier(14))
	assert.Equal(t, TierLow, RawScoreTier(0))
}
