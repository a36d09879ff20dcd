package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeriesQuarters(t *testing.T) {
	t.Parallel()

	// Jan:10, Feb:5, rest zero; current month is Feb of the same year.
	monthly := [12]float64{10, 5}
	now := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)

	pts := BuildSeries(monthly, ViewQuarters, 2026, now)
	require.Len(t, pts, 4)
	assert.Equal(t, "Q1", pts[0].Label)
	require.NotNil(t, pts[0].Value)
	assert.InDelta(t, 15, *pts[0].Value, 0.0001)
	for _, p := range pts[1:] {
		require.NotNil(t, p.Value)
		assert.InDelta(t, 0, *p.Value, 0.0001)
	}
}

func TestBuildSeriesMonthsHidesEmptyCurrentAndFuture(t *testing.T) {
	t.Parallel()

	monthly := [12]float64{10, 5}
	now := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)

	pts := BuildSeries(monthly, ViewMonths, 2026, now)
	require.Len(t, pts, 12)

	require.NotNil(t, pts[0].Value)
	assert.InDelta(t, 10, *pts[0].Value, 0.0001)
	// Feb is current but has data, so it charts.
	require.NotNil(t, pts[1].Value)
	assert.InDelta(t, 5, *pts[1].Value, 0.0001)
	// Mar onward are future with no data: no-value, not zero.
	for _, p := range pts[2:] {
		assert.Nil(t, p.Value, p.Label)
	}
}

func TestBuildSeriesMonthsPastZeroStaysZero(t *testing.T) {
	t.Parallel()

	// A zero in a past month is a real "happened with zero result".
	monthly := [12]float64{0, 5}
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	pts := BuildSeries(monthly, ViewMonths, 2026, now)
	require.NotNil(t, pts[0].Value)
	assert.InDelta(t, 0, *pts[0].Value, 0.0001)
}

func TestBuildSeriesPriorYearShowsAllMonths(t *testing.T) {
	t.Parallel()

	var monthly [12]float64
	now := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)

	pts := BuildSeries(monthly, ViewMonths, 2025, now)
	for _, p := range pts {
		require.NotNil(t, p.Value, p.Label)
	}
}

func TestBuildSeriesBothInterleavesQuarters(t *testing.T) {
	t.Parallel()

	monthly := [12]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	now := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)

	pts := BuildSeries(monthly, ViewBoth, 2026, now)
	require.Len(t, pts, 16)

	assert.Equal(t, "Mar", pts[2].Label)
	assert.Equal(t, "Q1", pts[3].Label)
	require.NotNil(t, pts[3].Value)
	assert.InDelta(t, 6, *pts[3].Value, 0.0001)

	assert.Equal(t, "Dec", pts[14].Label)
	assert.Equal(t, "Q4", pts[15].Label)
	require.NotNil(t, pts[15].Value)
	assert.InDelta(t, 33, *pts[15].Value, 0.0001)
}
