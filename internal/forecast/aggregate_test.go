package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testRows = []Row{
	{DealerID: "d1", Year: 2026, Week: 9, Metrics: map[string]float64{
		"MBT Quotes Issued": 4, "FTL Orders Received": 1, "Conquest Meetings": 2,
	}},
	{DealerID: "d2", Year: 2026, Week: 9, Metrics: map[string]float64{
		"MBT Quotes Issued": 3, "Customer Meetings": 5,
	}},
	{DealerID: "d3", Year: 2026, Week: 9, Metrics: map[string]float64{
		"MBT Quotes Issued": 10,
	}},
}

func TestSum(t *testing.T) {
	t.Parallel()

	totals := Sum(testRows, []string{"d1", "d2"}, []string{"MBT Quotes Issued", "FTL Orders Received", "Never Reported"})
	assert.InDelta(t, 7, totals["MBT Quotes Issued"], 0.0001)
	assert.InDelta(t, 1, totals["FTL Orders Received"], 0.0001)
	// Missing fields count as zero, not an error.
	assert.InDelta(t, 0, totals["Never Reported"], 0.0001)
}

func TestSumExcludesOtherDealers(t *testing.T) {
	t.Parallel()

	totals := Sum(testRows, []string{"d3"}, []string{"MBT Quotes Issued"})
	assert.InDelta(t, 10, totals["MBT Quotes Issued"], 0.0001)
}

func TestSumEmptyDealerSet(t *testing.T) {
	t.Parallel()

	totals := Sum(testRows, nil, []string{"MBT Quotes Issued"})
	assert.InDelta(t, 0, totals["MBT Quotes Issued"], 0.0001)
}

func TestComposite(t *testing.T) {
	t.Parallel()

	totals := Sum(testRows, []string{"d1", "d2", "d3"}, []string{"Conquest Meetings", "Customer Meetings"})
	tiles := Composite(totals, []CompositeTile{
		{Name: "Total Meetings", Fields: []string{"Conquest Meetings", "Customer Meetings"}},
	})
	assert.InDelta(t, 7, tiles["Total Meetings"], 0.0001)
}

func TestMonthlyTotals(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{DealerID: "d1", Year: 2026, Month: 1, Metrics: map[string]float64{"Orders": 10}},
		{DealerID: "d2", Year: 2026, Month: 1, Metrics: map[string]float64{"Orders": 2}},
		{DealerID: "d1", Year: 2026, Month: 2, Metrics: map[string]float64{"Orders": 5}},
		{DealerID: "d9", Year: 2026, Month: 2, Metrics: map[string]float64{"Orders": 99}},
	}
	got := MonthlyTotals(rows, []string{"d1", "d2"}, "Orders")
	assert.InDelta(t, 12, got[0], 0.0001)
	assert.InDelta(t, 5, got[1], 0.0001)
	assert.InDelta(t, 0, got[2], 0.0001)
}
