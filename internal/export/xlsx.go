// Package export writes forecast summaries as XLSX workbooks for
// sharing outside the dashboard.
package export

import (
	"io"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/truckline/bdm-console/internal/forecast"
)

// ForecastSummary is one exportable aggregation: the totals for a
// filter selection plus the monthly series per metric.
type ForecastSummary struct {
	Title   string
	Year    int
	Totals  map[string]float64
	Monthly map[string][12]float64
}

// WriteForecastWorkbook writes a workbook with a totals sheet and a
// monthly sheet. One row per metric, metrics sorted by name.
func WriteForecastWorkbook(w io.Writer, sum ForecastSummary) error {
	f := xlsx.NewFile()

	totals, err := f.AddSheet("Totals")
	if err != nil {
		return eris.Wrap(err, "export: add totals sheet")
	}
	header := totals.AddRow()
	header.AddCell().SetString("Metric")
	header.AddCell().SetString(sum.Title)

	for _, name := range sortedKeys(sum.Totals) {
		row := totals.AddRow()
		row.AddCell().SetString(name)
		row.AddCell().SetFloat(sum.Totals[name])
	}

	if len(sum.Monthly) > 0 {
		monthly, err := f.AddSheet("Monthly " + strconv.Itoa(sum.Year))
		if err != nil {
			return eris.Wrap(err, "export: add monthly sheet")
		}
		head := monthly.AddRow()
		head.AddCell().SetString("Metric")
		for _, m := range []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"} {
			head.AddCell().SetString(m)
		}

		names := make([]string, 0, len(sum.Monthly))
		for name := range sum.Monthly {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			row := monthly.AddRow()
			row.AddCell().SetString(name)
			for _, v := range sum.Monthly[name] {
				row.AddCell().SetFloat(v)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

// SummaryFromRows builds a ForecastSummary from raw forecast rows.
func SummaryFromRows(title string, year int, rows []forecast.Row, dealerIDs, fields []string) ForecastSummary {
	sum := ForecastSummary{
		Title:   title,
		Year:    year,
		Totals:  forecast.Sum(rows, dealerIDs, fields),
		Monthly: make(map[string][12]float64, len(fields)),
	}
	for _, f := range fields {
		sum.Monthly[f] = forecast.MonthlyTotals(rows, dealerIDs, f)
	}
	return sum
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
