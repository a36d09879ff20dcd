// Package forecast aggregates weekly forecast and monthly actuals metrics
// for the dashboard tiles and charts.
package forecast

// Row is one dealer's metrics for a single period. Metric names match the
// dashboard tiles ("MBT Quotes Issued", "FTL Orders Received", ...).
type Row struct {
	DealerID string             `json:"dealer_id"`
	Year     int                `json:"year"`
	Month    int                `json:"month,omitempty"`
	Week     int                `json:"week,omitempty"`
	Metrics  map[string]float64 `json:"metrics"`
}

// Sum totals each named field across rows whose dealer ID is in the
// resolved set. Missing or null metric values count as zero.
func Sum(rows []Row, dealerIDs []string, fields []string) map[string]float64 {
	include := make(map[string]bool, len(dealerIDs))
	for _, id := range dealerIDs {
		include[id] = true
	}

	totals := make(map[string]float64, len(fields))
	for _, f := range fields {
		totals[f] = 0
	}
	for _, r := range rows {
		if !include[r.DealerID] {
			continue
		}
		for _, f := range fields {
			totals[f] += r.Metrics[f]
		}
	}
	return totals
}

// CompositeTile defines a tile shown as the plain sum of other aggregated
// fields, e.g. "Total Meetings" = Conquest Meetings + Customer Meetings.
type CompositeTile struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// Composite computes each composite tile from already-aggregated totals.
func Composite(totals map[string]float64, tiles []CompositeTile) map[string]float64 {
	out := make(map[string]float64, len(tiles))
	for _, t := range tiles {
		var sum float64
		for _, f := range t.Fields {
			sum += totals[f]
		}
		out[t.Name] = sum
	}
	return out
}
