package forecast

import (
	"fmt"
	"time"
)

// View selects how a 12-month series is bucketed for charting.
type View string

const (
	ViewMonths   View = "months"
	ViewQuarters View = "quarters"
	ViewBoth     View = "both"
)

// Point is one chart bucket. A nil Value renders as "no value", which is
// distinct from an explicit zero: months of the current year that have not
// produced data yet must not chart as 0.
type Point struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
}

var monthLabels = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// BuildSeries buckets 12 monthly values for the requested view. For the
// current calendar year, zero-valued current and future months become
// no-value points in month buckets; quarter buckets always carry sums.
func BuildSeries(monthly [12]float64, view View, year int, now time.Time) []Point {
	switch view {
	case ViewQuarters:
		return quarterPoints(monthly)
	case ViewBoth:
		var out []Point
		quarters := quarterPoints(monthly)
		for m := 0; m < 12; m++ {
			out = append(out, monthPoint(monthly, m, year, now))
			if (m+1)%3 == 0 {
				out = append(out, quarters[m/3])
			}
		}
		return out
	default:
		out := make([]Point, 0, 12)
		for m := 0; m < 12; m++ {
			out = append(out, monthPoint(monthly, m, year, now))
		}
		return out
	}
}

func monthPoint(monthly [12]float64, m, year int, now time.Time) Point {
	p := Point{Label: monthLabels[m]}
	v := monthly[m]
	if v == 0 && year == now.Year() && m+1 >= int(now.Month()) {
		return p // not yet happened, not "happened with zero result"
	}
	p.Value = &v
	return p
}

func quarterPoints(monthly [12]float64) []Point {
	out := make([]Point, 4)
	for q := 0; q < 4; q++ {
		sum := monthly[q*3] + monthly[q*3+1] + monthly[q*3+2]
		v := sum
		out[q] = Point{Label: fmt.Sprintf("Q%d", q+1), Value: &v}
	}
	return out
}
