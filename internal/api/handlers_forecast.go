package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/truckline/bdm-console/internal/forecast"
	"github.com/truckline/bdm-console/internal/refdata"
)

// defaultCompositeTiles are the summary tiles derived from other tiles.
var defaultCompositeTiles = []forecast.CompositeTile{
	{Name: "Total Meetings", Fields: []string{"Conquest Meetings", "Customer Meetings"}},
	{Name: "Total Orders", Fields: []string{"MBT Orders Received", "FTL Orders Received", "FUSO Orders Received"}},
}

type tilesResponse struct {
	Year      int                `json:"year"`
	Week      int                `json:"week,omitempty"`
	DealerIDs []string           `json:"dealer_ids"`
	Totals    map[string]float64 `json:"totals"`
	Composite map[string]float64 `json:"composite"`
}

// handleForecastTiles sums the requested metric fields over the dealer
// set implied by the filter selection.
func (s *Server) handleForecastTiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year := intQuery(q.Get("year"), time.Now().Year())
	week := intQuery(q.Get("week"), 0)

	fields := splitFields(q.Get("fields"))
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "fields query parameter is required")
		return
	}

	dealerships, _, err := s.loadRefData(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	dealerIDs := refdata.ResolveDealerIDs(dealerships, selectionFromQuery(r))

	var rows []forecast.Row
	if q.Get("source") == "actuals" {
		rows, err = s.Forecast.ListActuals(r.Context(), year)
	} else {
		rows, err = s.Forecast.ListForecast(r.Context(), year, week)
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}

	totals := forecast.Sum(rows, dealerIDs, fields)
	writeJSON(w, http.StatusOK, tilesResponse{
		Year:      year,
		Week:      week,
		DealerIDs: dealerIDs,
		Totals:    totals,
		Composite: forecast.Composite(totals, defaultCompositeTiles),
	})
}

type seriesResponse struct {
	Year   int              `json:"year"`
	Field  string           `json:"field"`
	View   forecast.View    `json:"view"`
	Points []forecast.Point `json:"points"`
}

// handleForecastSeries builds the month/quarter chart series for one
// metric from the actuals table.
func (s *Server) handleForecastSeries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year := intQuery(q.Get("year"), time.Now().Year())
	field := q.Get("field")
	if field == "" {
		writeError(w, http.StatusBadRequest, "field query parameter is required")
		return
	}
	view := forecast.View(q.Get("view"))
	if view == "" {
		view = forecast.ViewMonths
	}

	dealerships, _, err := s.loadRefData(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	dealerIDs := refdata.ResolveDealerIDs(dealerships, selectionFromQuery(r))

	rows, err := s.Forecast.ListActuals(r.Context(), year)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	monthly := forecast.MonthlyTotals(rows, dealerIDs, field)
	writeJSON(w, http.StatusOK, seriesResponse{
		Year:   year,
		Field:  field,
		View:   view,
		Points: forecast.BuildSeries(monthly, view, year, time.Now()),
	})
}

func (s *Server) handleUpsertForecast(w http.ResponseWriter, r *http.Request) {
	var row forecast.Row
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		writeError(w, http.StatusBadRequest, "invalid forecast payload")
		return
	}
	if row.DealerID == "" || row.Year == 0 || row.Week == 0 {
		writeError(w, http.StatusBadRequest, "dealer_id, year, and week are required")
		return
	}
	if err := s.Forecast.UpsertForecast(r.Context(), row); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleUpsertActuals(w http.ResponseWriter, r *http.Request) {
	var row forecast.Row
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		writeError(w, http.StatusBadRequest, "invalid actuals payload")
		return
	}
	if row.DealerID == "" || row.Year == 0 || row.Month < 1 || row.Month > 12 {
		writeError(w, http.StatusBadRequest, "dealer_id, year, and month are required")
		return
	}
	if err := s.Forecast.UpsertActuals(r.Context(), row); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func intQuery(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitFields(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
