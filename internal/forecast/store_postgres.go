package forecast

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/truckline/bdm-console/internal/db"
)

// PostgresStore persists forecast and actuals rows with pgx. Metrics are
// stored as a JSONB map keyed by tile field name.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ListActuals returns all monthly actuals rows for a year.
func (s *PostgresStore) ListActuals(ctx context.Context, year int) ([]Row, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT dealer_id, year, month, metrics
		FROM actuals_entries WHERE year=$1 ORDER BY dealer_id, month`, year)
	if err != nil {
		return nil, eris.Wrapf(err, "forecast: list actuals %d", year)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.DealerID, &r.Year, &r.Month, &r.Metrics); err != nil {
			return nil, eris.Wrap(err, "forecast: scan actuals row")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListForecast returns forecast rows for a year, optionally narrowed to one
// week (week 0 = all weeks).
func (s *PostgresStore) ListForecast(ctx context.Context, year, week int) ([]Row, error) {
	query := `SELECT dealer_id, year, week, metrics FROM forecast_entries WHERE year=$1`
	args := []any{year}
	if week > 0 {
		query += ` AND week=$2`
		args = append(args, week)
	}
	query += ` ORDER BY dealer_id, week`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrapf(err, "forecast: list forecast %d", year)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.DealerID, &r.Year, &r.Week, &r.Metrics); err != nil {
			return nil, eris.Wrap(err, "forecast: scan forecast row")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertForecast saves one dealer-week of wizard entries, replacing any
// existing metrics for that week.
func (s *PostgresStore) UpsertForecast(ctx context.Context, r Row) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO forecast_entries (dealer_id, year, week, metrics, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (dealer_id, year, week) DO UPDATE SET
			metrics=EXCLUDED.metrics, updated_at=EXCLUDED.updated_at`,
		r.DealerID, r.Year, r.Week, r.Metrics, time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "forecast: upsert forecast %s %d/%d", r.DealerID, r.Year, r.Week)
	}
	return nil
}

// UpsertActuals saves one dealer-month of actuals.
func (s *PostgresStore) UpsertActuals(ctx context.Context, r Row) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO actuals_entries (dealer_id, year, month, metrics, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (dealer_id, year, month) DO UPDATE SET
			metrics=EXCLUDED.metrics, updated_at=EXCLUDED.updated_at`,
		r.DealerID, r.Year, r.Month, r.Metrics, time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "forecast: upsert actuals %s %d/%d", r.DealerID, r.Year, r.Month)
	}
	return nil
}

// MonthlyTotals collapses actuals rows for the given dealer set into a
// 12-slot array of sums for one metric.
func MonthlyTotals(rows []Row, dealerIDs []string, field string) [12]float64 {
	include := make(map[string]bool, len(dealerIDs))
	for _, id := range dealerIDs {
		include[id] = true
	}
	var out [12]float64
	for _, r := range rows {
		if !include[r.DealerID] || r.Month < 1 || r.Month > 12 {
			continue
		}
		out[r.Month-1] += r.Metrics[field]
	}
	return out
}
