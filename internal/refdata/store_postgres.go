package refdata

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/truckline/bdm-console/internal/db"
	"github.com/truckline/bdm-console/internal/model"
)

// PostgresStore loads dealership and BDM reference data with pgx.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ListDealerships returns all dealerships ordered by name.
func (s *PostgresStore) ListDealerships(ctx context.Context) ([]model.Dealership, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT dealer_id, dealership, COALESCE(dealer_group, ''), bdm_id, state, region
		FROM dealerships ORDER BY dealership`)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: list dealerships")
	}
	defer rows.Close()

	var out []model.Dealership
	for rows.Next() {
		var d model.Dealership
		if err := rows.Scan(&d.DealerID, &d.Dealership, &d.DealerGroup, &d.BDMID, &d.State, &d.Region); err != nil {
			return nil, eris.Wrap(err, "refdata: scan dealership")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListBDMs returns all BDMs ordered by full name.
func (s *PostgresStore) ListBDMs(ctx context.Context) ([]model.BDM, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT bdm_id, full_name, email, phone, is_manager
		FROM bdms ORDER BY full_name`)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: list bdms")
	}
	defer rows.Close()

	var out []model.BDM
	for rows.Next() {
		var b model.BDM
		if err := rows.Scan(&b.BDMID, &b.FullName, &b.Email, &b.Phone, &b.IsManager); err != nil {
			return nil, eris.Wrap(err, "refdata: scan bdm")
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpsertDealership inserts or updates a dealership row.
func (s *PostgresStore) UpsertDealership(ctx context.Context, d model.Dealership) error {
	var group any
	if d.DealerGroup != "" {
		group = d.DealerGroup
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO dealerships (dealer_id, dealership, dealer_group, bdm_id, state, region)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (dealer_id) DO UPDATE SET
			dealership=EXCLUDED.dealership, dealer_group=EXCLUDED.dealer_group,
			bdm_id=EXCLUDED.bdm_id, state=EXCLUDED.state, region=EXCLUDED.region`,
		d.DealerID, d.Dealership, group, d.BDMID, d.State, d.Region,
	)
	if err != nil {
		return eris.Wrapf(err, "refdata: upsert dealership %s", d.DealerID)
	}
	return nil
}

// UpsertBDM inserts or updates a BDM row.
func (s *PostgresStore) UpsertBDM(ctx context.Context, b model.BDM) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO bdms (bdm_id, full_name, email, phone, is_manager)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (bdm_id) DO UPDATE SET
			full_name=EXCLUDED.full_name, email=EXCLUDED.email,
			phone=EXCLUDED.phone, is_manager=EXCLUDED.is_manager`,
		b.BDMID, b.FullName, b.Email, b.Phone, b.IsManager,
	)
	if err != nil {
		return eris.Wrapf(err, "refdata: upsert bdm %s", b.BDMID)
	}
	return nil
}
