package crm

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/truckline/bdm-console/internal/db"
)

const companyColumns = `id, name, abn, industry, phone, email,
	street, city, state, zip_code, COALESCE(bdm_id, ''), notes, created_at, updated_at`

func companyDests(c *Company) []any {
	return []any{
		&c.ID, &c.Name, &c.ABN, &c.Industry, &c.Phone, &c.Email,
		&c.Street, &c.City, &c.State, &c.ZipCode, &c.BDMID, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	}
}

// PostgresStore implements the CRM store over pgx.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// CreateCompany inserts a new company and sets its ID.
func (s *PostgresStore) CreateCompany(ctx context.Context, c *Company) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO companies (name, abn, industry, phone, email, street, city, state, zip_code, bdm_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)
		RETURNING id, created_at, updated_at`,
		c.Name, c.ABN, c.Industry, c.Phone, c.Email,
		c.Street, c.City, c.State, c.ZipCode, c.BDMID, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return eris.Wrap(err, "crm: create company")
	}
	return nil
}

// UpdateCompany updates an existing company record.
func (s *PostgresStore) UpdateCompany(ctx context.Context, c *Company) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE companies SET
			name=$2, abn=$3, industry=$4, phone=$5, email=$6,
			street=$7, city=$8, state=$9, zip_code=$10,
			bdm_id=NULLIF($11, ''), notes=$12, updated_at=now()
		WHERE id=$1`,
		c.ID, c.Name, c.ABN, c.Industry, c.Phone, c.Email,
		c.Street, c.City, c.State, c.ZipCode, c.BDMID, c.Notes,
	)
	if err != nil {
		return eris.Wrapf(err, "crm: update company %d", c.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("crm: company %d not found", c.ID)
	}
	return nil
}

// GetCompany fetches a company by ID. Returns nil when not found.
func (s *PostgresStore) GetCompany(ctx context.Context, id int64) (*Company, error) {
	c := &Company{}
	err := s.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id=$1`, id).
		Scan(companyDests(c)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "crm: get company %d", id)
	}
	return c, nil
}

// ListCompanies returns companies, optionally restricted to one BDM.
func (s *PostgresStore) ListCompanies(ctx context.Context, bdmID string) ([]Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`
	var args []any
	if bdmID != "" {
		query += ` WHERE bdm_id=$1`
		args = append(args, bdmID)
	}
	query += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "crm: list companies")
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(companyDests(&c)...); err != nil {
			return nil, eris.Wrap(err, "crm: scan company")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCompany removes a company; stakeholders and fleet cascade.
func (s *PostgresStore) DeleteCompany(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM companies WHERE id=$1`, id)
	if err != nil {
		return eris.Wrapf(err, "crm: delete company %d", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("crm: company %d not found", id)
	}
	return nil
}

// UpsertStakeholder inserts or updates a stakeholder by ID.
func (s *PostgresStore) UpsertStakeholder(ctx context.Context, st *Stakeholder) error {
	if st.ID == 0 {
		err := s.pool.QueryRow(ctx, `
			INSERT INTO stakeholders (company_id, full_name, title, email, phone, is_primary)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`,
			st.CompanyID, st.FullName, st.Title, st.Email, st.Phone, st.IsPrimary,
		).Scan(&st.ID, &st.CreatedAt)
		if err != nil {
			return eris.Wrap(err, "crm: insert stakeholder")
		}
		return nil
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE stakeholders SET full_name=$2, title=$3, email=$4, phone=$5, is_primary=$6
		WHERE id=$1`,
		st.ID, st.FullName, st.Title, st.Email, st.Phone, st.IsPrimary,
	)
	if err != nil {
		return eris.Wrapf(err, "crm: update stakeholder %d", st.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("crm: stakeholder %d not found", st.ID)
	}
	return nil
}

// ListStakeholders returns a company's stakeholders, primary first.
func (s *PostgresStore) ListStakeholders(ctx context.Context, companyID int64) ([]Stakeholder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, full_name, title, email, phone, is_primary, created_at
		FROM stakeholders WHERE company_id=$1
		ORDER BY is_primary DESC, full_name`, companyID)
	if err != nil {
		return nil, eris.Wrap(err, "crm: list stakeholders")
	}
	defer rows.Close()

	var out []Stakeholder
	for rows.Next() {
		var st Stakeholder
		if err := rows.Scan(&st.ID, &st.CompanyID, &st.FullName, &st.Title,
			&st.Email, &st.Phone, &st.IsPrimary, &st.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "crm: scan stakeholder")
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// DeleteStakeholder removes a stakeholder by ID.
func (s *PostgresStore) DeleteStakeholder(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM stakeholders WHERE id=$1`, id)
	if err != nil {
		return eris.Wrapf(err, "crm: delete stakeholder %d", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("crm: stakeholder %d not found", id)
	}
	return nil
}

// UpsertFleetItem inserts or updates a fleet item by ID.
func (s *PostgresStore) UpsertFleetItem(ctx context.Context, fi *FleetItem) error {
	if fi.ID == 0 {
		err := s.pool.QueryRow(ctx, `
			INSERT INTO fleet_items (company_id, make, model, body_type, quantity, year, replace_due)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at`,
			fi.CompanyID, fi.Make, fi.Model, fi.BodyType, fi.Quantity, fi.Year, fi.ReplaceDue,
		).Scan(&fi.ID, &fi.CreatedAt)
		if err != nil {
			return eris.Wrap(err, "crm: insert fleet item")
		}
		return nil
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE fleet_items SET make=$2, model=$3, body_type=$4, quantity=$5, year=$6, replace_due=$7
		WHERE id=$1`,
		fi.ID, fi.Make, fi.Model, fi.BodyType, fi.Quantity, fi.Year, fi.ReplaceDue,
	)
	if err != nil {
		return eris.Wrapf(err, "crm: update fleet item %d", fi.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("crm: fleet item %d not found", fi.ID)
	}
	return nil
}

// ListFleet returns a company's fleet items, newest model year first.
func (s *PostgresStore) ListFleet(ctx context.Context, companyID int64) ([]FleetItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, make, model, body_type, quantity, year, replace_due, created_at
		FROM fleet_items WHERE company_id=$1
		ORDER BY year DESC, make, model`, companyID)
	if err != nil {
		return nil, eris.Wrap(err, "crm: list fleet")
	}
	defer rows.Close()

	var out []FleetItem
	for rows.Next() {
		var fi FleetItem
		if err := rows.Scan(&fi.ID, &fi.CompanyID, &fi.Make, &fi.Model, &fi.BodyType,
			&fi.Quantity, &fi.Year, &fi.ReplaceDue, &fi.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "crm: scan fleet item")
		}
		out = append(out, fi)
	}
	return out, rows.Err()
}

// DeleteFleetItem removes a fleet item by ID.
func (s *PostgresStore) DeleteFleetItem(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM fleet_items WHERE id=$1`, id)
	if err != nil {
		return eris.Wrapf(err, "crm: delete fleet item %d", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("crm: fleet item %d not found", id)
	}
	return nil
}
