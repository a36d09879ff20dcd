package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"

	"github.com/truckline/bdm-console/internal/db"
	"github.com/truckline/bdm-console/internal/model"
	"github.com/truckline/bdm-console/internal/scorecard"
)

// PostgresStore implements Store using pgx.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with its own connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *db.PoolConfig) (*PostgresStore, error) {
	pool, err := db.Connect(ctx, connString, poolCfg)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool; Close becomes a no-op so the
// pool's owner controls its lifetime.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate applies pending schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return db.Migrate(ctx, s.pool)
}

// Close releases the connection pool if this store owns it.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// scorecardColumns is the standard column list for scorecard queries.
const scorecardColumns = `id, version, account_manager, customer_name, opportunity_name,
	expected_order_date, review_date, archived, pinned, tags,
	funds, authority, interest, need, timing, created_at, updated_at`

func scorecardDests(sc *model.Scorecard) []any {
	return []any{
		&sc.ID, &sc.Version, &sc.AccountManager, &sc.CustomerName, &sc.OpportunityName,
		&sc.ExpectedOrderDate, &sc.ReviewDate, &sc.Archived, &sc.Pinned, &sc.Tags,
		&sc.Funds, &sc.Authority, &sc.Interest, &sc.Need, &sc.Timing,
		&sc.CreatedAt, &sc.UpdatedAt,
	}
}

// CreateScorecard inserts a new scorecard and assigns its ID and timestamps.
// The version defaults to 1 when unset.
func (s *PostgresStore) CreateScorecard(ctx context.Context, sc *model.Scorecard) error {
	if sc.ID == "" {
		sc.ID = uuid.New().String()
	}
	if sc.Version == 0 {
		sc.Version = 1
	}
	now := time.Now().UTC()
	sc.CreatedAt = now
	sc.UpdatedAt = now
	if sc.Tags == nil {
		sc.Tags = []string{}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO qualification_scorecards (`+scorecardColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		sc.ID, sc.Version, sc.AccountManager, sc.CustomerName, sc.OpportunityName,
		sc.ExpectedOrderDate, sc.ReviewDate, sc.Archived, sc.Pinned, sc.Tags,
		sc.Funds, sc.Authority, sc.Interest, sc.Need, sc.Timing, sc.CreatedAt, sc.UpdatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "store: create scorecard")
	}
	return nil
}

// UpdateScorecard saves edits to an existing record in place. Used while a
// version is being worked on; prior versions are never updated.
func (s *PostgresStore) UpdateScorecard(ctx context.Context, sc *model.Scorecard) error {
	sc.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE qualification_scorecards SET
			account_manager=$2, customer_name=$3, opportunity_name=$4,
			expected_order_date=$5, review_date=$6, archived=$7, pinned=$8, tags=$9,
			funds=$10, authority=$11, interest=$12, need=$13, timing=$14, updated_at=$15
		WHERE id=$1`,
		sc.ID, sc.AccountManager, sc.CustomerName, sc.OpportunityName,
		sc.ExpectedOrderDate, sc.ReviewDate, sc.Archived, sc.Pinned, sc.Tags,
		sc.Funds, sc.Authority, sc.Interest, sc.Need, sc.Timing, sc.UpdatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "store: update scorecard %s", sc.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("store: scorecard not found: %s", sc.ID)
	}
	return nil
}

// GetScorecard fetches a scorecard by ID. Returns nil when not found.
func (s *PostgresStore) GetScorecard(ctx context.Context, id string) (*model.Scorecard, error) {
	sc := &model.Scorecard{}
	err := s.pool.QueryRow(ctx,
		`SELECT `+scorecardColumns+` FROM qualification_scorecards WHERE id=$1`, id).
		Scan(scorecardDests(sc)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "store: get scorecard %s", id)
	}
	return sc, nil
}

// ListScorecards returns the latest version of each opportunity matching
// the filter, pinned cards first, most recently updated next.
func (s *PostgresStore) ListScorecards(ctx context.Context, filter ScorecardFilter) ([]model.Scorecard, error) {
	query := `
		SELECT DISTINCT ON (opportunity_name, customer_name) ` + scorecardColumns + `
		FROM qualification_scorecards WHERE 1=1`
	var args []any

	if filter.AccountManager != "" {
		args = append(args, filter.AccountManager)
		query += ` AND account_manager=$` + itoa(len(args))
	}
	if filter.CustomerName != "" {
		args = append(args, filter.CustomerName)
		query += ` AND customer_name=$` + itoa(len(args))
	}
	if filter.Archived != nil {
		args = append(args, *filter.Archived)
		query += ` AND archived=$` + itoa(len(args))
	}
	if filter.Pinned != nil {
		args = append(args, *filter.Pinned)
		query += ` AND pinned=$` + itoa(len(args))
	}
	query += ` ORDER BY opportunity_name, customer_name, version DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	outer := `SELECT * FROM (` + query + `) latest ORDER BY pinned DESC, updated_at DESC`
	args = append(args, limit)
	outer += ` LIMIT $` + itoa(len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		outer += ` OFFSET $` + itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, outer, args...)
	if err != nil {
		return nil, eris.Wrap(err, "store: list scorecards")
	}
	defer rows.Close()
	return scanScorecards(rows)
}

// ListVersions returns all versions for an opportunity key, oldest first.
func (s *PostgresStore) ListVersions(ctx context.Context, key model.OpportunityKey) ([]model.Scorecard, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+scorecardColumns+`
		FROM qualification_scorecards
		WHERE opportunity_name=$1 AND customer_name=$2
		ORDER BY version`, key.OpportunityName, key.CustomerName)
	if err != nil {
		return nil, eris.Wrap(err, "store: list versions")
	}
	defer rows.Close()
	return scanScorecards(rows)
}

// LatestVersion returns the max-version record for an opportunity key, or
// nil when the key has no records.
func (s *PostgresStore) LatestVersion(ctx context.Context, key model.OpportunityKey) (*model.Scorecard, error) {
	sc := &model.Scorecard{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+scorecardColumns+`
		FROM qualification_scorecards
		WHERE opportunity_name=$1 AND customer_name=$2
		ORDER BY version DESC LIMIT 1`, key.OpportunityName, key.CustomerName).
		Scan(scorecardDests(sc)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "store: latest version")
	}
	return sc, nil
}

// versionRetries bounds the read-max-then-insert loop when two clients race
// on the same opportunity key. The unique (opportunity, customer, version)
// constraint rejects the loser, which re-reads and retries.
const versionRetries = 3

// CreateNextVersion derives and persists version latest+1 for current's
// opportunity key. Prior versions are left untouched. With no prior version
// it falls back to updating current in place.
func (s *PostgresStore) CreateNextVersion(ctx context.Context, current *model.Scorecard) (*model.Scorecard, error) {
	var lastErr error
	for attempt := 0; attempt < versionRetries; attempt++ {
		latest, err := s.LatestVersion(ctx, current.Key())
		if err != nil {
			return nil, err
		}
		if latest == nil {
			if err := s.UpdateScorecard(ctx, current); err != nil {
				return nil, err
			}
			return current, nil
		}

		next := scorecard.NewVersion(latest, current, time.Now().UTC())
		next.ID = uuid.New().String()
		if next.Tags == nil {
			next.Tags = []string{}
		}

		_, err = s.pool.Exec(ctx, `
			INSERT INTO qualification_scorecards (`+scorecardColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			next.ID, next.Version, next.AccountManager, next.CustomerName, next.OpportunityName,
			next.ExpectedOrderDate, next.ReviewDate, next.Archived, next.Pinned, next.Tags,
			next.Funds, next.Authority, next.Interest, next.Need, next.Timing,
			next.CreatedAt, next.UpdatedAt,
		)
		if err == nil {
			return next, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			lastErr = err // lost the race; re-read the new latest
			continue
		}
		return nil, eris.Wrap(err, "store: insert next version")
	}
	return nil, eris.Wrap(lastErr, "store: create next version: retries exhausted")
}

// ListFrameworks returns frameworks in display order.
func (s *PostgresStore) ListFrameworks(ctx context.Context, activeOnly bool) ([]model.QualificationFramework, error) {
	query := `SELECT id, name, description, active, display_order, structure FROM qualification_frameworks`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY display_order, name`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "store: list frameworks")
	}
	defer rows.Close()

	var out []model.QualificationFramework
	for rows.Next() {
		var f model.QualificationFramework
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Active, &f.DisplayOrder, &f.Structure); err != nil {
			return nil, eris.Wrap(err, "store: scan framework")
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetFramework fetches a framework by ID. Returns nil when not found.
func (s *PostgresStore) GetFramework(ctx context.Context, id string) (*model.QualificationFramework, error) {
	f := &model.QualificationFramework{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, active, display_order, structure FROM qualification_frameworks WHERE id=$1`, id).
		Scan(&f.ID, &f.Name, &f.Description, &f.Active, &f.DisplayOrder, &f.Structure)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "store: get framework %s", id)
	}
	return f, nil
}

// UpsertFramework inserts or updates a framework definition.
func (s *PostgresStore) UpsertFramework(ctx context.Context, f *model.QualificationFramework) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO qualification_frameworks (id, name, description, active, display_order, structure)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name, description=EXCLUDED.description, active=EXCLUDED.active,
			display_order=EXCLUDED.display_order, structure=EXCLUDED.structure`,
		f.ID, f.Name, f.Description, f.Active, f.DisplayOrder, f.Structure,
	)
	if err != nil {
		return eris.Wrapf(err, "store: upsert framework %s", f.Name)
	}
	return nil
}

func scanScorecards(rows pgx.Rows) ([]model.Scorecard, error) {
	var cards []model.Scorecard
	for rows.Next() {
		var sc model.Scorecard
		if err := rows.Scan(scorecardDests(&sc)...); err != nil {
			return nil, eris.Wrap(err, "store: scan scorecard")
		}
		cards = append(cards, sc)
	}
	return cards, rows.Err()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
