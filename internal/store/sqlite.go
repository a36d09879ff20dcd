package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/truckline/bdm-console/internal/model"
	"github.com/truckline/bdm-console/internal/scorecard"
)

// SQLiteStore implements Store using modernc.org/sqlite. Used for local
// single-user setups; components and tags are stored as JSON text.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS qualification_scorecards (
	id                  TEXT PRIMARY KEY,
	version             INTEGER NOT NULL,
	account_manager     TEXT NOT NULL DEFAULT '',
	customer_name       TEXT NOT NULL,
	opportunity_name    TEXT NOT NULL,
	expected_order_date TEXT NOT NULL DEFAULT '',
	review_date         TEXT NOT NULL DEFAULT '',
	archived            INTEGER NOT NULL DEFAULT 0,
	pinned              INTEGER NOT NULL DEFAULT 0,
	tags                TEXT NOT NULL DEFAULT '[]',
	funds               TEXT NOT NULL,
	authority           TEXT NOT NULL,
	interest            TEXT NOT NULL,
	need                TEXT NOT NULL,
	timing              TEXT NOT NULL,
	created_at          DATETIME NOT NULL,
	updated_at          DATETIME NOT NULL,
	UNIQUE (opportunity_name, customer_name, version)
);

CREATE TABLE IF NOT EXISTS qualification_frameworks (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	active        INTEGER NOT NULL DEFAULT 0,
	display_order INTEGER NOT NULL DEFAULT 0,
	structure     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scorecards_opportunity
	ON qualification_scorecards(opportunity_name, customer_name);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const sqliteScorecardColumns = `id, version, account_manager, customer_name, opportunity_name,
	expected_order_date, review_date, archived, pinned, tags,
	funds, authority, interest, need, timing, created_at, updated_at`

func (s *SQLiteStore) CreateScorecard(ctx context.Context, sc *model.Scorecard) error {
	if sc.ID == "" {
		sc.ID = uuid.New().String()
	}
	if sc.Version == 0 {
		sc.Version = 1
	}
	now := time.Now().UTC()
	sc.CreatedAt = now
	sc.UpdatedAt = now

	args, err := sqliteScorecardArgs(sc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO qualification_scorecards (`+sqliteScorecardColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert scorecard")
	}
	return nil
}

func (s *SQLiteStore) UpdateScorecard(ctx context.Context, sc *model.Scorecard) error {
	sc.UpdatedAt = time.Now().UTC()
	args, err := sqliteScorecardArgs(sc)
	if err != nil {
		return err
	}
	// args order: id first in insert; rearrange for update (id last).
	res, err := s.db.ExecContext(ctx, `
		UPDATE qualification_scorecards SET
			account_manager=?, customer_name=?, opportunity_name=?,
			expected_order_date=?, review_date=?, archived=?, pinned=?, tags=?,
			funds=?, authority=?, interest=?, need=?, timing=?, updated_at=?
		WHERE id=?`,
		args[2], args[3], args[4], args[5], args[6], args[7], args[8], args[9],
		args[10], args[11], args[12], args[13], args[14], args[16], args[0],
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update scorecard %s", sc.ID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: scorecard not found: %s", sc.ID)
	}
	return nil
}

func (s *SQLiteStore) GetScorecard(ctx context.Context, id string) (*model.Scorecard, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteScorecardColumns+` FROM qualification_scorecards WHERE id=?`, id)
	sc, err := scanSQLiteScorecard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return sc, err
}

func (s *SQLiteStore) ListScorecards(ctx context.Context, filter ScorecardFilter) ([]model.Scorecard, error) {
	query := `
		SELECT ` + sqliteScorecardColumns + ` FROM qualification_scorecards q
		WHERE version = (
			SELECT MAX(version) FROM qualification_scorecards
			WHERE opportunity_name = q.opportunity_name AND customer_name = q.customer_name
		)`
	var args []any

	if filter.AccountManager != "" {
		query += ` AND account_manager = ?`
		args = append(args, filter.AccountManager)
	}
	if filter.CustomerName != "" {
		query += ` AND customer_name = ?`
		args = append(args, filter.CustomerName)
	}
	if filter.Archived != nil {
		query += ` AND archived = ?`
		args = append(args, *filter.Archived)
	}
	if filter.Pinned != nil {
		query += ` AND pinned = ?`
		args = append(args, *filter.Pinned)
	}
	query += ` ORDER BY pinned DESC, updated_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	return s.queryScorecards(ctx, query, args...)
}

func (s *SQLiteStore) ListVersions(ctx context.Context, key model.OpportunityKey) ([]model.Scorecard, error) {
	return s.queryScorecards(ctx, `
		SELECT `+sqliteScorecardColumns+` FROM qualification_scorecards
		WHERE opportunity_name = ? AND customer_name = ?
		ORDER BY version`, key.OpportunityName, key.CustomerName)
}

func (s *SQLiteStore) LatestVersion(ctx context.Context, key model.OpportunityKey) (*model.Scorecard, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+sqliteScorecardColumns+` FROM qualification_scorecards
		WHERE opportunity_name = ? AND customer_name = ?
		ORDER BY version DESC LIMIT 1`, key.OpportunityName, key.CustomerName)
	sc, err := scanSQLiteScorecard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return sc, err
}

func (s *SQLiteStore) CreateNextVersion(ctx context.Context, current *model.Scorecard) (*model.Scorecard, error) {
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

	args, err := sqliteScorecardArgs(next)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO qualification_scorecards (`+sqliteScorecardColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert next version")
	}
	return next, nil
}

func (s *SQLiteStore) ListFrameworks(ctx context.Context, activeOnly bool) ([]model.QualificationFramework, error) {
	query := `SELECT id, name, description, active, display_order, structure FROM qualification_frameworks`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY display_order, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list frameworks")
	}
	defer rows.Close()

	var out []model.QualificationFramework
	for rows.Next() {
		var f model.QualificationFramework
		var structJSON string
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Active, &f.DisplayOrder, &structJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan framework")
		}
		if err := json.Unmarshal([]byte(structJSON), &f.Structure); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal framework structure")
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetFramework(ctx context.Context, id string) (*model.QualificationFramework, error) {
	var f model.QualificationFramework
	var structJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, active, display_order, structure FROM qualification_frameworks WHERE id=?`, id).
		Scan(&f.ID, &f.Name, &f.Description, &f.Active, &f.DisplayOrder, &structJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get framework %s", id)
	}
	if err := json.Unmarshal([]byte(structJSON), &f.Structure); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal framework structure")
	}
	return &f, nil
}

func (s *SQLiteStore) UpsertFramework(ctx context.Context, f *model.QualificationFramework) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	structJSON, err := json.Marshal(f.Structure)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal framework structure")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO qualification_frameworks (id, name, description, active, display_order, structure)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name=excluded.name, description=excluded.description, active=excluded.active,
			display_order=excluded.display_order, structure=excluded.structure`,
		f.ID, f.Name, f.Description, f.Active, f.DisplayOrder, string(structJSON),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: upsert framework %s", f.Name)
	}
	return nil
}

// helpers

func sqliteScorecardArgs(sc *model.Scorecard) ([]any, error) {
	tags := sc.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal tags")
	}
	comps := make([]string, 0, 5)
	for _, cat := range model.Categories {
		b, err := json.Marshal(sc.Component(cat))
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: marshal %s", cat)
		}
		comps = append(comps, string(b))
	}
	return []any{
		sc.ID, sc.Version, sc.AccountManager, sc.CustomerName, sc.OpportunityName,
		sc.ExpectedOrderDate, sc.ReviewDate, sc.Archived, sc.Pinned, string(tagsJSON),
		comps[0], comps[1], comps[2], comps[3], comps[4],
		sc.CreatedAt, sc.UpdatedAt,
	}, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSQLiteScorecard(row scannable) (*model.Scorecard, error) {
	var sc model.Scorecard
	var tagsJSON string
	comps := make([]string, 5)

	err := row.Scan(
		&sc.ID, &sc.Version, &sc.AccountManager, &sc.CustomerName, &sc.OpportunityName,
		&sc.ExpectedOrderDate, &sc.ReviewDate, &sc.Archived, &sc.Pinned, &tagsJSON,
		&comps[0], &comps[1], &comps[2], &comps[3], &comps[4],
		&sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tagsJSON), &sc.Tags); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal tags")
	}
	for i, cat := range model.Categories {
		var comp model.FAINTComponent
		if err := json.Unmarshal([]byte(comps[i]), &comp); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal %s", cat)
		}
		sc.SetComponent(cat, comp)
	}
	return &sc, nil
}

func (s *SQLiteStore) queryScorecards(ctx context.Context, query string, args ...any) ([]model.Scorecard, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query scorecards")
	}
	defer rows.Close()

	var cards []model.Scorecard
	for rows.Next() {
		sc, err := scanSQLiteScorecard(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan scorecard")
		}
		cards = append(cards, *sc)
	}
	return cards, rows.Err()
}
