package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truckline/bdm-console/internal/model"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "console.db")
	st, err := NewSQLite(dsn)
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLiteScorecardRoundTrip(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	sc := model.NewScorecard("Dana Cole", "Hauler Logistics", "FY26 fleet refresh")
	sc.Tags = []string{"priority"}
	sc.Funds[0].State = model.StatePositive
	sc.Funds[0].Note = "budget signed off"
	require.NoError(t, st.CreateScorecard(ctx, sc))
	require.NotEmpty(t, sc.ID)

	got, err := st.GetScorecard(ctx, sc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Hauler Logistics", got.CustomerName)
	assert.Equal(t, model.StatePositive, got.Funds[0].State)
	assert.Equal(t, "budget signed off", got.Funds[0].Note)
	assert.Equal(t, []string{"priority"}, got.Tags)
}

func TestSQLiteGetScorecardMissing(t *testing.T) {
	st := newSQLiteStore(t)

	got, err := st.GetScorecard(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteUpdateScorecard(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	sc := model.NewScorecard("Dana Cole", "Hauler Logistics", "FY26 fleet refresh")
	require.NoError(t, st.CreateScorecard(ctx, sc))

	sc.Pinned = true
	sc.Need[2].State = model.StateNegative
	require.NoError(t, st.UpdateScorecard(ctx, sc))

	got, err := st.GetScorecard(ctx, sc.ID)
	require.NoError(t, err)
	assert.True(t, got.Pinned)
	assert.Equal(t, model.StateNegative, got.Need[2].State)
}

func TestSQLiteUpdateScorecardMissing(t *testing.T) {
	st := newSQLiteStore(t)

	sc := model.NewScorecard("Dana Cole", "Hauler Logistics", "FY26 fleet refresh")
	sc.ID = "ghost"
	assert.Error(t, st.UpdateScorecard(context.Background(), sc))
}

func TestSQLiteVersioning(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	sc := model.NewScorecard("Dana Cole", "Hauler Logistics", "FY26 fleet refresh")
	require.NoError(t, st.CreateScorecard(ctx, sc))

	sc.Interest[1].State = model.StatePositive
	v2, err := st.CreateNextVersion(ctx, sc)
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Version)
	assert.NotEqual(t, sc.ID, v2.ID)

	latest, err := st.LatestVersion(ctx, sc.Key())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 2, latest.Version)

	versions, err := st.ListVersions(ctx, sc.Key())
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].Version)
	assert.Equal(t, 2, versions[1].Version)
}

func TestSQLiteListScorecardsLatestOnly(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	a := model.NewScorecard("Dana Cole", "Hauler Logistics", "FY26 fleet refresh")
	require.NoError(t, st.CreateScorecard(ctx, a))
	_, err := st.CreateNextVersion(ctx, a)
	require.NoError(t, err)

	b := model.NewScorecard("Jo Marsh", "Outback Freight", "Tipper replacement")
	b.Archived = true
	require.NoError(t, st.CreateScorecard(ctx, b))

	all, err := st.ListScorecards(ctx, ScorecardFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, sc := range all {
		if sc.CustomerName == "Hauler Logistics" {
			assert.Equal(t, 2, sc.Version)
		}
	}

	archived := true
	only, err := st.ListScorecards(ctx, ScorecardFilter{Archived: &archived})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Outback Freight", only[0].CustomerName)

	mine, err := st.ListScorecards(ctx, ScorecardFilter{AccountManager: "Jo Marsh"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestSQLiteFrameworks(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	f := &model.QualificationFramework{
		Name:   "FAINT",
		Active: true,
		Structure: model.FrameworkStructure{
			Categories: []model.FrameworkCategory{
				{Name: "funds", DisplayName: "Funds", Color: "#2d6a4f", Questions: []string{"Is there budget?"}},
			},
		},
	}
	require.NoError(t, st.UpsertFramework(ctx, f))
	require.NotEmpty(t, f.ID)

	got, err := st.GetFramework(ctx, f.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "FAINT", got.Name)
	require.Len(t, got.Structure.Categories, 1)
	assert.Equal(t, "Funds", got.Structure.Categories[0].DisplayName)

	list, err := st.ListFrameworks(ctx, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
