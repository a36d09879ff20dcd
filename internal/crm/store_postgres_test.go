package crm

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anyArgs builds n wildcard matchers; pgxmock requires expectations to
// declare the same number of arguments as the actual call.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestCreateCompany(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO companies").
		WithArgs(anyArgs(11)...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), now, now))

	st := NewPostgresStore(mock)
	c := &Company{Name: "Hauler Logistics", City: "Brisbane", State: "QLD", BDMID: "bdm-1"}
	require.NoError(t, st.CreateCompany(context.Background(), c))
	assert.Equal(t, int64(7), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCompanyNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM companies WHERE id=").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	st := NewPostgresStore(mock)
	c, err := st.GetCompany(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCompaniesByBDM(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("FROM companies WHERE bdm_id=").
		WithArgs("bdm-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "abn", "industry", "phone", "email",
			"street", "city", "state", "zip_code", "bdm_id", "notes",
			"created_at", "updated_at",
		}).AddRow(int64(1), "Hauler Logistics", "", "Freight", "", "",
			"", "Brisbane", "QLD", "", "bdm-1", "", now, now))

	st := NewPostgresStore(mock)
	out, err := st.ListCompanies(context.Background(), "bdm-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Hauler Logistics", out[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCompanyNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE companies SET").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	st := NewPostgresStore(mock)
	err = st.UpdateCompany(context.Background(), &Company{ID: 404, Name: "Ghost"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertStakeholderInsertAndUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	st := NewPostgresStore(mock)

	mock.ExpectQuery("INSERT INTO stakeholders").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(3), time.Now()))
	sh := &Stakeholder{CompanyID: 1, FullName: "Pat Reyes", IsPrimary: true}
	require.NoError(t, st.UpsertStakeholder(context.Background(), sh))
	assert.Equal(t, int64(3), sh.ID)

	mock.ExpectExec("UPDATE stakeholders SET").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	sh.Title = "Fleet Manager"
	require.NoError(t, st.UpsertStakeholder(context.Background(), sh))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFleetItem(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM fleet_items").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	st := NewPostgresStore(mock)
	require.NoError(t, st.DeleteFleetItem(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
