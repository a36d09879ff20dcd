package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truckline/bdm-console/internal/model"
)

var testBDMs = []model.BDM{
	{BDMID: "b1", FullName: "Kerry Shaw"},
	{BDMID: "b2", FullName: "Lee Tran"},
	{BDMID: "b3", FullName: "Sam Opie", IsManager: true},
}

var testDealerships = []model.Dealership{
	{DealerID: "d1", Dealership: "City Trucks North", DealerGroup: "Metro Group", BDMID: "b1", Region: "Metro"},
	{DealerID: "d2", Dealership: "City Trucks South", DealerGroup: "Metro Group", BDMID: "b1", Region: "Metro"},
	{DealerID: "d3", Dealership: "Outback Haulage", DealerGroup: "Western Wheels", BDMID: "b2", Region: "Regional"},
	{DealerID: "d4", Dealership: "Kiwi Commercials", DealerGroup: "NZ Trucks", BDMID: "b2", Region: "NZ"},
	{DealerID: "d5", Dealership: "Indie Motors", DealerGroup: "Indie Co", BDMID: "b2", Region: "Independent"},
	{DealerID: "d6", Dealership: "Fleet Direct", BDMID: "b1", Region: "Internal"},
	{DealerID: "d7", Dealership: "Unknown Region Rigs", DealerGroup: "Mystery Group", BDMID: "b2", Region: "Offshore"},
}

func TestDealerGroupsSortedByRegionPriority(t *testing.T) {
	t.Parallel()

	groups := DealerGroups(testDealerships, testBDMs, Selection{})
	assert.Equal(t, []string{"Metro Group", "Western Wheels", "Indie Co", "NZ Trucks", "Mystery Group"}, groups)
}

func TestDealerGroupsNonManagerRestricted(t *testing.T) {
	t.Parallel()

	groups := DealerGroups(testDealerships, testBDMs, Selection{BDMID: "b1"})
	assert.Equal(t, []string{"Metro Group"}, groups)
}

func TestDealerGroupsManagerSeesAll(t *testing.T) {
	t.Parallel()

	groups := DealerGroups(testDealerships, testBDMs, Selection{BDMID: "b3"})
	assert.Len(t, groups, 5)
}

func TestDealerGroupsSkipsGrouplessDealerships(t *testing.T) {
	t.Parallel()

	for _, g := range DealerGroups(testDealerships, testBDMs, Selection{}) {
		assert.NotEmpty(t, g)
	}
}

func TestDealershipsByGroup(t *testing.T) {
	t.Parallel()

	got := Dealerships(testDealerships, testBDMs, Selection{DealerGroup: "Metro Group"})
	require.Len(t, got, 2)
	for _, d := range got {
		assert.Equal(t, "Metro Group", d.DealerGroup)
	}
}

func TestDealershipsNonManagerAndGroup(t *testing.T) {
	t.Parallel()

	got := Dealerships(testDealerships, testBDMs, Selection{BDMID: "b2", DealerGroup: "NZ Trucks"})
	require.Len(t, got, 1)
	assert.Equal(t, "d4", got[0].DealerID)

	// b1 does not own any NZ Trucks dealership.
	got = Dealerships(testDealerships, testBDMs, Selection{BDMID: "b1", DealerGroup: "NZ Trucks"})
	assert.Empty(t, got)
}

func TestSoleCandidateBDM(t *testing.T) {
	t.Parallel()

	t.Run("single owner group resolves", func(t *testing.T) {
		t.Parallel()
		b, ok := SoleCandidateBDM(testDealerships, testBDMs, Selection{DealerGroup: "Metro Group"})
		require.True(t, ok)
		assert.Equal(t, "b1", b.BDMID)
	})

	t.Run("single dealership resolves", func(t *testing.T) {
		t.Parallel()
		b, ok := SoleCandidateBDM(testDealerships, testBDMs, Selection{DealerID: "d3"})
		require.True(t, ok)
		assert.Equal(t, "b2", b.BDMID)
	})

	t.Run("no selection resolves nothing", func(t *testing.T) {
		t.Parallel()
		_, ok := SoleCandidateBDM(testDealerships, testBDMs, Selection{})
		assert.False(t, ok)
	})

	t.Run("multiple candidates resolve nothing", func(t *testing.T) {
		t.Parallel()
		mixed := append([]model.Dealership{}, testDealerships...)
		mixed = append(mixed, model.Dealership{DealerID: "d8", DealerGroup: "Metro Group", BDMID: "b2", Region: "Metro"})
		_, ok := SoleCandidateBDM(mixed, testBDMs, Selection{DealerGroup: "Metro Group"})
		assert.False(t, ok)
	})
}

func TestResolveDealerIDs(t *testing.T) {
	t.Parallel()

	t.Run("dealership wins", func(t *testing.T) {
		t.Parallel()
		ids := ResolveDealerIDs(testDealerships, Selection{DealerID: "d2", DealerGroup: "Metro Group", BDMID: "b1"})
		assert.Equal(t, []string{"d2"}, ids)
	})

	t.Run("group next", func(t *testing.T) {
		t.Parallel()
		ids := ResolveDealerIDs(testDealerships, Selection{DealerGroup: "Metro Group", BDMID: "b2"})
		assert.ElementsMatch(t, []string{"d1", "d2"}, ids)
	})

	t.Run("bdm next", func(t *testing.T) {
		t.Parallel()
		ids := ResolveDealerIDs(testDealerships, Selection{BDMID: "b1"})
		assert.ElementsMatch(t, []string{"d1", "d2", "d6"}, ids)
	})

	t.Run("no selection means all", func(t *testing.T) {
		t.Parallel()
		ids := ResolveDealerIDs(testDealerships, Selection{})
		assert.Len(t, ids, len(testDealerships))
	})
}
