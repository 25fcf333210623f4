package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupingNameCompanyFallback(t *testing.T) {
	rows := []PropertyRow{
		{ID: "p1", ClientName: "", Company: "Acme"},
		{ID: "p2", ClientName: "Acme", Company: ""},
		{ID: "p3", ClientName: "", Company: ""},
	}

	accounts, dropped := GroupIntoAccounts(rows)
	require.Empty(t, dropped)
	require.Len(t, accounts, 2)

	// p1 keys on its company, p2 on its client name; both resolve to "Acme".
	assert.Equal(t, "Acme", accounts[0].ID)
	assert.Equal(t, "Acme", accounts[0].Name)
	assert.Equal(t, []string{"p1", "p2"}, accounts[0].PropertyIDs)

	// p3 has neither field and becomes a singleton keyed on its own id.
	assert.Equal(t, "p3", accounts[1].ID)
	assert.Equal(t, "My Properties", accounts[1].Name)
	assert.Equal(t, []string{"p3"}, accounts[1].PropertyIDs)
}

func TestGroupingIdempotentUnderReorder(t *testing.T) {
	rows := []PropertyRow{
		{ID: "p1", ClientName: "Jo Park"},
		{ID: "p2", ClientName: "Jo Park", Company: "Park Holdings"},
		{ID: "p3", ClientName: "Sam Reed"},
		{ID: "p4"},
	}
	reversed := []PropertyRow{rows[3], rows[2], rows[1], rows[0]}

	toSets := func(accounts []Account) map[string]map[string]bool {
		sets := map[string]map[string]bool{}
		for _, a := range accounts {
			members := map[string]bool{}
			for _, id := range a.PropertyIDs {
				members[id] = true
			}
			sets[a.ID] = members
		}
		return sets
	}

	forward, _ := GroupIntoAccounts(rows)
	backward, _ := GroupIntoAccounts(reversed)

	assert.Equal(t, toSets(forward), toSets(backward),
		"membership must not depend on input row order")
}

func TestGroupingDropsUnkeyableRows(t *testing.T) {
	rows := []PropertyRow{
		{ID: "p1", ClientName: "Dana Wu"},
		{ID: "", ClientName: "", Company: ""},
	}

	accounts, dropped := GroupIntoAccounts(rows)
	require.Len(t, accounts, 1)
	require.Len(t, dropped, 1, "a row with no name, company or id cannot be grouped")
}

func TestCompanyNameWinsForDisplay(t *testing.T) {
	rows := []PropertyRow{
		{ID: "p1", ClientName: "Dana Wu"},
		{ID: "p2", ClientName: "Dana Wu", Company: "Wu Property Trust"},
	}

	accounts, _ := GroupIntoAccounts(rows)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Wu Property Trust", accounts[0].Name)
}

func TestStableIdentityKeyPrefersAccountID(t *testing.T) {
	rows := []PropertyRow{
		{ID: "p1", AccountID: "acct-9", ClientName: "Dana Wu"},
		{ID: "p2", AccountID: "acct-9", ClientName: "D. Wu"},
		{ID: "p3", ClientName: "Dana Wu"},
	}

	accounts, _ := Aggregator{Key: StableIdentityKey}.GroupIntoAccounts(rows)
	require.Len(t, accounts, 2)
	assert.Equal(t, []string{"p1", "p2"}, accounts[0].PropertyIDs,
		"rows sharing an explicit account id group together despite name drift")
	assert.Equal(t, []string{"p3"}, accounts[1].PropertyIDs)
}
