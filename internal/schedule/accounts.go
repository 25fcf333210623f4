package schedule

import "strings"

// PropertyRow is the flat, denormalized shape accounts are rebuilt from.
// The portal stores properties one row per address with the customer identity
// duplicated onto every row, so "accounts" only exist as a read-time grouping.
type PropertyRow struct {
	ID         string
	AccountID  string
	ClientName string
	Company    string
	Address    string
}

// Account is a logical customer reconstructed for one rendering pass. It is
// never persisted; ID is whatever identity key grouped the rows together.
type Account struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	PropertyIDs []string `json:"property_ids"`
}

// IdentityKeyFunc decides which rows belong to the same customer. It returns
// "" for rows that cannot be grouped at all; those are dropped and handed
// back to the caller, which should log them as a data-quality warning.
type IdentityKeyFunc func(PropertyRow) string

// DefaultIdentityKey is the historical heuristic: client name, else company,
// else the row's own property id (so every well-formed row lands in exactly
// one account, even as a singleton). It can merge two customers who share a
// name and split one who fills name vs. company inconsistently; when the data
// grows a real account id column, switch to StableIdentityKey.
func DefaultIdentityKey(row PropertyRow) string {
	if v := strings.TrimSpace(row.ClientName); v != "" {
		return v
	}
	if v := strings.TrimSpace(row.Company); v != "" {
		return v
	}
	return strings.TrimSpace(row.ID)
}

// StableIdentityKey prefers the explicit account id when a row carries one
// and only then falls back to the name heuristic.
func StableIdentityKey(row PropertyRow) string {
	if v := strings.TrimSpace(row.AccountID); v != "" {
		return v
	}
	return DefaultIdentityKey(row)
}

// Aggregator groups property rows into accounts with a pluggable key.
type Aggregator struct {
	Key IdentityKeyFunc
}

// GroupIntoAccounts groups rows by identity key, preserving first-seen key
// order and member encounter order. The second return value is the rows that
// had no usable key. Membership is independent of input order, so re-running
// on a shuffled row set yields the same accounts (display order may differ).
func (a Aggregator) GroupIntoAccounts(rows []PropertyRow) ([]Account, []PropertyRow) {
	key := a.Key
	if key == nil {
		key = DefaultIdentityKey
	}

	index := make(map[string]int, len(rows))
	accounts := []Account{}
	named := []bool{} // true once a company name has claimed the slot
	dropped := []PropertyRow{}

	for _, row := range rows {
		k := key(row)
		if k == "" {
			dropped = append(dropped, row)
			continue
		}

		i, seen := index[k]
		if !seen {
			i = len(accounts)
			index[k] = i
			accounts = append(accounts, Account{ID: k, PropertyIDs: []string{}})
			named = append(named, false)
		}
		if id := strings.TrimSpace(row.ID); id != "" {
			accounts[i].PropertyIDs = append(accounts[i].PropertyIDs, id)
		}

		// Display name: first company seen in the group wins, client name
		// fills in until one shows up.
		if !named[i] {
			if v := strings.TrimSpace(row.Company); v != "" {
				accounts[i].Name = v
				named[i] = true
			} else if accounts[i].Name == "" {
				accounts[i].Name = strings.TrimSpace(row.ClientName)
			}
		}
	}

	for i := range accounts {
		if accounts[i].Name == "" {
			accounts[i].Name = "My Properties"
		}
	}

	return accounts, dropped
}

// GroupIntoAccounts applies the default identity heuristic.
func GroupIntoAccounts(rows []PropertyRow) ([]Account, []PropertyRow) {
	return Aggregator{}.GroupIntoAccounts(rows)
}
