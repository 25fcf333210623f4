package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"bincycle-backend/internal/models"
	"bincycle-backend/internal/schedule"

	"github.com/jmoiron/sqlx"
)

// GetAccounts groups the flat property list into logical accounts. Rows that
// cannot be keyed are logged and left out rather than failing the page.
func GetAccounts(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var properties []models.Property
		err := db.Select(&properties, `
			SELECT id, account_id, client_name, company, address,
			       red_freq, red_flip, red_bins,
			       yellow_freq, yellow_flip, yellow_bins,
			       green_freq, green_flip, green_bins,
			       put_bins_out, collection_day, notes,
			       created_at, updated_at
			FROM properties
			ORDER BY created_at ASC
		`)
		if err != nil {
			http.Error(w, "Failed to fetch properties", http.StatusInternalServerError)
			return
		}

		rows := make([]schedule.PropertyRow, len(properties))
		for i, p := range properties {
			rows[i] = p.ToRow()
		}

		accounts, dropped := schedule.GroupIntoAccounts(rows)
		for _, d := range dropped {
			log.Printf("⚠️ Property %s has no identity, excluded from accounts", d.ID)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(accounts)
	}
}
