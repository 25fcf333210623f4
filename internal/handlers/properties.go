package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"bincycle-backend/internal/models"
	"bincycle-backend/internal/schedule"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func GetProperties(db *sqlx.DB, cal schedule.Calendar) http.HandlerFunc {
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
			ORDER BY address ASC
		`)
		if err != nil {
			http.Error(w, "Failed to fetch properties", http.StatusInternalServerError)
			return
		}

		// One shared now for the whole page
		now := time.Now()
		responses := make([]models.PropertyResponse, len(properties))
		for i, p := range properties {
			week := cal.ComputeActiveColors(p.BinSettings(), now)
			responses[i] = p.ToPropertyResponse(week)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(responses)
	}
}

func GetProperty(db *sqlx.DB, cal schedule.Calendar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		var property models.Property
		err := db.Get(&property, "SELECT * FROM properties WHERE id = $1", id)
		if err == sql.ErrNoRows {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		week := cal.ComputeActiveColors(property.BinSettings(), time.Now())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(property.ToPropertyResponse(week))
	}
}

// GetPropertySchedule returns the bin activation for a property in the week
// containing ?date= (RFC3339 or 2006-01-02), defaulting to the current week.
func GetPropertySchedule(db *sqlx.DB, cal schedule.Calendar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		var property models.Property
		err := db.Get(&property, "SELECT * FROM properties WHERE id = $1", id)
		if err == sql.ErrNoRows {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		ref := time.Now()
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, perr := time.Parse(time.RFC3339, raw)
			if perr != nil {
				parsed, perr = time.Parse("2006-01-02", raw)
			}
			if perr != nil {
				http.Error(w, "Invalid date parameter", http.StatusBadRequest)
				return
			}
			ref = parsed
		}

		week := cal.ComputeActiveColors(property.BinSettings(), ref)

		status := make(map[string]bool, len(week.Status))
		for color, active := range week.Status {
			status[string(color)] = active
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"property_id":   property.ID,
			"address":       property.Address,
			"week_of":       ref.Format("2006-01-02"),
			"active_colors": week.ActiveColors,
			"status":        status,
		})
	}
}

func CreateProperty(db *sqlx.DB, cal schedule.Calendar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreatePropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Address) == "" {
			http.Error(w, "address is required", http.StatusBadRequest)
			return
		}

		id := uuid.New().String()
		now := time.Now().Unix()

		_, err := db.Exec(`
			INSERT INTO properties (id, account_id, client_name, company, address,
				red_freq, red_flip, red_bins,
				yellow_freq, yellow_flip, yellow_bins,
				green_freq, green_flip, green_bins,
				put_bins_out, collection_day, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		`, id, req.AccountID, req.ClientName, req.Company, strings.TrimSpace(req.Address),
			req.RedFreq, req.RedFlip, req.RedBins,
			req.YellowFreq, req.YellowFlip, req.YellowBins,
			req.GreenFreq, req.GreenFlip, req.GreenBins,
			req.PutBinsOut, req.CollectionDay, req.Notes, now, now)
		if err != nil {
			http.Error(w, "Failed to create property", http.StatusInternalServerError)
			return
		}

		var created models.Property
		if err := db.Get(&created, "SELECT * FROM properties WHERE id = $1", id); err != nil {
			http.Error(w, "Failed to fetch created property", http.StatusInternalServerError)
			return
		}

		week := cal.ComputeActiveColors(created.BinSettings(), time.Now())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created.ToPropertyResponse(week))
	}
}

func UpdateProperty(db *sqlx.DB, cal schedule.Calendar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		var req models.UpdatePropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		// Get existing property
		var existing models.Property
		err := db.Get(&existing, "SELECT * FROM properties WHERE id = $1", id)
		if err == sql.ErrNoRows {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		// Apply only the fields the request carries
		if req.AccountID != nil {
			existing.AccountID = req.AccountID
		}
		if req.ClientName != nil {
			existing.ClientName = *req.ClientName
		}
		if req.Company != nil {
			existing.Company = *req.Company
		}
		if req.Address != nil {
			existing.Address = strings.TrimSpace(*req.Address)
		}
		if req.RedFreq != nil {
			existing.RedFreq = *req.RedFreq
		}
		if req.RedFlip != nil {
			existing.RedFlip = *req.RedFlip
		}
		if req.RedBins != nil {
			existing.RedBins = *req.RedBins
		}
		if req.YellowFreq != nil {
			existing.YellowFreq = *req.YellowFreq
		}
		if req.YellowFlip != nil {
			existing.YellowFlip = *req.YellowFlip
		}
		if req.YellowBins != nil {
			existing.YellowBins = *req.YellowBins
		}
		if req.GreenFreq != nil {
			existing.GreenFreq = *req.GreenFreq
		}
		if req.GreenFlip != nil {
			existing.GreenFlip = *req.GreenFlip
		}
		if req.GreenBins != nil {
			existing.GreenBins = *req.GreenBins
		}
		if req.PutBinsOut != nil {
			existing.PutBinsOut = *req.PutBinsOut
		}
		if req.CollectionDay != nil {
			existing.CollectionDay = *req.CollectionDay
		}
		if req.Notes != nil {
			existing.Notes = *req.Notes
		}

		_, err = db.Exec(`
			UPDATE properties
			SET account_id = $1, client_name = $2, company = $3, address = $4,
			    red_freq = $5, red_flip = $6, red_bins = $7,
			    yellow_freq = $8, yellow_flip = $9, yellow_bins = $10,
			    green_freq = $11, green_flip = $12, green_bins = $13,
			    put_bins_out = $14, collection_day = $15, notes = $16,
			    updated_at = $17
			WHERE id = $18
		`, existing.AccountID, existing.ClientName, existing.Company, existing.Address,
			existing.RedFreq, existing.RedFlip, existing.RedBins,
			existing.YellowFreq, existing.YellowFlip, existing.YellowBins,
			existing.GreenFreq, existing.GreenFlip, existing.GreenBins,
			existing.PutBinsOut, existing.CollectionDay, existing.Notes,
			time.Now().Unix(), id)
		if err != nil {
			http.Error(w, "Failed to update property", http.StatusInternalServerError)
			return
		}

		var updated models.Property
		if err := db.Get(&updated, "SELECT * FROM properties WHERE id = $1", id); err != nil {
			http.Error(w, "Failed to fetch updated property", http.StatusInternalServerError)
			return
		}

		week := cal.ComputeActiveColors(updated.BinSettings(), time.Now())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated.ToPropertyResponse(week))
	}
}

func DeleteProperty(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		result, err := db.Exec("DELETE FROM properties WHERE id = $1", id)
		if err != nil {
			http.Error(w, "Failed to delete", http.StatusInternalServerError)
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
