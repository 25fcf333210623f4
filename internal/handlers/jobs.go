package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"bincycle-backend/internal/middleware"
	"bincycle-backend/internal/models"
	"bincycle-backend/internal/schedule"
	"bincycle-backend/internal/services"
	"bincycle-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// jobRow is a job joined with its property's address for resolution.
type jobRow struct {
	models.Job
	Address sql.NullString `db:"address"`
}

// fetchWeekLogs loads the service logs the resolver should see: everything
// from the last seven days covers the current week plus clock skew.
func fetchWeekLogs(db *sqlx.DB, now time.Time) ([]models.ServiceLog, error) {
	var logs []models.ServiceLog
	since := now.Add(-7 * 24 * time.Hour).Unix()
	err := db.Select(&logs, `
		SELECT id, job_id, address, done_on, photo_path, gps_lat, gps_lng, notes, created_by
		FROM service_logs
		WHERE done_on >= $1
		ORDER BY done_on DESC
	`, since)
	return logs, err
}

// GetJobs lists jobs with their derived status and ETA. Every job on the page
// is resolved against the same clock reading so the page is a consistent
// snapshot. Supports ?property_id=, ?status= and ?job_type= filters; the
// status filter applies to the derived value.
func GetJobs(db *sqlx.DB, estimator schedule.Estimator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT j.id, j.property_id, j.day_of_week, j.job_type,
			       j.last_completed_on, j.skipped_on, j.skipped_by,
			       j.created_at, j.updated_at,
			       p.address AS address
			FROM jobs j
			LEFT JOIN properties p ON p.id = j.property_id
		`
		args := []interface{}{}

		var conditions []string
		if propertyID := r.URL.Query().Get("property_id"); propertyID != "" {
			args = append(args, propertyID)
			conditions = append(conditions, "j.property_id = $1")
		}
		if jobType := r.URL.Query().Get("job_type"); jobType != "" {
			args = append(args, jobType)
			if len(args) == 1 {
				conditions = append(conditions, "j.job_type = $1")
			} else {
				conditions = append(conditions, "j.job_type = $2")
			}
		}
		if len(conditions) > 0 {
			query += " WHERE " + conditions[0]
			for _, c := range conditions[1:] {
				query += " AND " + c
			}
		}
		query += " ORDER BY j.created_at DESC"

		var rows []jobRow
		if err := db.Select(&rows, query, args...); err != nil {
			http.Error(w, "Failed to fetch jobs", http.StatusInternalServerError)
			return
		}

		now := time.Now()
		serviceLogs, err := fetchWeekLogs(db, now)
		if err != nil {
			http.Error(w, "Failed to fetch service logs", http.StatusInternalServerError)
			return
		}

		logRefs := make([]schedule.LogRef, len(serviceLogs))
		for i, l := range serviceLogs {
			logRefs[i] = l.ToRef()
		}

		statusFilter := schedule.JobStatus(r.URL.Query().Get("status"))

		responses := make([]models.JobResponse, 0, len(rows))
		for _, row := range rows {
			address := ""
			if row.Address.Valid {
				address = row.Address.String
			}
			ref := row.Job.ToRef(address)
			status := schedule.ResolveJobStatus(ref, logRefs, now)
			if statusFilter != "" && status != statusFilter {
				continue
			}

			eta := estimator.EtaLabel(etaInputFor(&row.Job, status, now), now)
			responses = append(responses, row.Job.ToJobResponse(address, status, eta))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(responses)
	}
}

// GetJob returns a single job with derived status and ETA.
func GetJob(db *sqlx.DB, estimator schedule.Estimator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		var row jobRow
		err := db.Get(&row, `
			SELECT j.id, j.property_id, j.day_of_week, j.job_type,
			       j.last_completed_on, j.skipped_on, j.skipped_by,
			       j.created_at, j.updated_at,
			       p.address AS address
			FROM jobs j
			LEFT JOIN properties p ON p.id = j.property_id
			WHERE j.id = $1
		`, id)
		if err == sql.ErrNoRows {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		now := time.Now()
		serviceLogs, err := fetchWeekLogs(db, now)
		if err != nil {
			http.Error(w, "Failed to fetch service logs", http.StatusInternalServerError)
			return
		}

		logRefs := make([]schedule.LogRef, len(serviceLogs))
		for i, l := range serviceLogs {
			logRefs[i] = l.ToRef()
		}

		address := ""
		if row.Address.Valid {
			address = row.Address.String
		}
		status := schedule.ResolveJobStatus(row.Job.ToRef(address), logRefs, now)
		eta := estimator.EtaLabel(etaInputFor(&row.Job, status, now), now)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(row.Job.ToJobResponse(address, status, eta))
	}
}

// SkipJob marks this week's visit as skipped. Terminal until the next cycle's
// job is generated.
func SkipJob(db *sqlx.DB, hub *websocket.Hub, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)

		result, err := db.Exec(`
			UPDATE jobs
			SET skipped_on = $1, skipped_by = $2, updated_at = $1
			WHERE id = $3 AND skipped_on IS NULL
		`, time.Now().Unix(), userClaims.UserID, id)
		if err != nil {
			http.Error(w, "Failed to skip job", http.StatusInternalServerError)
			return
		}

		rows, err := result.RowsAffected()
		if err != nil || rows == 0 {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		log.Printf("⏭️  Job %s skipped by %s", id, userClaims.Email)

		var address string
		db.Get(&address, `
			SELECT COALESCE(p.address, '')
			FROM jobs j LEFT JOIN properties p ON p.id = j.property_id
			WHERE j.id = $1
		`, id)

		hub.BroadcastToAll(map[string]interface{}{
			"type": "job_skipped",
			"data": map[string]string{
				"job_id":  id,
				"address": address,
			},
		})

		if fcm != nil && address != "" {
			go notifyPropertyClients(db, fcm, address, func(token string) error {
				return fcm.SendJobSkippedNotification(token, address)
			})
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// etaInputFor bundles a job's stored fields for the estimator. There is no
// crew check-in feed, so StartedAt stays unset and on-site jobs fall through
// to the estimator's default service window.
func etaInputFor(job *models.Job, status schedule.JobStatus, now time.Time) schedule.EtaInput {
	in := schedule.EtaInput{Status: status}
	if anchor, ok := schedule.ScheduledAnchor(job.DayOfWeek, now); ok {
		in.ScheduledAt = anchor
	}
	return in
}

// notifyPropertyClients pushes to every device registered by a client whose
// account covers the given address.
func notifyPropertyClients(db *sqlx.DB, fcm *services.FCMService, address string, send func(token string) error) {
	var tokens []string
	err := db.Select(&tokens, `
		SELECT t.token
		FROM fcm_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE u.role = 'client'
		  AND u.account_id IN (
			SELECT DISTINCT account_id FROM properties
			WHERE address = $1 AND account_id IS NOT NULL AND account_id != ''
		  )
	`, address)
	if err != nil {
		log.Printf("❌ Failed to load FCM tokens for %s: %v", address, err)
		return
	}

	for _, token := range tokens {
		if err := send(token); err != nil {
			log.Printf("❌ FCM send failed: %v", err)
		}
	}
}
