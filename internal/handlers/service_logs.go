package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"bincycle-backend/internal/middleware"
	"bincycle-backend/internal/models"
	"bincycle-backend/internal/services"
	"bincycle-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

func GetServiceLogs(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT id, job_id, address, done_on, photo_path, gps_lat, gps_lng, notes, created_by
			FROM service_logs
		`
		args := []interface{}{}

		if jobID := r.URL.Query().Get("job_id"); jobID != "" {
			query += " WHERE job_id = $1"
			args = append(args, jobID)
		}
		query += " ORDER BY done_on DESC LIMIT 500"

		var logs []models.ServiceLog
		if err := db.Select(&logs, query, args...); err != nil {
			http.Error(w, "Failed to fetch service logs", http.StatusInternalServerError)
			return
		}

		responses := make([]models.ServiceLogResponse, len(logs))
		for i, l := range logs {
			responses[i] = l.ToServiceLogResponse()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(responses)
	}
}

// GetJobLogs returns the logs linked to one job by id, plus any unlinked logs
// whose address matches the job's property.
func GetJobLogs(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		var logs []models.ServiceLog
		err := db.Select(&logs, `
			SELECT l.id, l.job_id, l.address, l.done_on, l.photo_path,
			       l.gps_lat, l.gps_lng, l.notes, l.created_by
			FROM service_logs l
			WHERE l.job_id = $1
			   OR (l.job_id IS NULL AND l.address = (
				SELECT COALESCE(p.address, '')
				FROM jobs j LEFT JOIN properties p ON p.id = j.property_id
				WHERE j.id = $1
			   ))
			ORDER BY l.done_on DESC
		`, id)
		if err != nil {
			http.Error(w, "Failed to fetch service logs", http.StatusInternalServerError)
			return
		}

		responses := make([]models.ServiceLogResponse, len(logs))
		for i, l := range logs {
			responses[i] = l.ToServiceLogResponse()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(responses)
	}
}

// CreateServiceLog records a crew visit. A log with a photo completes the
// matched job, stamps last_completed_on and notifies the property's clients.
func CreateServiceLog(db *sqlx.DB, hub *websocket.Hub, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateServiceLogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Address) == "" {
			http.Error(w, "address is required", http.StatusBadRequest)
			return
		}

		userClaims, _ := middleware.GetUserFromContext(r)

		doneOn := time.Now().Unix()
		if req.DoneOn != nil {
			doneOn = *req.DoneOn
		}

		var logID int
		err := db.QueryRow(`
			INSERT INTO service_logs (job_id, address, done_on, photo_path, gps_lat, gps_lng, notes, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, req.JobID, strings.TrimSpace(req.Address), doneOn,
			req.PhotoPath, req.GpsLat, req.GpsLng, req.Notes, userClaims.UserID).Scan(&logID)
		if err != nil {
			http.Error(w, "Failed to create service log", http.StatusInternalServerError)
			return
		}

		hasPhoto := req.PhotoPath != nil && strings.TrimSpace(*req.PhotoPath) != ""

		// A photo is proof of completion
		var jobType string
		if hasPhoto && req.JobID != nil {
			_, err := db.Exec(`
				UPDATE jobs SET last_completed_on = $1, updated_at = $1 WHERE id = $2
			`, doneOn, *req.JobID)
			if err != nil {
				log.Printf("❌ Failed to stamp job completion: %v", err)
			}
			db.Get(&jobType, "SELECT job_type FROM jobs WHERE id = $1", *req.JobID)
		}

		var created models.ServiceLog
		if err := db.Get(&created, `
			SELECT id, job_id, address, done_on, photo_path, gps_lat, gps_lng, notes, created_by
			FROM service_logs WHERE id = $1
		`, logID); err != nil {
			http.Error(w, "Failed to fetch created log", http.StatusInternalServerError)
			return
		}

		log.Printf("📋 Service log #%d created for %s by %s", logID, created.Address, userClaims.Email)

		if hasPhoto {
			hub.BroadcastToAll(map[string]interface{}{
				"type": "job_completed",
				"data": created.ToServiceLogResponse(),
			})

			if fcm != nil {
				address := created.Address
				go notifyPropertyClients(db, fcm, address, func(token string) error {
					return fcm.SendServiceCompletedNotification(token, address, jobType)
				})
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created.ToServiceLogResponse())
	}
}
