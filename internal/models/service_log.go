package models

import (
	"time"

	"bincycle-backend/internal/schedule"
)

type ServiceLog struct {
	ID        int      `json:"id" db:"id"`
	JobID     *string  `json:"job_id" db:"job_id"` // nullable: older crew apps only send the address
	Address   string   `json:"address" db:"address"`
	DoneOn    int64    `json:"done_on" db:"done_on"` // Unix timestamp
	PhotoPath *string  `json:"photo_path" db:"photo_path"`
	GpsLat    *float64 `json:"gps_lat" db:"gps_lat"`
	GpsLng    *float64 `json:"gps_lng" db:"gps_lng"`
	Notes     *string  `json:"notes" db:"notes"`
	CreatedBy *string  `json:"created_by" db:"created_by"`
}

// ToRef converts a log row into the resolver's matching shape.
func (l *ServiceLog) ToRef() schedule.LogRef {
	ref := schedule.LogRef{Address: l.Address}
	if l.JobID != nil {
		ref.JobID = *l.JobID
	}
	if l.PhotoPath != nil {
		ref.PhotoPath = *l.PhotoPath
	}
	return ref
}

// ServiceLogResponse is what we send to the client
type ServiceLogResponse struct {
	ID        int      `json:"id"`
	JobID     *string  `json:"jobId"`
	Address   string   `json:"address"`
	DoneOnIso string   `json:"doneOnIso"`
	DoneOn    string   `json:"doneOn"` // formatted date
	PhotoPath *string  `json:"photoPath"`
	GpsLat    *float64 `json:"gpsLat"`
	GpsLng    *float64 `json:"gpsLng"`
	Notes     *string  `json:"notes"`
}

// ToServiceLogResponse converts a ServiceLog to ServiceLogResponse
func (l *ServiceLog) ToServiceLogResponse() ServiceLogResponse {
	t := time.Unix(l.DoneOn, 0)
	return ServiceLogResponse{
		ID:        l.ID,
		JobID:     l.JobID,
		Address:   l.Address,
		DoneOnIso: t.Format(time.RFC3339),
		DoneOn:    t.Format("Jan 02, 2006"),
		PhotoPath: l.PhotoPath,
		GpsLat:    l.GpsLat,
		GpsLng:    l.GpsLng,
		Notes:     l.Notes,
	}
}

// CreateServiceLogRequest is the crew-app payload for logging a completed visit.
type CreateServiceLogRequest struct {
	JobID     *string  `json:"job_id"`
	Address   string   `json:"address"`
	DoneOn    *int64   `json:"done_on"` // optional, defaults to now
	PhotoPath *string  `json:"photo_path"`
	GpsLat    *float64 `json:"gps_lat"`
	GpsLng    *float64 `json:"gps_lng"`
	Notes     *string  `json:"notes"`
}
