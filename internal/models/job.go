package models

import (
	"database/sql"
	"time"

	"bincycle-backend/internal/schedule"
)

// JobType says which half of a collection a job covers.
const (
	JobTypePutOut  = "put_out"
	JobTypeBringIn = "bring_in"
)

// Job is one recurring service occurrence, created by the nightly generator
// and read-only afterwards except for the explicit skip marking. Lifecycle
// status is never stored on the row - it is derived from the logs and the
// clock on every read.
type Job struct {
	ID              string  `json:"id" db:"id"`
	PropertyID      *string `json:"property_id" db:"property_id"` // nullable: some jobs only resolve by address
	DayOfWeek       string  `json:"day_of_week" db:"day_of_week"`
	JobType         string  `json:"job_type" db:"job_type"`
	LastCompletedOn *int64  `json:"last_completed_on,omitempty" db:"last_completed_on"` // Unix timestamp
	SkippedOn       *int64  `json:"skipped_on,omitempty" db:"skipped_on"`               // Unix timestamp, staff marking
	SkippedBy       *string `json:"skipped_by,omitempty" db:"skipped_by"`
	CreatedAt       int64   `json:"created_at" db:"created_at"` // Unix timestamp
	UpdatedAt       int64   `json:"updated_at" db:"updated_at"` // Unix timestamp
}

// ToRef converts a job plus its property address into the resolver's shape.
func (j *Job) ToRef(address string) schedule.JobRef {
	return schedule.JobRef{
		ID:        j.ID,
		DayOfWeek: j.DayOfWeek,
		Address:   address,
		Skipped:   j.SkippedOn != nil,
		Completed: j.LastCompletedOn != nil,
	}
}

// JobResponse is what we send to the portal: the stored row plus the derived
// status and ETA label for the rendering pass's shared now.
type JobResponse struct {
	ID               string             `json:"id"`
	PropertyID       *string            `json:"property_id"`
	Address          string             `json:"address,omitempty"`
	DayOfWeek        string             `json:"day_of_week"`
	JobType          string             `json:"job_type"`
	Status           schedule.JobStatus `json:"status"`
	Eta              string             `json:"eta"`
	LastCompletedIso *string            `json:"lastCompletedIso,omitempty"`
	SkippedOnIso     *string            `json:"skippedOnIso,omitempty"`
}

// ToJobResponse converts a Job with its derived fields.
func (j *Job) ToJobResponse(address string, status schedule.JobStatus, eta string) JobResponse {
	resp := JobResponse{
		ID:         j.ID,
		PropertyID: j.PropertyID,
		Address:    address,
		DayOfWeek:  j.DayOfWeek,
		JobType:    j.JobType,
		Status:     status,
		Eta:        eta,
	}

	if j.LastCompletedOn != nil {
		iso := time.Unix(*j.LastCompletedOn, 0).Format(time.RFC3339)
		resp.LastCompletedIso = &iso
	}
	if j.SkippedOn != nil {
		iso := time.Unix(*j.SkippedOn, 0).Format(time.RFC3339)
		resp.SkippedOnIso = &iso
	}

	return resp
}

// ToNullInt64 converts a pointer to int64 to sql.NullInt64
func ToNullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

// FromNullInt64 converts sql.NullInt64 to pointer to int64
func FromNullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}

// ToNullString converts a pointer to string to sql.NullString
func ToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

// FromNullString converts sql.NullString to pointer to string
func FromNullString(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}
