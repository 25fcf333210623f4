package models

import (
	"time"

	"bincycle-backend/internal/schedule"
)

// Property is one serviced address. The per-color schedule columns hold the
// raw strings staff typed ("Weekly"/"Fortnightly", "Yes", a count); the
// schedule engine normalizes them on every read, so bad entries degrade
// instead of breaking pages.
type Property struct {
	ID            string  `json:"id" db:"id"`
	AccountID     *string `json:"account_id,omitempty" db:"account_id"`
	ClientName    string  `json:"client_name" db:"client_name"`
	Company       string  `json:"company" db:"company"`
	Address       string  `json:"address" db:"address"`
	RedFreq       string  `json:"red_freq" db:"red_freq"`
	RedFlip       string  `json:"red_flip" db:"red_flip"`
	RedBins       string  `json:"red_bins" db:"red_bins"`
	YellowFreq    string  `json:"yellow_freq" db:"yellow_freq"`
	YellowFlip    string  `json:"yellow_flip" db:"yellow_flip"`
	YellowBins    string  `json:"yellow_bins" db:"yellow_bins"`
	GreenFreq     string  `json:"green_freq" db:"green_freq"`
	GreenFlip     string  `json:"green_flip" db:"green_flip"`
	GreenBins     string  `json:"green_bins" db:"green_bins"`
	PutBinsOut    string  `json:"put_bins_out" db:"put_bins_out"`     // weekday name
	CollectionDay string  `json:"collection_day" db:"collection_day"` // weekday name
	Notes         string  `json:"notes" db:"notes"`
	CreatedAt     int64   `json:"created_at" db:"created_at"` // Unix timestamp
	UpdatedAt     int64   `json:"updated_at" db:"updated_at"` // Unix timestamp
}

// BinSettings parses the raw schedule columns into the engine's form.
func (p *Property) BinSettings() map[schedule.Color]schedule.BinSetting {
	return map[schedule.Color]schedule.BinSetting{
		schedule.ColorGarbage:   schedule.ParseBinSetting(p.RedFreq, p.RedFlip, p.RedBins),
		schedule.ColorRecycling: schedule.ParseBinSetting(p.YellowFreq, p.YellowFlip, p.YellowBins),
		schedule.ColorCompost:   schedule.ParseBinSetting(p.GreenFreq, p.GreenFlip, p.GreenBins),
	}
}

// ToRow converts a property to the flat row shape the account aggregator eats.
func (p *Property) ToRow() schedule.PropertyRow {
	row := schedule.PropertyRow{
		ID:         p.ID,
		ClientName: p.ClientName,
		Company:    p.Company,
		Address:    p.Address,
	}
	if p.AccountID != nil {
		row.AccountID = *p.AccountID
	}
	return row
}

// PropertyResponse is what we send to the portal, with the current week's
// bin activation attached.
type PropertyResponse struct {
	ID            string              `json:"id"`
	AccountID     *string             `json:"account_id,omitempty"`
	ClientName    string              `json:"client_name"`
	Company       string              `json:"company"`
	Address       string              `json:"address"`
	RedFreq       string              `json:"red_freq"`
	RedFlip       string              `json:"red_flip"`
	RedBins       string              `json:"red_bins"`
	YellowFreq    string              `json:"yellow_freq"`
	YellowFlip    string              `json:"yellow_flip"`
	YellowBins    string              `json:"yellow_bins"`
	GreenFreq     string              `json:"green_freq"`
	GreenFlip     string              `json:"green_flip"`
	GreenBins     string              `json:"green_bins"`
	PutBinsOut    string              `json:"put_bins_out"`
	CollectionDay string              `json:"collection_day"`
	Notes         string              `json:"notes"`
	CreatedAtIso  string              `json:"createdAtIso"`
	ThisWeek      weekSchedulePayload `json:"this_week"`
}

// weekSchedulePayload mirrors schedule.WeekSchedule with string keys for JSON.
type weekSchedulePayload struct {
	ActiveColors []schedule.Color `json:"active_colors"`
	Status       map[string]bool  `json:"status"`
}

// ToPropertyResponse converts a Property, stamping the week schedule computed
// against the caller's reference date.
func (p *Property) ToPropertyResponse(week schedule.WeekSchedule) PropertyResponse {
	status := make(map[string]bool, len(week.Status))
	for color, active := range week.Status {
		status[string(color)] = active
	}
	return PropertyResponse{
		ID:            p.ID,
		AccountID:     p.AccountID,
		ClientName:    p.ClientName,
		Company:       p.Company,
		Address:       p.Address,
		RedFreq:       p.RedFreq,
		RedFlip:       p.RedFlip,
		RedBins:       p.RedBins,
		YellowFreq:    p.YellowFreq,
		YellowFlip:    p.YellowFlip,
		YellowBins:    p.YellowBins,
		GreenFreq:     p.GreenFreq,
		GreenFlip:     p.GreenFlip,
		GreenBins:     p.GreenBins,
		PutBinsOut:    p.PutBinsOut,
		CollectionDay: p.CollectionDay,
		Notes:         p.Notes,
		CreatedAtIso:  time.Unix(p.CreatedAt, 0).Format(time.RFC3339),
		ThisWeek: weekSchedulePayload{
			ActiveColors: week.ActiveColors,
			Status:       status,
		},
	}
}

// CreatePropertyRequest is the request body for POST /api/properties
type CreatePropertyRequest struct {
	AccountID     *string `json:"account_id,omitempty"`
	ClientName    string  `json:"client_name"`
	Company       string  `json:"company"`
	Address       string  `json:"address"`
	RedFreq       string  `json:"red_freq"`
	RedFlip       string  `json:"red_flip"`
	RedBins       string  `json:"red_bins"`
	YellowFreq    string  `json:"yellow_freq"`
	YellowFlip    string  `json:"yellow_flip"`
	YellowBins    string  `json:"yellow_bins"`
	GreenFreq     string  `json:"green_freq"`
	GreenFlip     string  `json:"green_flip"`
	GreenBins     string  `json:"green_bins"`
	PutBinsOut    string  `json:"put_bins_out"`
	CollectionDay string  `json:"collection_day"`
	Notes         string  `json:"notes"`
}

// UpdatePropertyRequest is the request body for PATCH /api/properties/:id
type UpdatePropertyRequest struct {
	AccountID     *string `json:"account_id,omitempty"`
	ClientName    *string `json:"client_name,omitempty"`
	Company       *string `json:"company,omitempty"`
	Address       *string `json:"address,omitempty"`
	RedFreq       *string `json:"red_freq,omitempty"`
	RedFlip       *string `json:"red_flip,omitempty"`
	RedBins       *string `json:"red_bins,omitempty"`
	YellowFreq    *string `json:"yellow_freq,omitempty"`
	YellowFlip    *string `json:"yellow_flip,omitempty"`
	YellowBins    *string `json:"yellow_bins,omitempty"`
	GreenFreq     *string `json:"green_freq,omitempty"`
	GreenFlip     *string `json:"green_flip,omitempty"`
	GreenBins     *string `json:"green_bins,omitempty"`
	PutBinsOut    *string `json:"put_bins_out,omitempty"`
	CollectionDay *string `json:"collection_day,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}
