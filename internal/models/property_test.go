package models

import (
	"testing"

	"bincycle-backend/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinSettingsParsesRawColumns(t *testing.T) {
	p := Property{
		RedFreq:    "Weekly",
		RedBins:    "4",
		YellowFreq: "Fortnightly",
		YellowBins: "2",
		GreenFreq:  "Fortnightly",
		GreenFlip:  "yes",
		GreenBins:  "",
	}

	settings := p.BinSettings()
	require.Len(t, settings, 3)

	assert.Equal(t, schedule.FreqWeekly, settings[schedule.ColorGarbage].Frequency)
	assert.Equal(t, 4, settings[schedule.ColorGarbage].Count)
	assert.False(t, settings[schedule.ColorGarbage].Flip)

	assert.Equal(t, schedule.FreqFortnightly, settings[schedule.ColorRecycling].Frequency)
	assert.Equal(t, 2, settings[schedule.ColorRecycling].Count)

	assert.Equal(t, schedule.FreqFortnightly, settings[schedule.ColorCompost].Frequency)
	assert.True(t, settings[schedule.ColorCompost].Flip)
	assert.Equal(t, 1, settings[schedule.ColorCompost].Count, "blank count means one bin")
}

func TestBinSettingsDegradesOnGarbage(t *testing.T) {
	p := Property{RedFreq: "Fortnightl", YellowFreq: "???"}

	settings := p.BinSettings()
	assert.Equal(t, schedule.FreqUnset, settings[schedule.ColorGarbage].Frequency)
	assert.Equal(t, schedule.FreqUnset, settings[schedule.ColorRecycling].Frequency)
}

func TestToRowCarriesIdentityFields(t *testing.T) {
	accountID := "ACC-001"
	p := Property{
		ID:         "p1",
		AccountID:  &accountID,
		ClientName: "Harbourview Body Corp",
		Company:    "Harbourview Apartments",
		Address:    "12 Marine Parade",
	}

	row := p.ToRow()
	assert.Equal(t, "p1", row.ID)
	assert.Equal(t, "ACC-001", row.AccountID)
	assert.Equal(t, "Harbourview Body Corp", row.ClientName)
	assert.Equal(t, "Harbourview Apartments", row.Company)
	assert.Equal(t, "12 Marine Parade", row.Address)

	p.AccountID = nil
	assert.Empty(t, p.ToRow().AccountID)
}

func TestJobToRefFlagsSkip(t *testing.T) {
	skippedOn := int64(1_750_000_000)
	j := Job{ID: "j1", DayOfWeek: "Monday", SkippedOn: &skippedOn}

	ref := j.ToRef("12 Marine Parade")
	assert.True(t, ref.Skipped)
	assert.Equal(t, "Monday", ref.DayOfWeek)
	assert.Equal(t, "12 Marine Parade", ref.Address)

	j.SkippedOn = nil
	assert.False(t, j.ToRef("").Skipped)
}

func TestJobToRefFlagsRowCompletion(t *testing.T) {
	completedOn := int64(1_750_000_000)
	j := Job{ID: "j1", DayOfWeek: "Monday", LastCompletedOn: &completedOn}

	assert.True(t, j.ToRef("").Completed)

	j.LastCompletedOn = nil
	assert.False(t, j.ToRef("").Completed)
}

func TestServiceLogToRefHandlesNils(t *testing.T) {
	l := ServiceLog{Address: "12 Marine Parade"}
	ref := l.ToRef()
	assert.Empty(t, ref.JobID)
	assert.Empty(t, ref.PhotoPath)

	jobID := "j1"
	photo := "/photos/123.jpg"
	l.JobID = &jobID
	l.PhotoPath = &photo
	ref = l.ToRef()
	assert.Equal(t, "j1", ref.JobID)
	assert.Equal(t, "/photos/123.jpg", ref.PhotoPath)
}
