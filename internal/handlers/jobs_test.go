package handlers

import (
	"testing"
	"time"

	"bincycle-backend/internal/models"
	"bincycle-backend/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEtaInputForOnSiteShowsDefaultWindow(t *testing.T) {
	estimator := schedule.Estimator{DefaultMinutes: schedule.DefaultEtaMinutes}
	job := models.Job{ID: "j1", DayOfWeek: "Monday", JobType: models.JobTypePutOut}
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) // Wednesday, anchor long gone

	in := etaInputFor(&job, schedule.StatusOnSite, now)
	require.Nil(t, in.StartedAt, "no check-in feed exists to start a countdown from")

	label := estimator.EtaLabel(in, now)
	assert.Equal(t, "~20 min", label)
}

func TestEtaInputForScheduledKeepsAnchor(t *testing.T) {
	estimator := schedule.Estimator{DefaultMinutes: schedule.DefaultEtaMinutes}
	job := models.Job{ID: "j1", DayOfWeek: "Friday", JobType: models.JobTypeBringIn}
	now := time.Date(2026, 3, 6, 8, 0, 0, 0, time.UTC) // Friday 08:00, anchor at 09:00

	in := etaInputFor(&job, schedule.StatusScheduled, now)
	assert.Equal(t, time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC), in.ScheduledAt)
	assert.Equal(t, "~60 min", estimator.EtaLabel(in, now))
}

func TestEtaInputForUnparseableWeekdayLeavesZeroAnchor(t *testing.T) {
	job := models.Job{ID: "j1", DayOfWeek: "whenever suits"}
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	in := etaInputFor(&job, schedule.StatusScheduled, now)
	assert.True(t, in.ScheduledAt.IsZero())
}
