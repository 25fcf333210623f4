package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var etaNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestTerminalLabels(t *testing.T) {
	assert.Equal(t, "Completed", EtaLabel(EtaInput{Status: StatusCompleted}, etaNow))
	assert.Equal(t, "Skipped", EtaLabel(EtaInput{Status: StatusSkipped}, etaNow))

	// Terminal labels ignore everything else on the job.
	in := EtaInput{
		Status:     StatusCompleted,
		EtaMinutes: intPtr(45),
		StartedAt:  timePtr(etaNow.Add(-10 * time.Minute)),
	}
	assert.Equal(t, "Completed", EtaLabel(in, etaNow))
}

func TestStartedJobCountsDown(t *testing.T) {
	in := EtaInput{
		Status:     StatusOnSite,
		EtaMinutes: intPtr(30),
		StartedAt:  timePtr(etaNow.Add(-10 * time.Minute)),
	}
	assert.Equal(t, "~20 min", EtaLabel(in, etaNow))

	// Elapsed time past the baseline clamps to zero, never negative.
	in.StartedAt = timePtr(etaNow.Add(-3 * time.Hour))
	assert.Equal(t, "Arriving now", EtaLabel(in, etaNow))

	// Without an explicit ETA the default baseline drains instead.
	in = EtaInput{Status: StatusOnSite, StartedAt: timePtr(etaNow.Add(-5 * time.Minute))}
	assert.Equal(t, "~15 min", EtaLabel(in, etaNow))
}

func TestExplicitEtaShownAsIs(t *testing.T) {
	assert.Equal(t, "~15 min", EtaLabel(EtaInput{Status: StatusEnRoute, EtaMinutes: intPtr(15)}, etaNow))
	assert.Equal(t, "Arriving now", EtaLabel(EtaInput{Status: StatusEnRoute, EtaMinutes: intPtr(1)}, etaNow))
	assert.Equal(t, "Arriving now", EtaLabel(EtaInput{Status: StatusEnRoute, EtaMinutes: intPtr(-7)}, etaNow))
}

func TestFutureScheduledTime(t *testing.T) {
	in := EtaInput{Status: StatusScheduled, ScheduledAt: etaNow.Add(45 * time.Minute)}
	assert.Equal(t, "~45 min", EtaLabel(in, etaNow))

	// Imminent scheduled times floor at five minutes.
	in.ScheduledAt = etaNow.Add(2 * time.Minute)
	assert.Equal(t, "~5 min", EtaLabel(in, etaNow))

	// Beyond two hours the label switches to rounded hours.
	in.ScheduledAt = etaNow.Add(3 * time.Hour)
	assert.Equal(t, "~3 h out", EtaLabel(in, etaNow))

	in.ScheduledAt = etaNow.Add(170 * time.Minute)
	assert.Equal(t, "~3 h out", EtaLabel(in, etaNow), "170 minutes rounds to 3 hours")
}

func TestDefaultWindowFallback(t *testing.T) {
	// No ETA, nothing started, schedule not in the future.
	in := EtaInput{Status: StatusOnSite, ScheduledAt: etaNow.Add(-2 * time.Hour)}
	assert.Equal(t, "~20 min", EtaLabel(in, etaNow))

	assert.Equal(t, "~20 min", EtaLabel(EtaInput{Status: StatusScheduled}, etaNow))

	// Callers with a different service baseline get their own window.
	assert.Equal(t, "~30 min", Estimator{DefaultMinutes: 30}.EtaLabel(EtaInput{Status: StatusScheduled}, etaNow))
}

func TestNoInputYieldsNegativeMinutes(t *testing.T) {
	inputs := []EtaInput{
		{Status: StatusEnRoute, EtaMinutes: intPtr(-120)},
		{Status: StatusOnSite, StartedAt: timePtr(etaNow.Add(-48 * time.Hour))},
		{Status: StatusScheduled, ScheduledAt: etaNow.Add(-96 * time.Hour)},
		{Status: StatusOnSite, EtaMinutes: intPtr(-1), StartedAt: timePtr(etaNow.Add(-time.Minute))},
	}

	for i, in := range inputs {
		label := EtaLabel(in, etaNow)
		assert.False(t, strings.Contains(label, "-"), "input %d produced %q", i, label)
	}
}
