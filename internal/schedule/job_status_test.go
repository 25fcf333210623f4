package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletedWheneverPhotoLogged(t *testing.T) {
	job := JobRef{ID: "j1", DayOfWeek: "Monday", Address: "12 Wattle St, Brunswick"}
	logs := []LogRef{{JobID: "j1", PhotoPath: "proof/j1.jpg"}}

	// Photo evidence wins no matter where now sits relative to the anchor.
	times := []time.Time{
		time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),   // before the anchor
		time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),  // inside the window
		time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC),  // days later
	}
	for _, now := range times {
		assert.Equal(t, StatusCompleted, ResolveJobStatus(job, logs, now))
	}
}

func TestOnSiteWellPastAnchor(t *testing.T) {
	// Monday job, evaluated the following Wednesday: the 09:00 Monday
	// anchor of the current week is days gone, so the crew reads on-site.
	job := JobRef{ID: "j1", DayOfWeek: "Monday"}
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) // Wednesday

	assert.Equal(t, StatusOnSite, ResolveJobStatus(job, nil, now))
}

func TestEnRouteWithinTheHour(t *testing.T) {
	job := JobRef{ID: "j1", DayOfWeek: "Monday"}
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, StatusEnRoute, ResolveJobStatus(job, nil, now))
}

func TestScheduledBeforeAnchor(t *testing.T) {
	job := JobRef{ID: "j1", DayOfWeek: "Friday"}
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) // Monday, Friday job

	assert.Equal(t, StatusScheduled, ResolveJobStatus(job, nil, now))
}

func TestUnparseableWeekdayFallsBackToScheduled(t *testing.T) {
	job := JobRef{ID: "j1", DayOfWeek: "whenever suits"}
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusScheduled, ResolveJobStatus(job, nil, now))
}

func TestRowCompletionOutlivesAgedOutLogs(t *testing.T) {
	// The job's photo log has dropped out of the caller's window; the stamp
	// on the row must keep a past-anchor job from re-deriving as on-site.
	job := JobRef{ID: "j1", DayOfWeek: "Monday", Completed: true}
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC) // two weeks after the anchor

	assert.Equal(t, StatusCompleted, ResolveJobStatus(job, nil, now))
}

func TestSkippedMarkingIsTerminal(t *testing.T) {
	job := JobRef{ID: "j1", DayOfWeek: "Monday", Skipped: true}
	logs := []LogRef{{JobID: "j1", PhotoPath: "proof/j1.jpg"}}
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusSkipped, ResolveJobStatus(job, logs, now))
}

func TestMatchLogsByAddressFallback(t *testing.T) {
	job := JobRef{ID: "j1", DayOfWeek: "Monday", Address: "12 Wattle St, Brunswick"}
	logs := []LogRef{
		{JobID: "", Address: "12 wattle st brunswick", PhotoPath: "proof/a.jpg"},
		{JobID: "", Address: "99 Other Rd"},
		{JobID: "j2", Address: "12 Wattle St, Brunswick"}, // linked elsewhere, no fallback
	}

	matched := MatchLogs(job, logs)
	require.Len(t, matched, 1)
	assert.Equal(t, "proof/a.jpg", matched[0].PhotoPath)
}

func TestScheduledAnchorUsesCurrentWeek(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) // Wednesday of ISO week 10

	anchor, ok := ScheduledAnchor("Monday", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), anchor)

	anchor, ok = ScheduledAnchor("wed", now)
	require.True(t, ok, "three letter abbreviations parse")
	assert.Equal(t, time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), anchor, "today matches, anchor is today")

	anchor, ok = ScheduledAnchor("Sunday", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC), anchor, "later weekday stays within this week")

	_, ok = ScheduledAnchor("someday", now)
	assert.False(t, ok)
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12 Wattle St, Brunswick", "12 wattle st brunswick"},
		{"  12   WATTLE st.  Brunswick ", "12 wattle st brunswick"},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, NormalizeAddress(tc.input), "NormalizeAddress(%q)", tc.input)
	}
}
