package schedule

import (
	"fmt"
	"math"
	"time"
)

// DefaultEtaMinutes is the window shown when nothing better is known. Callers
// with their own service-time baseline pass it via Estimator.
const DefaultEtaMinutes = 20

// EtaInput is everything the estimator reads about one job.
type EtaInput struct {
	Status      JobStatus
	ScheduledAt time.Time  // zero when the job has no usable anchor
	EtaMinutes  *int       // explicit ETA, when the office has set one
	StartedAt   *time.Time // when the crew checked in, if known
}

// Estimator renders ETA labels with a configurable baseline.
type Estimator struct {
	DefaultMinutes int
}

// EtaLabel renders the short human ETA string with the default baseline.
// Pure and total: same inputs and now always give the same string, and no
// input produces a negative minute count.
func EtaLabel(in EtaInput, now time.Time) string {
	return Estimator{DefaultMinutes: DefaultEtaMinutes}.EtaLabel(in, now)
}

// EtaLabel applies the rules in priority order: terminal statuses get fixed
// labels; a started job counts down its baseline; an explicit ETA is shown
// as-is; a future scheduled time is shown as minutes (floored at 5) or
// rounded hours beyond two hours; otherwise the default window.
func (e Estimator) EtaLabel(in EtaInput, now time.Time) string {
	base := e.DefaultMinutes
	if base <= 0 {
		base = DefaultEtaMinutes
	}

	switch in.Status {
	case StatusCompleted:
		return "Completed"
	case StatusSkipped:
		return "Skipped"
	}

	if in.StartedAt != nil {
		if in.EtaMinutes != nil {
			base = *in.EtaMinutes
		}
		remaining := base - int(now.Sub(*in.StartedAt).Minutes())
		if remaining < 0 {
			remaining = 0
		}
		return minutesLabel(remaining)
	}

	if in.EtaMinutes != nil {
		m := *in.EtaMinutes
		if m < 0 {
			m = 0
		}
		return minutesLabel(m)
	}

	if !in.ScheduledAt.IsZero() && in.ScheduledAt.After(now) {
		mins := int(in.ScheduledAt.Sub(now).Minutes())
		if mins > 120 {
			hours := int(math.Round(float64(mins) / 60))
			return fmt.Sprintf("~%d h out", hours)
		}
		if mins < 5 {
			mins = 5
		}
		return fmt.Sprintf("~%d min", mins)
	}

	return fmt.Sprintf("~%d min", base)
}

func minutesLabel(m int) string {
	if m <= 1 {
		return "Arriving now"
	}
	return fmt.Sprintf("~%d min", m)
}
