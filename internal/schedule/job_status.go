package schedule

import (
	"strings"
	"time"
)

// JobStatus is the derived lifecycle state of a job. It is recomputed from
// the job, its logs and the current time on every read - never stored.
type JobStatus string

const (
	StatusScheduled JobStatus = "scheduled"
	StatusEnRoute   JobStatus = "en_route"
	StatusOnSite    JobStatus = "on_site"
	StatusCompleted JobStatus = "completed"
	StatusSkipped   JobStatus = "skipped"
)

// JobRef is the slice of a job the resolver needs.
type JobRef struct {
	ID        string
	DayOfWeek string // weekday name as staff entered it
	Address   string // property address, used for legacy log matching
	Skipped   bool   // explicit staff marking; never inferred from logs
	Completed bool   // completion stamped on the row; outlives the photo log
}

// LogRef is the slice of a completion record the resolver needs.
type LogRef struct {
	JobID     string
	Address   string
	PhotoPath string
}

// Crews are assumed to start at 09:00 local; a job more than an hour past its
// anchor with no completion photo is treated as having a crew on site.
const (
	anchorHour  = 9
	onSiteAfter = 60 * time.Minute
)

// NormalizeAddress flattens an address for equality matching: lower case,
// punctuation stripped, whitespace collapsed. Older crew apps logged against
// the address instead of a job id, so this is the only linkage some logs have.
func NormalizeAddress(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// MatchLogs returns the logs that belong to job: matched by job id when the
// log carries one, otherwise by normalized address equality with the job's
// property. Two jobs at the same address can conflate through the fallback;
// that is a known data gap, not something this function can repair.
func MatchLogs(job JobRef, logs []LogRef) []LogRef {
	jobAddr := NormalizeAddress(job.Address)
	matched := []LogRef{}
	for _, l := range logs {
		if l.JobID != "" {
			if l.JobID == job.ID {
				matched = append(matched, l)
			}
			continue
		}
		if jobAddr != "" && NormalizeAddress(l.Address) == jobAddr {
			matched = append(matched, l)
		}
	}
	return matched
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseWeekday reads a staff-entered weekday name. Full names and three
// letter abbreviations are accepted, anything else reports ok=false.
func ParseWeekday(s string) (time.Weekday, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if wd, ok := weekdayNames[name]; ok {
		return wd, true
	}
	if len(name) == 3 {
		for full, wd := range weekdayNames {
			if strings.HasPrefix(full, name) {
				return wd, true
			}
		}
	}
	return time.Sunday, false
}

// ScheduledAnchor returns the job's 09:00 anchor within the week containing
// now (Monday-start, same week the bin calculator uses). If now falls on the
// scheduled weekday the anchor is today; earlier weekdays of the current week
// are in the past, which is what lets an overdue Monday job read as on-site
// on Wednesday. ok=false when the weekday string is unusable.
func ScheduledAnchor(dayOfWeek string, now time.Time) (time.Time, bool) {
	wd, ok := ParseWeekday(dayOfWeek)
	if !ok {
		return time.Time{}, false
	}
	offset := (int(wd) + 6) % 7 // Monday=0 .. Sunday=6
	day := startOfISOWeek(now).AddDate(0, 0, offset)
	return time.Date(day.Year(), day.Month(), day.Day(), anchorHour, 0, 0, 0, now.Location()), true
}

// ResolveJobStatus derives the lifecycle state for one job, evaluated fresh
// from scratch on every call:
//
//	skipped    - staff marked it, terminal
//	completed  - stamped on the row, or any matched log has a photo; terminal
//	on_site    - anchor is more than an hour gone
//	en_route   - anchor has arrived but within the hour
//	scheduled  - anchor still ahead, or no usable weekday
//
// Callers usually feed only recent logs, so the row stamp is what keeps an
// old job completed after its photo log ages out of the window. There is no
// telemetry feed; en_route/on_site are a coarse reading of how far past the
// nominal start time now is.
func ResolveJobStatus(job JobRef, logs []LogRef, now time.Time) JobStatus {
	if job.Skipped {
		return StatusSkipped
	}
	if job.Completed {
		return StatusCompleted
	}

	for _, l := range MatchLogs(job, logs) {
		if strings.TrimSpace(l.PhotoPath) != "" {
			return StatusCompleted
		}
	}

	anchor, ok := ScheduledAnchor(job.DayOfWeek, now)
	if !ok {
		// No reliable schedule; stay "scheduled" and let the ETA
		// estimator fall back to its default window.
		return StatusScheduled
	}

	switch {
	case now.Sub(anchor) > onSiteAfter:
		return StatusOnSite
	case !anchor.After(now):
		return StatusEnRoute
	default:
		return StatusScheduled
	}
}
