// Package schedule derives everything the portal shows about recurring bin
// collection: which colors go out this week, which logical account a property
// belongs to, where a job is in its lifecycle, and the ETA label shown to
// clients. Everything in here is a pure function over already-fetched rows plus
// an injected "now" - nothing reads the system clock or touches the database,
// so a batch of jobs rendered with one now is always internally consistent.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// Color identifies one of the three household bin streams.
type Color string

const (
	ColorGarbage   Color = "garbage"   // red bin
	ColorRecycling Color = "recycling" // yellow bin
	ColorCompost   Color = "compost"   // green bin
)

// ColorOrder is the stable display order used everywhere bins are listed.
var ColorOrder = []Color{ColorGarbage, ColorRecycling, ColorCompost}

// Frequency is the parsed collection cadence of a single bin color.
type Frequency int

const (
	FreqUnset Frequency = iota
	FreqWeekly
	FreqFortnightly
)

// ParseFrequency normalizes the free-form frequency string staff type into
// the property form. Anything that isn't recognizably "Weekly" or
// "Fortnightly" degrades to unset - schedule data comes from hand entry and
// must never make a page error out.
func ParseFrequency(s string) Frequency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly":
		return FreqWeekly
	case "fortnightly":
		return FreqFortnightly
	default:
		return FreqUnset
	}
}

// ParseFlip reads the "Yes"/"" flip toggle. Only meaningful for fortnightly
// colors; callers can pass it through regardless because flip has no effect
// on weekly or unset frequencies.
func ParseFlip(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

// ParseBinCount reads the numeric bin-count string. Unparseable input falls
// back to 1, negative counts clamp to 0. Count never affects whether a color
// is scheduled - it only sizes the pickup.
func ParseBinCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	if n < 0 {
		return 0
	}
	return n
}

// BinSetting is one color's parsed schedule settings.
type BinSetting struct {
	Frequency Frequency
	Flip      bool
	Count     int
}

// ParseBinSetting builds a BinSetting from the three raw column values of a
// property row (e.g. red_freq, red_flip, red_bins).
func ParseBinSetting(freq, flip, count string) BinSetting {
	return BinSetting{
		Frequency: ParseFrequency(freq),
		Flip:      ParseFlip(flip),
		Count:     ParseBinCount(count),
	}
}

// WeekSchedule is the computed activation for one property in one week.
// Status carries every color (for per-color UI toggles); ActiveColors is the
// flattened active list in ColorOrder.
type WeekSchedule struct {
	ActiveColors []Color        `json:"active_colors"`
	Status       map[Color]bool `json:"status"`
}

// Calendar decides which of the two alternating fortnights is the "base"
// week. The zero value counts weeks from a fixed Monday in an even ISO week,
// so base weeks line up with even ISO week numbers in ordinary years but the
// alternation never stutters across a 53-week year. Setting Epoch to any date
// inside a base week makes the anchor explicit and auditable instead.
type Calendar struct {
	Epoch time.Time
}

// defaultEpoch is Monday of ISO week 2, 2024. Any Monday of an even ISO week
// would do; this one keeps the default parity aligned with the week numbers
// staff are used to reading.
var defaultEpoch = time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

// startOfISOWeek returns Monday 00:00 of the week containing t, in t's location.
func startOfISOWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started 6 days earlier
	}
	y, m, d := t.AddDate(0, 0, -(weekday - 1)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// weekParity classifies the week containing t: 0 = base week, 1 = off week.
func (c Calendar) weekParity(t time.Time) int {
	epoch := c.Epoch
	if epoch.IsZero() {
		epoch = defaultEpoch
	}
	weeks := weeksBetween(startOfISOWeek(t), startOfISOWeek(epoch))
	return ((weeks % 2) + 2) % 2
}

// weeksBetween counts calendar weeks from b's week start to a's. The two may
// carry different UTC offsets (an epoch parsed as UTC against a local
// reference date), so the subtraction happens on normalized calendar dates,
// never on wall-clock duration.
func weeksBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(au.Sub(bu).Hours() / (24 * 7))
}

// ComputeActiveColors determines which colors are collected in the week
// containing referenceDate. Weekly colors are always on, fortnightly colors
// alternate by week parity (flip inverts the fortnight), unset colors are
// never on. Total over its inputs: garbled settings just come out inactive.
func (c Calendar) ComputeActiveColors(settings map[Color]BinSetting, referenceDate time.Time) WeekSchedule {
	result := WeekSchedule{
		ActiveColors: []Color{},
		Status:       make(map[Color]bool, len(ColorOrder)),
	}

	for _, color := range ColorOrder {
		setting, ok := settings[color]
		active := false
		if ok {
			switch setting.Frequency {
			case FreqWeekly:
				active = true
			case FreqFortnightly:
				base := c.weekParity(referenceDate) == 0
				if setting.Flip {
					active = !base
				} else {
					active = base
				}
			}
		}
		result.Status[color] = active
		if active {
			result.ActiveColors = append(result.ActiveColors, color)
		}
	}

	return result
}

// ComputeActiveColors applies the default ISO-parity calendar.
func ComputeActiveColors(settings map[Color]BinSetting, referenceDate time.Time) WeekSchedule {
	return Calendar{}.ComputeActiveColors(settings, referenceDate)
}
