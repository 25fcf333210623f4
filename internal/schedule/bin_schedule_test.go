package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is the Monday of ISO week 10 (even), 2026-03-09 of week 11 (odd).
var (
	mondayWeek10 = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	mondayWeek11 = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
)

func TestWeeklyAlwaysActive(t *testing.T) {
	settings := map[Color]BinSetting{
		ColorGarbage: ParseBinSetting("Weekly", "Yes", "2"),
	}

	for _, ref := range []time.Time{mondayWeek10, mondayWeek11, mondayWeek10.AddDate(1, 0, 3)} {
		ws := ComputeActiveColors(settings, ref)
		assert.True(t, ws.Status[ColorGarbage], "weekly color must be active on %s regardless of flip", ref)
		assert.Contains(t, ws.ActiveColors, ColorGarbage)
	}
}

func TestFortnightlyFlipsAcrossAdjacentWeeks(t *testing.T) {
	settings := map[Color]BinSetting{
		ColorGarbage: ParseBinSetting("Fortnightly", "Yes", "1"),
	}

	week10 := ComputeActiveColors(settings, mondayWeek10)
	week11 := ComputeActiveColors(settings, mondayWeek11)

	assert.NotEqual(t, week10.Status[ColorGarbage], week11.Status[ColorGarbage],
		"fortnightly activation must alternate between adjacent ISO weeks")
}

func TestFlipInvertsTheFortnight(t *testing.T) {
	plain := map[Color]BinSetting{ColorRecycling: ParseBinSetting("Fortnightly", "", "1")}
	flipped := map[Color]BinSetting{ColorRecycling: ParseBinSetting("Fortnightly", "Yes", "1")}

	for _, ref := range []time.Time{mondayWeek10, mondayWeek11} {
		a := ComputeActiveColors(plain, ref)
		b := ComputeActiveColors(flipped, ref)
		assert.NotEqual(t, a.Status[ColorRecycling], b.Status[ColorRecycling],
			"flip=Yes must land in the opposite parity bucket on %s", ref)
	}
}

func TestUnsetAndGarbledFrequenciesNeverActive(t *testing.T) {
	settings := map[Color]BinSetting{
		ColorGarbage:   ParseBinSetting("", "Yes", "3"),
		ColorRecycling: ParseBinSetting("every other tuesday??", "", "1"),
	}

	ws := ComputeActiveColors(settings, mondayWeek10)
	assert.False(t, ws.Status[ColorGarbage])
	assert.False(t, ws.Status[ColorRecycling])
	assert.False(t, ws.Status[ColorCompost], "missing setting reads as never active")
	assert.Empty(t, ws.ActiveColors)
}

func TestActiveColorsKeepDeclaredOrder(t *testing.T) {
	settings := map[Color]BinSetting{
		ColorCompost:   ParseBinSetting("Weekly", "", "1"),
		ColorGarbage:   ParseBinSetting("Weekly", "", "1"),
		ColorRecycling: ParseBinSetting("Weekly", "", "1"),
	}

	ws := ComputeActiveColors(settings, mondayWeek10)
	require.Equal(t, []Color{ColorGarbage, ColorRecycling, ColorCompost}, ws.ActiveColors)
}

func TestBinCountDoesNotGateActivation(t *testing.T) {
	// A zero or garbled count still leaves the color scheduled.
	settings := map[Color]BinSetting{
		ColorGarbage:   ParseBinSetting("Weekly", "", "0"),
		ColorRecycling: ParseBinSetting("Weekly", "", "a few"),
	}

	ws := ComputeActiveColors(settings, mondayWeek10)
	assert.True(t, ws.Status[ColorGarbage])
	assert.True(t, ws.Status[ColorRecycling])
}

func TestParseBinCount(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"2", 2},
		{" 3 ", 3},
		{"0", 0},
		{"", 1},
		{"two", 1},
		{"-4", 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ParseBinCount(tc.input), "ParseBinCount(%q)", tc.input)
	}
}

func TestParseFrequency(t *testing.T) {
	assert.Equal(t, FreqWeekly, ParseFrequency(" weekly "))
	assert.Equal(t, FreqFortnightly, ParseFrequency("FORTNIGHTLY"))
	assert.Equal(t, FreqUnset, ParseFrequency(""))
	assert.Equal(t, FreqUnset, ParseFrequency("biweekly"))
}

func TestFortnightlyFlipsAcrossLongIsoYear(t *testing.T) {
	settings := map[Color]BinSetting{
		ColorGarbage: ParseBinSetting("Fortnightly", "Yes", "1"),
	}

	// 2026 has 53 ISO weeks: 2026-12-28 starts week 53, 2027-01-04 starts
	// week 1. Raw ISO week parity would put both on the odd side.
	wk53 := ComputeActiveColors(settings, time.Date(2026, 12, 28, 10, 0, 0, 0, time.UTC))
	wk1 := ComputeActiveColors(settings, time.Date(2027, 1, 4, 10, 0, 0, 0, time.UTC))

	assert.NotEqual(t, wk53.Status[ColorGarbage], wk1.Status[ColorGarbage],
		"fortnightly activation must keep alternating across the 53-week year boundary")
}

func TestEpochParityIgnoresZoneOffsets(t *testing.T) {
	settings := map[Color]BinSetting{
		ColorGarbage: ParseBinSetting("Fortnightly", "", "1"),
	}

	// Epoch as parsed from config (UTC midnight), references from a
	// UTC+10 server clock. The offset gap must not bleed into the week count.
	cal := Calendar{Epoch: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}
	brisbane := time.FixedZone("AEST", 10*60*60)

	week10 := cal.ComputeActiveColors(settings, time.Date(2026, 3, 4, 9, 0, 0, 0, brisbane))
	week11 := cal.ComputeActiveColors(settings, time.Date(2026, 3, 11, 9, 0, 0, 0, brisbane))

	assert.True(t, week10.Status[ColorGarbage], "the epoch's own week is a base week")
	assert.False(t, week11.Status[ColorGarbage])
	assert.NotEqual(t, week10.Status[ColorGarbage], week11.Status[ColorGarbage])
}

func TestCalendarEpochAnchorsParity(t *testing.T) {
	settings := map[Color]BinSetting{
		ColorCompost: ParseBinSetting("Fortnightly", "", "1"),
	}

	// Epoch inside week 10 makes week 10 the base week, regardless of its
	// ISO week number.
	cal := Calendar{Epoch: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)}

	assert.True(t, cal.ComputeActiveColors(settings, mondayWeek10).Status[ColorCompost])
	assert.False(t, cal.ComputeActiveColors(settings, mondayWeek11).Status[ColorCompost])
	assert.True(t, cal.ComputeActiveColors(settings, mondayWeek11.AddDate(0, 0, 7)).Status[ColorCompost])

	// A reference date before the epoch still alternates correctly.
	assert.False(t, cal.ComputeActiveColors(settings, mondayWeek10.AddDate(0, 0, -7)).Status[ColorCompost])
}
