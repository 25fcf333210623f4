package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPutOutWeekdayUsesPropertyDay(t *testing.T) {
	assert.Equal(t, time.Sunday, putOutWeekday("Sunday", time.Monday))
	assert.Equal(t, time.Wednesday, putOutWeekday("wed", time.Thursday))
}

func TestPutOutWeekdayFallsBackToCollectionDay(t *testing.T) {
	for _, raw := range []string{"", "yes", "Thurs", "tomorrow"} {
		assert.Equal(t, time.Friday, putOutWeekday(raw, time.Friday),
			"putOutWeekday(%q) must fall back to the collection day", raw)
	}
}
