// ABOUTME: Tests for client-side RRULE occurrence expansion
// ABOUTME: Covers weekly series placement, UNTIL bounds, and fixed events
package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomly-app/roomly/models"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Almaty")
	require.NoError(t, err)
	return loc
}

func TestExpandWeeklySeries(t *testing.T) {
	loc := mustLoc(t)
	// Monday 3 June 2024, 14:00, weekly until 1 July.
	start := time.Date(2024, 6, 3, 14, 0, 0, 0, loc)
	events := []models.Event{{
		ID:       "7",
		Title:    "Chess club",
		Start:    start,
		RRule:    "FREQ=WEEKLY;UNTIL=20240701T235959",
		Duration: "01:00",
	}}

	rangeStart := time.Date(2024, 6, 1, 0, 0, 0, 0, loc)
	rangeEnd := time.Date(2024, 8, 1, 0, 0, 0, 0, loc)
	occs := Expand(events, rangeStart, rangeEnd, loc)

	// 3, 10, 17, 24 June and 1 July.
	require.Len(t, occs, 5)
	for i, occ := range occs {
		assert.Equal(t, time.Monday, occ.Start.Weekday(), "occurrence %d", i)
		assert.Equal(t, 14, occ.Start.Hour())
		assert.Equal(t, occ.Start.Add(time.Hour), occ.End)
		assert.False(t, occ.Start.After(time.Date(2024, 7, 1, 23, 59, 59, 0, loc)),
			"occurrence %d must not pass UNTIL", i)
	}
}

func TestExpandWindowClipsSeries(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, loc)
	events := []models.Event{{ID: "1", Start: start, RRule: "FREQ=DAILY", Duration: "00:30"}}

	rangeStart := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)
	rangeEnd := time.Date(2024, 6, 13, 0, 0, 0, 0, loc)
	occs := Expand(events, rangeStart, rangeEnd, loc)

	require.Len(t, occs, 3)
	assert.Equal(t, 10, occs[0].Start.Day())
	assert.Equal(t, 12, occs[2].Start.Day())
}

// An occurrence landing exactly on the range end belongs to the next
// window, not this one.
func TestExpandEndBoundExclusive(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, loc)
	events := []models.Event{{ID: "1", Start: start, RRule: "FREQ=DAILY", Duration: "01:00"}}

	rangeEnd := time.Date(2024, 7, 1, 0, 0, 0, 0, loc)
	occs := Expand(events, start, rangeEnd, loc)

	require.Len(t, occs, 30, "June has 30 days; 1 July midnight is out of range")
	for _, occ := range occs {
		assert.True(t, occ.Start.Before(rangeEnd))
	}
}

func TestExpandFixedEvent(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2024, 6, 5, 10, 0, 0, 0, loc)
	end := start.Add(90 * time.Minute)
	events := []models.Event{
		{ID: "in", Start: start, End: &end},
		{ID: "out", Start: start.AddDate(0, 2, 0), End: ptrTime(end.AddDate(0, 2, 0))},
	}

	occs := Expand(events,
		time.Date(2024, 6, 1, 0, 0, 0, 0, loc),
		time.Date(2024, 7, 1, 0, 0, 0, 0, loc),
		loc)

	require.Len(t, occs, 1)
	assert.Equal(t, "in", occs[0].Event.ID)
	assert.Equal(t, end, occs[0].End)
}

func TestExpandSkipsBadRule(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2024, 6, 5, 10, 0, 0, 0, loc)
	end := start.Add(time.Hour)
	events := []models.Event{
		{ID: "bad", Start: start, RRule: "FREQ=???"},
		{ID: "good", Start: start, End: &end},
	}

	occs := Expand(events,
		time.Date(2024, 6, 1, 0, 0, 0, 0, loc),
		time.Date(2024, 7, 1, 0, 0, 0, 0, loc),
		loc)

	require.Len(t, occs, 1)
	assert.Equal(t, "good", occs[0].Event.ID)
}

func ptrTime(t time.Time) *time.Time { return &t }
