// ABOUTME: Client-side occurrence expansion for recurring events
// ABOUTME: Materializes RRULE series into concrete instances inside a visible range
package recurrence

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/roomly-app/roomly/models"
)

// maxOccurrencesPerEvent caps expansion of unbounded series so a month view
// never materializes a runaway rule.
const maxOccurrencesPerEvent = 500

// defaultDurationMinutes is used when a recurring event carries no usable
// duration, matching the backend's fallback.
const defaultDurationMinutes = 60

// Occurrence is one concrete instance of an event after expansion, in the
// display timezone.
type Occurrence struct {
	Event models.Event
	Start time.Time
	End   time.Time
}

// Expand materializes the given events into occurrences intersecting
// [rangeStart, rangeEnd). Fixed events contribute at most one occurrence;
// RRULE events are expanded with their HH:MM duration applied to every
// instance. An unparsable rule drops only that event, never its siblings.
func Expand(events []models.Event, rangeStart, rangeEnd time.Time, loc *time.Location) []Occurrence {
	if loc == nil {
		loc = time.Local
	}

	var out []Occurrence
	for _, ev := range events {
		if ev.RRule == "" {
			end := ev.Start
			if ev.End != nil {
				end = *ev.End
			}
			if end.Before(rangeStart) || !ev.Start.Before(rangeEnd) {
				continue
			}
			out = append(out, Occurrence{Event: ev, Start: ev.Start.In(loc), End: end.In(loc)})
			continue
		}

		rule, err := rrule.StrToRRule(ev.RRule)
		if err != nil {
			log.Printf("recurrence: skipping event %s, bad rule %q: %v", ev.ID, ev.RRule, err)
			continue
		}
		rule.DTStart(ev.Start.In(loc))

		dur := time.Duration(durationMinutes(ev)) * time.Minute
		times := rule.Between(rangeStart.In(loc), rangeEnd.In(loc), true)
		if len(times) > maxOccurrencesPerEvent {
			times = times[:maxOccurrencesPerEvent]
		}
		for _, start := range times {
			// Between is inclusive of both bounds; the range is [start, end).
			if !start.Before(rangeEnd) {
				continue
			}
			out = append(out, Occurrence{
				Event: ev,
				Start: start.In(loc),
				End:   start.In(loc).Add(dur),
			})
		}
	}
	return out
}

// durationMinutes reads the event's "HH:MM" duration string, falling back to
// the span between start and end, then to the default.
func durationMinutes(ev models.Event) int {
	if h, m, ok := strings.Cut(ev.Duration, ":"); ok {
		hours, errH := strconv.Atoi(h)
		minutes, errM := strconv.Atoi(m)
		if errH == nil && errM == nil && hours*60+minutes > 0 {
			return hours*60 + minutes
		}
	}
	if ev.End != nil {
		if span := int(ev.End.Sub(ev.Start).Minutes()); span > 0 {
			return span
		}
	}
	return defaultDurationMinutes
}
