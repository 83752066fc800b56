// ABOUTME: ICS export of fetched calendar events
// ABOUTME: Writes one VEVENT per event, carrying RRULE for recurring series
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	ics "github.com/arran4/golang-ical"

	"github.com/roomly-app/roomly/models"
)

// DefaultPath returns where exports land by default.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "roomly", "roomly-export.ics")
}

// Calendar serializes the events into an iCalendar document. Fixed events
// get DTSTART/DTEND; recurring series keep their RRULE with a duration-based
// DTEND on the first instance.
func Calendar(events []models.Event, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for _, ev := range events {
		ve := cal.AddEvent(fmt.Sprintf("%s@roomly", ev.ID))
		ve.SetSummary(ev.Title)
		ve.SetStartAt(ev.Start.In(loc))
		if ev.RoomCode != "" {
			ve.SetLocation(ev.RoomCode)
		}

		switch {
		case ev.RRule != "":
			ve.AddRrule(ev.RRule)
			ve.SetEndAt(ev.Start.In(loc).Add(durationOf(ev)))
		case ev.End != nil:
			ve.SetEndAt(ev.End.In(loc))
		default:
			ve.SetEndAt(ev.Start.In(loc))
		}
	}
	return cal.Serialize()
}

// WriteFile exports the events to path, creating parent directories.
func WriteFile(path string, events []models.Event, loc *time.Location) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Calendar(events, loc)), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func durationOf(ev models.Event) time.Duration {
	var h, m int
	if _, err := fmt.Sscanf(ev.Duration, "%d:%d", &h, &m); err == nil && h*60+m > 0 {
		return time.Duration(h*60+m) * time.Minute
	}
	return time.Hour
}
