// ABOUTME: Month-grid calendar widget rendered with lipgloss
// ABOUTME: Expands recurring events into day cells; styling derives purely from event state
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/roomly-app/roomly/models"
	"github.com/roomly-app/roomly/recurrence"
)

const dayCellWidth = 14

var (
	monthTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(dayCellWidth)

	dayNumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	todayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	statusStyles = map[string]lipgloss.Style{
		models.StatusPending:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		models.StatusApproved: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		models.StatusRejected: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}

	defaultEventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// StyleClasses derives the widget's class list for an event from its type
// and status alone, so presentation never depends on load order.
func StyleClasses(ev models.Event) []string {
	var classes []string
	if ev.EventType != "" {
		classes = append(classes, "event-"+ev.EventType)
	}
	if ev.Status != "" {
		classes = append(classes, "status-"+ev.Status)
	}
	return classes
}

func eventStyle(ev models.Event) lipgloss.Style {
	if s, ok := statusStyles[ev.Status]; ok {
		return s
	}
	return defaultEventStyle
}

// Widget is one calendar instance: a focused month plus the events fetched
// for it. It is created once per binding and reused.
type Widget struct {
	focus    time.Time // first day of the focused month
	loc      *time.Location
	events   []models.Event
	rendered bool
}

func newWidget(now time.Time, loc *time.Location) *Widget {
	return &Widget{
		focus: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc),
		loc:   loc,
	}
}

// Range is the widget's visible range [start, end): the focused month.
func (w *Widget) Range() (time.Time, time.Time) {
	return w.focus, w.focus.AddDate(0, 1, 0)
}

func (w *Widget) setEvents(events []models.Event) {
	w.events = events
}

func (w *Widget) shift(months int) {
	w.focus = w.focus.AddDate(0, months, 0)
}

// Rendered reports whether the widget has been activated at least once.
func (w *Widget) Rendered() bool { return w.rendered }

// View draws the month grid. Recurring events are expanded client-side into
// their concrete occurrences inside the visible range.
func (w *Widget) View() string {
	start, end := w.Range()
	occs := recurrence.Expand(w.events, start, end, w.loc)

	byDay := make(map[int][]recurrence.Occurrence)
	for _, occ := range occs {
		byDay[occ.Start.Day()] = append(byDay[occ.Start.Day()], occ)
	}

	var b strings.Builder
	b.WriteString(monthTitleStyle.Render(w.focus.Format("January 2006")))
	b.WriteString("\n")

	for _, wd := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		b.WriteString(weekdayStyle.Render(wd))
	}
	b.WriteString("\n")

	today := time.Now().In(w.loc)
	daysInMonth := end.AddDate(0, 0, -1).Day()

	// Leading blanks up to the month's first weekday (Monday-based).
	offset := (int(w.focus.Weekday()) + 6) % 7
	day := 1
	for day <= daysInMonth {
		for col := 0; col < 7; col++ {
			if (day == 1 && col < offset) || day > daysInMonth {
				b.WriteString(strings.Repeat(" ", dayCellWidth))
				continue
			}
			b.WriteString(w.renderDayCell(day, byDay[day], today))
			day++
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (w *Widget) renderDayCell(day int, occs []recurrence.Occurrence, today time.Time) string {
	num := fmt.Sprintf("%2d", day)
	style := dayNumStyle
	if today.Year() == w.focus.Year() && today.Month() == w.focus.Month() && today.Day() == day {
		style = todayStyle
	}

	cell := style.Render(num)
	if len(occs) > 0 {
		label := occs[0].Event.Title
		if len(occs) > 1 {
			label = fmt.Sprintf("%d events", len(occs))
		}
		if r := []rune(label); len(r) > dayCellWidth-4 {
			label = string(r[:dayCellWidth-4])
		}
		cell += " " + eventStyle(occs[0].Event).Render(label)
	}
	if pad := dayCellWidth - lipgloss.Width(cell); pad > 0 {
		cell += strings.Repeat(" ", pad)
	}
	return cell
}
