// ABOUTME: Form definitions and submission payload builders
// ABOUTME: Booking, member, room, and assignment forms backed by textinput fields
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roomly-app/roomly/models"
	"github.com/roomly-app/roomly/recurrence"
)

// Form names double as status-region keys.
const (
	formBooking = "booking"
	formMember  = "member"
	formRoom    = "room"
	formRole    = "role"
	formClub    = "club"
	formLeader  = "leader"
)

// Booking form field indices.
const (
	bkTitle = iota
	bkDescription
	bkType
	bkDate
	bkStart
	bkEnd
	bkRepeat
	bkUntil
	bkRoom
	bkParticipants
)

// Room form field indices.
const (
	rmCode = iota
	rmBuilding
	rmFloor
	rmType
	rmCapacity
	rmActive
)

type field struct {
	label string
	input textinput.Model
}

type form struct {
	name   string
	fields []*field
	focus  int
}

func newField(label, placeholder string, width int) *field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = width
	return &field{label: label, input: in}
}

func newForm(name string, fields ...*field) *form {
	return &form{name: name, fields: fields}
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

func (f *form) focusField(i int) {
	for j, fl := range f.fields {
		if j == i {
			fl.input.Focus()
		} else {
			fl.input.Blur()
		}
	}
	f.focus = i
}

func (f *form) next() { f.focusField((f.focus + 1) % len(f.fields)) }
func (f *form) prev() { f.focusField((f.focus + len(f.fields) - 1) % len(f.fields)) }

func (f *form) blur() {
	for _, fl := range f.fields {
		fl.input.Blur()
	}
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) reset() {
	for _, fl := range f.fields {
		fl.input.SetValue("")
	}
	f.focusField(0)
}

// formSet holds every form the shell renders. editRoomCode, when set, flips
// the room form from create to update against that code.
type formSet struct {
	booking *form
	member  *form
	room    *form
	role    *form
	club    *form
	leader  *form

	editRoomCode string
}

func newFormSet() *formSet {
	return &formSet{
		booking: newForm(formBooking,
			newField("Title", "Chess practice", 32),
			newField("Description", "", 32),
			newField("Type", "event or lesson", 12),
			newField("Date", "YYYY-MM-DD", 12),
			newField("Start", "HH:MM", 7),
			newField("End", "HH:MM", 7),
			newField("Repeat", "none, daily, weekly, monthly", 12),
			newField("Until", "YYYY-MM-DD", 12),
			newField("Room", "A-101", 10),
			newField("Participants", "user ids, comma separated", 24),
		),
		member: newForm(formMember,
			newField("Email", "member@school.edu", 32),
		),
		room: newForm(formRoom,
			newField("Code", "A-101", 10),
			newField("Building", "", 16),
			newField("Floor", "", 6),
			newField("Type", "classroom", 14),
			newField("Capacity", "", 6),
			newField("Active", "yes or no", 8),
		),
		role: newForm(formRole,
			newField("Email", "user@school.edu", 32),
			newField("Role", "student, club_leader, admin", 16),
		),
		club: newForm(formClub,
			newField("Name", "Chess Club", 24),
			newField("Owner email", "optional", 32),
		),
		leader: newForm(formLeader,
			newField("Club", "Chess Club", 24),
			newField("Email", "leader@school.edu", 32),
		),
	}
}

func (fs *formSet) byName(name string) *form {
	switch name {
	case formBooking:
		return fs.booking
	case formMember:
		return fs.member
	case formRoom:
		return fs.room
	case formRole:
		return fs.role
	case formClub:
		return fs.club
	case formLeader:
		return fs.leader
	}
	return nil
}

func (fs *formSet) reset(name string) {
	if name == formRoom {
		fs.editRoomCode = ""
	}
	if f := fs.byName(name); f != nil {
		f.reset()
	}
}

// buildBookingPayload validates the booking form and assembles the wire
// payload. A repeating booking carries rrule plus a minute duration and a
// null end; a one-off carries a concrete end and no rule. A non-empty
// fixedType overrides the type field; club bookings are always "event",
// administration bookings default to "lesson".
func buildBookingPayload(f *form, clubID *int64, timezone, fixedType string) (models.EventCreate, error) {
	var payload models.EventCreate

	title := f.value(bkTitle)
	date := f.value(bkDate)
	start := f.value(bkStart)
	end := f.value(bkEnd)
	if title == "" || date == "" || start == "" || end == "" {
		return payload, fmt.Errorf("title, date, start and end are required")
	}

	eventType := fixedType
	if eventType == "" {
		eventType = f.value(bkType)
	}
	if eventType == "" {
		eventType = models.EventTypeLesson
	}
	if eventType != models.EventTypeEvent && eventType != models.EventTypeLesson {
		return payload, fmt.Errorf("type must be event or lesson")
	}

	participants, err := parseParticipants(f.value(bkParticipants))
	if err != nil {
		return payload, err
	}

	payload = models.EventCreate{
		Title:          title,
		Description:    f.value(bkDescription),
		EventType:      eventType,
		StartsAt:       recurrence.BuildDateTime(date, start),
		Timezone:       timezone,
		ClubID:         clubID,
		ParticipantIDs: participants,
	}
	if room := f.value(bkRoom); room != "" {
		payload.RoomCode = &room
	}

	// End must land after start regardless of recurrence.
	minutes, err := recurrence.MinutesBetween(start, end)
	if err != nil {
		return payload, err
	}
	if minutes <= 0 {
		return payload, fmt.Errorf("end must be after start")
	}

	rule := recurrence.BuildRRule(f.value(bkRepeat), f.value(bkUntil))
	if rule == "" {
		ends := recurrence.BuildDateTime(date, end)
		payload.EndsAt = &ends
		return payload, nil
	}
	payload.RRule = &rule
	payload.DurationMinutes = &minutes
	return payload, nil
}

func parseParticipants(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("participants must be numeric user ids")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// buildRoomPayload validates the room form into a save payload. The code
// field is ignored when editing; the path carries it instead.
func buildRoomPayload(f *form, editing bool) (models.RoomSave, error) {
	var payload models.RoomSave

	code := f.value(rmCode)
	if !editing {
		if code == "" {
			return payload, fmt.Errorf("room code is required")
		}
		payload.Code = code
	}

	if v := f.value(rmBuilding); v != "" {
		payload.Building = &v
	}
	if v := f.value(rmFloor); v != "" {
		payload.Floor = &v
	}
	if v := f.value(rmType); v != "" {
		payload.RoomType = &v
	}
	if v := f.value(rmCapacity); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return payload, fmt.Errorf("capacity must be a non-negative number")
		}
		payload.Capacity = &n
	}
	payload.IsActive = f.value(rmActive) != "no"
	return payload, nil
}

// prefillRoom loads an existing room into the form for editing.
func (fs *formSet) prefillRoom(room models.Room) {
	fs.editRoomCode = room.Code
	f := fs.room
	f.fields[rmCode].input.SetValue(room.Code)
	f.fields[rmBuilding].input.SetValue(room.Building)
	f.fields[rmFloor].input.SetValue(room.Floor)
	f.fields[rmType].input.SetValue(room.RoomType)
	if room.Capacity != nil {
		f.fields[rmCapacity].input.SetValue(strconv.Itoa(*room.Capacity))
	} else {
		f.fields[rmCapacity].input.SetValue("")
	}
	if room.IsActive {
		f.fields[rmActive].input.SetValue("yes")
	} else {
		f.fields[rmActive].input.SetValue("no")
	}
	f.focusField(0)
}

var successTexts = map[string]string{
	formBooking: "Booking submitted.",
	formMember:  "Member added.",
	formRoom:    "Room saved.",
	formRole:    "Role assigned.",
	formClub:    "Club created.",
	formLeader:  "Leader assigned.",
}

var failureTexts = map[string]string{
	formBooking: "Booking failed. Check the fields and try again.",
	formMember:  "Could not add member.",
	formRoom:    "Could not save room.",
	formRole:    "Could not assign role.",
	formClub:    "Could not create club.",
	formLeader:  "Could not assign leader.",
}

func successText(name string) string {
	if t, ok := successTexts[name]; ok {
		return t
	}
	return "Done."
}

func failureText(name string) string {
	if t, ok := failureTexts[name]; ok {
		return t
	}
	return "Request failed."
}
