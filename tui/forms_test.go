// ABOUTME: Tests for form validation and payload assembly
// ABOUTME: Covers one-off and repeating bookings plus the room save payload
package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillBooking(f *form, values map[int]string) {
	for i, v := range values {
		f.fields[i].input.SetValue(v)
	}
}

func TestBookingPayloadRepeating(t *testing.T) {
	fs := newFormSet()
	fillBooking(fs.booking, map[int]string{
		bkTitle:  "Chess practice",
		bkDate:   "2024-06-03",
		bkStart:  "14:00",
		bkEnd:    "15:00",
		bkRepeat: "weekly",
		bkUntil:  "2024-07-01",
		bkRoom:   "A-101",
	})

	clubID := int64(7)
	payload, err := buildBookingPayload(fs.booking, &clubID, "Asia/Almaty", "event")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-03T14:00:00", payload.StartsAt)
	require.NotNil(t, payload.RRule)
	assert.Equal(t, "FREQ=WEEKLY;UNTIL=20240701T235959", *payload.RRule)
	require.NotNil(t, payload.DurationMinutes)
	assert.Equal(t, 60, *payload.DurationMinutes)
	assert.Nil(t, payload.EndsAt, "repeating bookings carry no concrete end")
	assert.Equal(t, "Asia/Almaty", payload.Timezone)
	require.NotNil(t, payload.ClubID)
	assert.Equal(t, int64(7), *payload.ClubID)
	require.NotNil(t, payload.RoomCode)
	assert.Equal(t, "A-101", *payload.RoomCode)
	assert.Equal(t, "event", payload.EventType, "club bookings are always events")
}

func TestBookingPayloadOneOff(t *testing.T) {
	fs := newFormSet()
	fillBooking(fs.booking, map[int]string{
		bkTitle: "Rehearsal",
		bkDate:  "2024-06-03",
		bkStart: "14:00",
		bkEnd:   "15:30",
	})

	payload, err := buildBookingPayload(fs.booking, nil, "Asia/Almaty", "")
	require.NoError(t, err)

	require.NotNil(t, payload.EndsAt)
	assert.Equal(t, "2024-06-03T15:30:00", *payload.EndsAt)
	assert.Nil(t, payload.RRule)
	assert.Nil(t, payload.DurationMinutes)
	assert.Equal(t, "lesson", payload.EventType, "administration bookings default to lesson")
}

func TestBookingPayloadParticipants(t *testing.T) {
	fs := newFormSet()
	fillBooking(fs.booking, map[int]string{
		bkTitle:        "Exam",
		bkDate:         "2024-06-03",
		bkStart:        "09:00",
		bkEnd:          "11:00",
		bkParticipants: "3, 4,5",
	})

	payload, err := buildBookingPayload(fs.booking, nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 5}, payload.ParticipantIDs)

	fs.booking.fields[bkParticipants].input.SetValue("3,four")
	_, err = buildBookingPayload(fs.booking, nil, "", "")
	assert.Error(t, err)
}

func TestBookingPayloadValidation(t *testing.T) {
	tests := []struct {
		name   string
		values map[int]string
	}{
		{"missing title", map[int]string{bkDate: "2024-06-03", bkStart: "14:00", bkEnd: "15:00"}},
		{"missing end", map[int]string{bkTitle: "x", bkDate: "2024-06-03", bkStart: "14:00"}},
		{"bad type", map[int]string{bkTitle: "x", bkType: "party", bkDate: "2024-06-03", bkStart: "14:00", bkEnd: "15:00"}},
		{"repeating end before start", map[int]string{
			bkTitle: "x", bkDate: "2024-06-03", bkStart: "15:00", bkEnd: "14:00",
			bkRepeat: "weekly", bkUntil: "2024-07-01",
		}},
		{"one-off end before start", map[int]string{
			bkTitle: "x", bkDate: "2024-06-03", bkStart: "10:00", bkEnd: "09:00",
		}},
		{"one-off zero duration", map[int]string{
			bkTitle: "x", bkDate: "2024-06-03", bkStart: "10:00", bkEnd: "10:00",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFormSet()
			fillBooking(fs.booking, tt.values)
			_, err := buildBookingPayload(fs.booking, nil, "", "")
			assert.Error(t, err)
		})
	}
}

func TestRoomPayload(t *testing.T) {
	fs := newFormSet()
	f := fs.room
	f.fields[rmCode].input.SetValue("B-202")
	f.fields[rmBuilding].input.SetValue("Main")
	f.fields[rmCapacity].input.SetValue("30")
	f.fields[rmActive].input.SetValue("yes")

	payload, err := buildRoomPayload(f, false)
	require.NoError(t, err)
	assert.Equal(t, "B-202", payload.Code)
	require.NotNil(t, payload.Building)
	assert.Equal(t, "Main", *payload.Building)
	require.NotNil(t, payload.Capacity)
	assert.Equal(t, 30, *payload.Capacity)
	assert.True(t, payload.IsActive)
}

func TestRoomPayloadEditOmitsCode(t *testing.T) {
	fs := newFormSet()
	fs.room.fields[rmCode].input.SetValue("B-202")
	fs.room.fields[rmActive].input.SetValue("no")

	payload, err := buildRoomPayload(fs.room, true)
	require.NoError(t, err)
	assert.Empty(t, payload.Code, "the path carries the code on update")
	assert.False(t, payload.IsActive)
}

func TestRoomPayloadRequiresCodeOnCreate(t *testing.T) {
	fs := newFormSet()
	_, err := buildRoomPayload(fs.room, false)
	assert.Error(t, err)
}

func TestRoomPayloadRejectsBadCapacity(t *testing.T) {
	fs := newFormSet()
	fs.room.fields[rmCode].input.SetValue("B-202")
	fs.room.fields[rmCapacity].input.SetValue("lots")
	_, err := buildRoomPayload(fs.room, false)
	assert.Error(t, err)
}

func TestFormFocusCycle(t *testing.T) {
	fs := newFormSet()
	f := fs.role
	f.focusField(0)
	f.next()
	assert.Equal(t, 1, f.focus)
	f.next()
	assert.Equal(t, 0, f.focus, "focus wraps")
	f.prev()
	assert.Equal(t, 1, f.focus)
}
