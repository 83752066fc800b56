// ABOUTME: Tests for the calendar binding arena
// ABOUTME: Covers binding idempotence, visibility gating, and late-result application
package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomly-app/roomly/models"
)

func allVisible(string) bool { return true }

func noneVisible(string) bool { return false }

// Activating a portal any number of times never creates a second binding for
// the same element.
func TestRegisterIdempotent(t *testing.T) {
	a := NewAdapter(time.UTC)

	h1 := a.Register("calendar-student", "student")
	h2 := a.Register("calendar-student", "student")

	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, a.BindingCount("calendar-student"))

	for i := 0; i < 5; i++ {
		a.Activate("student", allVisible)
	}
	assert.Equal(t, 1, a.BindingCount("calendar-student"))
}

// Two elements sharing a portal get independent bindings.
func TestPerElementBindings(t *testing.T) {
	a := NewAdapter(time.UTC)

	h1 := a.Register("calendar-club-top", "club")
	h2 := a.Register("calendar-club-side", "club")

	assert.NotEqual(t, h1, h2)
	reqs := a.Activate("club", allVisible)
	assert.Len(t, reqs, 2)
}

func TestActivateSkipsHiddenElements(t *testing.T) {
	a := NewAdapter(time.UTC)
	h := a.Register("calendar-admin", "administration")

	reqs := a.Activate("administration", noneVisible)
	assert.Empty(t, reqs, "hidden elements defer their refresh")
	assert.False(t, a.Widget(h).Rendered())

	reqs = a.Activate("administration", allVisible)
	require.Len(t, reqs, 1)
	assert.Equal(t, h, reqs[0].Handle)
	assert.True(t, a.Widget(h).Rendered())
}

func TestActivateScopedToPortal(t *testing.T) {
	a := NewAdapter(time.UTC)
	a.Register("calendar-student", "student")
	a.Register("calendar-club", "club")

	reqs := a.Activate("club", allVisible)
	require.Len(t, reqs, 1)
	assert.Equal(t, "club", a.Portal(reqs[0].Handle))
}

// Re-activation re-issues the fetch even though the binding is reused.
func TestReactivationReissuesFetch(t *testing.T) {
	a := NewAdapter(time.UTC)
	a.Register("calendar-student", "student")

	first := a.Activate("student", allVisible)
	second := a.Activate("student", allVisible)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0], second[0])
}

// A fetch that resolves after the element was hidden still lands in its
// widget; the data simply waits for the next render.
func TestLateResultStillApplies(t *testing.T) {
	a := NewAdapter(time.UTC)
	h := a.Register("calendar-student", "student")
	a.Activate("student", allVisible)

	// Element becomes hidden before the fetch resolves.
	a.Activate("student", noneVisible)
	a.ApplyEvents(h, []models.Event{{ID: "1", Title: "late", Start: time.Now().UTC()}})

	w := a.Widget(h)
	require.NotNil(t, w)
	assert.Contains(t, w.View(), "late")
}

func TestApplyErrorClearsRange(t *testing.T) {
	a := NewAdapter(time.UTC)
	h := a.Register("calendar-student", "student")
	a.ApplyEvents(h, []models.Event{{ID: "1", Title: "gone", Start: time.Now().UTC()}})
	a.ApplyError(h)
	assert.NotContains(t, a.Widget(h).View(), "gone")
}

func TestShiftMovesRange(t *testing.T) {
	a := NewAdapter(time.UTC)
	h := a.Register("calendar-student", "student")

	w := a.Widget(h)
	start, _ := w.Range()

	req, ok := a.Shift(h, 1)
	require.True(t, ok)
	assert.Equal(t, start.AddDate(0, 1, 0), req.Start)
	assert.Equal(t, start.AddDate(0, 2, 0), req.End)

	_, ok = a.Shift(Handle(99), 1)
	assert.False(t, ok)
}

func TestStyleClasses(t *testing.T) {
	ev := models.Event{EventType: "lesson", Status: "pending"}
	assert.Equal(t, []string{"event-lesson", "status-pending"}, StyleClasses(ev))
	assert.Empty(t, StyleClasses(models.Event{}))
}
