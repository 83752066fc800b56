// ABOUTME: Calendar binding arena with visibility-gated activation
// ABOUTME: One lazily created widget per bound element, refreshed only while visible
package calendar

import (
	"context"
	"time"

	"github.com/roomly-app/roomly/models"
)

// Handle identifies one binding in the arena. Handles are generated
// integers, stable for the element's lifetime.
type Handle int

// FetchFunc retrieves events for a visible range [start, end). Failures are
// signalled, never retried; the widget shows an empty range instead.
type FetchFunc func(ctx context.Context, start, end time.Time) ([]models.Event, error)

// RefreshRequest asks the shell to run a fetch for one binding's visible
// range and feed the outcome back through ApplyEvents or ApplyError.
type RefreshRequest struct {
	Handle Handle
	Start  time.Time
	End    time.Time
}

type binding struct {
	element string
	portal  string
	widget  *Widget
}

// Adapter owns the arena. It is touched only from the shell's single update
// goroutine, so access needs ordering, not locking.
type Adapter struct {
	bindings  map[Handle]*binding
	byElement map[string]Handle
	next      Handle
	loc       *time.Location
	now       func() time.Time
}

// NewAdapter creates an empty arena rendering in the given timezone.
func NewAdapter(loc *time.Location) *Adapter {
	if loc == nil {
		loc = time.Local
	}
	return &Adapter{
		bindings:  make(map[Handle]*binding),
		byElement: make(map[string]Handle),
		loc:       loc,
		now:       time.Now,
	}
}

// Register declares a calendar-capable element under a portal. Elements may
// be registered any number of times; the binding is created once and the
// same handle comes back. Two elements sharing a portal still get
// independent bindings.
func (a *Adapter) Register(element, portal string) Handle {
	if h, ok := a.byElement[element]; ok {
		return h
	}
	a.next++
	h := a.next
	a.bindings[h] = &binding{
		element: element,
		portal:  portal,
		widget:  newWidget(a.now().In(a.loc), a.loc),
	}
	a.byElement[element] = h
	return h
}

// Activate walks every element bound under the portal. Visible elements get
// a forced render plus a refetch of their current range; hidden ones keep
// their binding untouched for a deferred refresh. Re-activation is
// idempotent in effect but still re-issues fetches.
func (a *Adapter) Activate(portal string, visible func(element string) bool) []RefreshRequest {
	var reqs []RefreshRequest
	for h, b := range a.bindings {
		if b.portal != portal {
			continue
		}
		if visible != nil && !visible(b.element) {
			continue
		}
		b.widget.rendered = true
		start, end := b.widget.Range()
		reqs = append(reqs, RefreshRequest{Handle: h, Start: start, End: end})
	}
	return reqs
}

// Widget returns the widget for a handle, or nil for an unknown one.
func (a *Adapter) Widget(h Handle) *Widget {
	if b, ok := a.bindings[h]; ok {
		return b.widget
	}
	return nil
}

// BindingCount reports how many bindings exist for the element.
func (a *Adapter) BindingCount(element string) int {
	if _, ok := a.byElement[element]; ok {
		return 1
	}
	return 0
}

// Portal returns the portal an element's binding belongs to.
func (a *Adapter) Portal(h Handle) string {
	if b, ok := a.bindings[h]; ok {
		return b.portal
	}
	return ""
}

// ApplyEvents installs a completed fetch into the binding's widget. A late
// result for a since-hidden element still lands; the widget simply is not
// drawn until it becomes visible again.
func (a *Adapter) ApplyEvents(h Handle, events []models.Event) {
	if b, ok := a.bindings[h]; ok {
		b.widget.setEvents(events)
	}
}

// ApplyError clears the binding's range after a failed fetch. No retry.
func (a *Adapter) ApplyError(h Handle) {
	if b, ok := a.bindings[h]; ok {
		b.widget.setEvents(nil)
	}
}

// Shift moves a binding's widget by months and returns the refetch for the
// new range.
func (a *Adapter) Shift(h Handle, months int) (RefreshRequest, bool) {
	b, ok := a.bindings[h]
	if !ok {
		return RefreshRequest{}, false
	}
	b.widget.shift(months)
	start, end := b.widget.Range()
	return RefreshRequest{Handle: h, Start: start, End: end}, true
}
