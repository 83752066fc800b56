// ABOUTME: Terminal shell for the Roomly booking client, built on bubbletea
// ABOUTME: Wires the state machine, calendar adapter, and sync orchestrator into one update loop
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roomly-app/roomly/access"
	"github.com/roomly-app/roomly/api"
	"github.com/roomly-app/roomly/calendar"
	"github.com/roomly-app/roomly/debuglog"
	"github.com/roomly-app/roomly/models"
	"github.com/roomly-app/roomly/session"
	"github.com/roomly-app/roomly/syncer"
	"github.com/roomly-app/roomly/viewstate"
)

// faultMessage mirrors the mini-app's generic recovery banner.
const faultMessage = "Something went wrong. Please reopen the app."

// Calendar element ids, one per portal. Bindings are per element: a second
// element under the same portal would get its own.
var calendarElements = map[string]string{
	"calendar-student": access.PortalStudent,
	"calendar-club":    access.PortalClub,
	"calendar-admin":   access.PortalAdministration,
}

// calendarTab is the tab index showing each portal's calendar element.
var calendarTab = map[string]int{
	access.PortalStudent:        1,
	access.PortalClub:           1,
	access.PortalAdministration: 0,
}

// Messages flowing back into Update.
type (
	loadResultsMsg struct{ results []syncer.Result }

	calendarEventsMsg struct {
		handle calendar.Handle
		events []models.Event
		err    error
	}

	mutationDoneMsg struct {
		mutation syncer.Mutation
		form     string // status region for inline reporting
		reload   string // portal to fully reload when the mutation has no edge
		err      error
		results  []syncer.Result
	}

	exportDoneMsg struct {
		path string
		err  error
	}

	faultMsg struct{ err error }
)

// Model is the bubbletea model. All fields are owned by the update
// goroutine.
type Model struct {
	client  *api.Client
	store   *session.Store
	machine *viewstate.Machine
	adapter *calendar.Adapter
	orch    *syncer.Orchestrator
	ring    *debuglog.Ring
	loc     *time.Location

	// regions holds the latest result per loader name; a late result still
	// lands here even when its region is no longer visible.
	regions map[string]syncer.Result

	handles map[string]calendar.Handle // element id -> binding

	forms    *formSet
	statuses map[string]status
	tables   map[string]table.Model // admin listings keyed by loader name
	cursors  map[string]int         // plain-list cursors keyed by region

	boot    session.Outcome
	pending []tea.Cmd // activation side effects queued by machine hooks

	editing    bool // keystrokes flow into the current form field
	focusArea  int  // cycling focus over a tab's actionable areas
	showDebug  bool
	width      int
	height     int
	exportNote string
}

type status struct {
	text string
	kind string // "error" or "success"
}

// New builds the shell. The bootstrap outcome decides the initial view.
func New(client *api.Client, store *session.Store, boot session.Outcome, loc *time.Location, ring *debuglog.Ring) *Model {
	m := &Model{
		client:   client,
		store:    store,
		adapter:  calendar.NewAdapter(loc),
		ring:     ring,
		loc:      loc,
		regions:  make(map[string]syncer.Result),
		handles:  make(map[string]calendar.Handle),
		statuses: make(map[string]status),
		tables:   make(map[string]table.Model),
		cursors:  make(map[string]int),
		boot:     boot,
	}
	m.forms = newFormSet()

	m.machine = viewstate.New(access.Portals, viewstate.Hooks{
		ActivateCalendars: m.activateCalendars,
		LoadPortal:        m.queueLoad,
		LoadClubMembers:   m.queueMembersLoad,
	})
	m.orch = syncer.NewStandard(client, m.machine.SelectedClubName, nil)

	for element, portal := range calendarElements {
		m.handles[element] = m.adapter.Register(element, portal)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	m.machine.Boot(m.boot.Identity, m.boot.Blocked, m.boot.Message)
	if m.boot.Blocked {
		m.ring.Add("auth blocked: email required")
	}
	return tea.Batch(m.drainPending()...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loadResultsMsg:
		m.applyResults(msg.results)
		return m, tea.Batch(m.drainPending()...)

	case calendarEventsMsg:
		// Applies even when the target is hidden or stale by now.
		if msg.err != nil {
			m.adapter.ApplyError(msg.handle)
			m.ring.Add("calendar fetch failed: %v", msg.err)
		} else {
			m.adapter.ApplyEvents(msg.handle, msg.events)
		}
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case exportDoneMsg:
		if msg.err != nil {
			m.exportNote = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.exportNote = "Exported to " + msg.path
		}
		return m, nil

	case faultMsg:
		m.machine.Fault(faultMessage)
		m.ring.Enable("runtime fault")
		m.ring.Add("fault: %v", msg.err)
		m.showDebug = true
		return m, nil
	}
	return m, nil
}

// applyResults installs loader outcomes into their regions. Failed loaders
// land too; the region renders its empty state off the stored error.
func (m *Model) applyResults(results []syncer.Result) {
	for _, res := range results {
		m.regions[res.Loader] = res
		if res.Err != nil {
			m.ring.Add("loader %s failed: %v", res.Loader, res.Err)
		}
		if res.Loader == syncer.LoaderClubOptions {
			m.applyClubOptions(res)
		}
		m.refreshTable(res)
	}
}

// applyClubOptions auto-selects the first club, mirroring the dropdown's
// behavior, and triggers the dependent members load through the machine.
func (m *Model) applyClubOptions(res syncer.Result) {
	if res.Err != nil {
		m.machine.ClearClubSelection()
		return
	}
	clubs, _ := res.Data.([]models.Club)
	if len(clubs) == 0 {
		m.machine.ClearClubSelection()
		return
	}
	if m.machine.SelectedClubID() == 0 {
		m.machine.SelectClub(clubs[0].ID, clubs[0].Name)
	}
}

func (m *Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if msg.form != "" {
			m.statuses[msg.form] = status{text: failureText(msg.form), kind: "error"}
		}
		m.ring.Add("mutation %s failed: %v", msg.mutation, msg.err)
		return m, nil
	}
	if msg.form != "" {
		m.statuses[msg.form] = status{text: successText(msg.form), kind: "success"}
		m.forms.reset(msg.form)
	}
	m.applyResults(msg.results)
	if portal, ok := syncer.CalendarEdge(msg.mutation); ok {
		m.activateCalendars(portal)
	}
	if msg.reload != "" {
		m.queueLoad(msg.reload)
	}
	return m, tea.Batch(m.drainPending()...)
}

// activateCalendars is the machine's calendar hook: create-once bindings,
// then refresh only elements whose tab is actually visible.
func (m *Model) activateCalendars(portal string) {
	reqs := m.adapter.Activate(portal, m.elementVisible)
	for _, req := range reqs {
		m.pending = append(m.pending, m.fetchCalendarCmd(req))
	}
}

// elementVisible reports whether the element's portal and tab are the
// active ones, the terminal analog of a rendered layout box.
func (m *Model) elementVisible(element string) bool {
	portal, ok := calendarElements[element]
	if !ok {
		return false
	}
	s := m.machine.State()
	if s.Top != viewstate.TopPortal || s.Portal != portal {
		return false
	}
	return m.machine.ActiveTab(portal) == calendarTab[portal]
}

func (m *Model) queueLoad(portal string) {
	m.pending = append(m.pending, m.loadPortalCmd(portal))
}

func (m *Model) queueMembersLoad() {
	m.pending = append(m.pending, m.invalidateCmd(syncer.MutationClubSelected, ""))
}

func (m *Model) drainPending() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

// guard wraps command goroutines so an escaped panic becomes a faultMsg
// instead of killing the process.
func guard(fn func() tea.Msg) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = faultMsg{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		return fn()
	}
}

func (m *Model) loadPortalCmd(portal string) tea.Cmd {
	return guard(func() tea.Msg {
		return loadResultsMsg{results: m.orch.LoadAll(context.Background(), portal)}
	})
}

func (m *Model) invalidateCmd(mutation syncer.Mutation, form string) tea.Cmd {
	return guard(func() tea.Msg {
		return mutationDoneMsg{
			mutation: mutation,
			form:     form,
			results:  m.orch.Invalidate(context.Background(), mutation),
		}
	})
}

// mutateCmd runs a write call; on success the mutation's invalidation edge
// runs to completion before the message lands, so the UI effects of the
// mutation are complete when the status flips.
func (m *Model) mutateCmd(mutation syncer.Mutation, form string, call func(ctx context.Context) error) tea.Cmd {
	return guard(func() tea.Msg {
		ctx := context.Background()
		if err := call(ctx); err != nil {
			return mutationDoneMsg{mutation: mutation, form: form, err: err}
		}
		return mutationDoneMsg{
			mutation: mutation,
			form:     form,
			results:  m.orch.Invalidate(ctx, mutation),
		}
	})
}

// mutateReloadCmd is for writes without a static invalidation edge: on
// success the whole portal is reloaded instead.
func (m *Model) mutateReloadCmd(form, portal string, call func(ctx context.Context) error) tea.Cmd {
	return guard(func() tea.Msg {
		if err := call(context.Background()); err != nil {
			return mutationDoneMsg{form: form, err: err}
		}
		return mutationDoneMsg{form: form, reload: portal}
	})
}

func (m *Model) fetchCalendarCmd(req calendar.RefreshRequest) tea.Cmd {
	return guard(func() tea.Msg {
		events, err := m.client.Events(context.Background(), req.Start, req.End)
		return calendarEventsMsg{handle: req.Handle, events: events, err: err}
	})
}

func (m *Model) exportCmd() tea.Cmd {
	return guard(func() tea.Msg {
		return runExport(m.client, m.loc)
	})
}

// region fetches a loader's latest data, typed. The second return is false
// while the loader has not delivered or delivered an error.
func region[T any](m *Model, loader string) (T, bool) {
	var zero T
	res, ok := m.regions[loader]
	if !ok || res.Err != nil {
		return zero, false
	}
	data, ok := res.Data.(T)
	return data, ok
}
