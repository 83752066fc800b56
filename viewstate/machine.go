// ABOUTME: Top-level navigation state machine for the role-gated portals
// ABOUTME: Owns the active view, per-portal tab indices, and the selected-club token
package viewstate

import (
	"sync"

	"github.com/roomly-app/roomly/access"
	"github.com/roomly-app/roomly/models"
)

// Top is the top-level view: role selection or exactly one portal.
type Top int

const (
	TopSelectRole Top = iota
	TopPortal
)

// Messages surfaced through the auth banner.
const (
	msgAccessDenied   = "Access denied."
	msgPortalNotFound = "Portal not found. Please reload the app."
)

// State is every piece of UI state that used to live in ambient globals:
// the active view, each portal's remembered tab, the selected club, and the
// current auth banner. Loaders that need a field read it through the
// machine, never from package state.
type State struct {
	Top     Top
	Portal  string         // active portal key when Top == TopPortal
	Tabs    map[string]int // per-portal active tab; portals never share an index
	Role    string         // authenticated role, "" when none
	Blocked bool           // auth blocked: portal entry refused
	Message string         // auth banner, "" when hidden

	SelectedClubID   int64
	SelectedClubName string
}

// Hooks are the machine's one-time activation side effects. Both are
// idempotent "refresh if visible" operations, which is what makes repeated
// activation of the same portal safe.
type Hooks struct {
	ActivateCalendars func(portal string)
	LoadPortal        func(portal string)
	LoadClubMembers   func()
}

// Machine drives transitions. All methods run on the shell's update
// goroutine, except the club-selection accessors: the members loader reads
// the selection from a loader goroutine, so those fields sit behind selMu.
type Machine struct {
	state   State
	portals map[string]bool
	hooks   Hooks

	selMu sync.RWMutex // guards state.SelectedClubID / state.SelectedClubName
}

// New creates a machine in the role-selection state with the given portals
// configured.
func New(portals []string, hooks Hooks) *Machine {
	known := make(map[string]bool, len(portals))
	for _, p := range portals {
		known[access.NormalizePortal(p)] = true
	}
	return &Machine{
		state:   State{Top: TopSelectRole, Tabs: make(map[string]int)},
		portals: known,
		hooks:   hooks,
	}
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	m.selMu.RLock()
	s := m.state
	m.selMu.RUnlock()
	s.Tabs = make(map[string]int, len(m.state.Tabs))
	for k, v := range m.state.Tabs {
		s.Tabs[k] = v
	}
	return s
}

// Boot applies the bootstrap outcome: a blocked identity is pinned to role
// selection, a resolved identity lands in its default portal, and no
// identity shows role selection with student-level affordances.
func (m *Machine) Boot(identity *models.Identity, blocked bool, message string) {
	m.state.Message = message
	m.state.Blocked = blocked

	if blocked {
		m.state.Role = ""
		m.SelectRole()
		return
	}
	if identity == nil {
		m.state.Role = models.RoleStudent
		m.SelectRole()
		return
	}
	m.state.Role = identity.Role
	m.Enter(access.DefaultView(identity.Role))
}

// AllowedPortals lists the portals the current identity may enter, for
// rendering the role buttons.
func (m *Machine) AllowedPortals() map[string]bool {
	if m.state.Blocked {
		return map[string]bool{}
	}
	return access.AllowedViews(m.state.Role)
}

// Label returns the header label for the current identity.
func (m *Machine) Label() string {
	return access.Label(m.state.Role)
}

// Enter moves into a portal. Denied grants and blocked sessions are no-ops
// beyond the banner message; an unconfigured portal falls back to role
// selection. On success the portal's calendars are activated and its
// loaders run, as a one-time transition side effect.
func (m *Machine) Enter(roleKey string) bool {
	portal := access.NormalizePortal(roleKey)

	if m.state.Blocked || !access.CanEnter(m.state.Role, portal) {
		m.state.Message = msgAccessDenied
		return false
	}
	if !m.portals[portal] {
		m.SelectRole()
		m.state.Message = msgPortalNotFound
		return false
	}

	m.state.Top = TopPortal
	m.state.Portal = portal
	m.state.Message = ""

	if m.hooks.ActivateCalendars != nil {
		m.hooks.ActivateCalendars(portal)
	}
	if m.hooks.LoadPortal != nil {
		m.hooks.LoadPortal(portal)
	}
	return true
}

// SelectRole hides any portal and shows role selection. Always permitted.
func (m *Machine) SelectRole() {
	m.state.Top = TopSelectRole
	m.state.Portal = ""
}

// ActivateTab switches a portal's tab and re-triggers activation scoped to
// that portal only; sibling portals keep their tabs and are not reloaded.
func (m *Machine) ActivateTab(portal string, index int) {
	portal = access.NormalizePortal(portal)
	m.state.Tabs[portal] = index

	if m.hooks.ActivateCalendars != nil {
		m.hooks.ActivateCalendars(portal)
	}
	if m.hooks.LoadPortal != nil {
		m.hooks.LoadPortal(portal)
	}
}

// ActiveTab returns a portal's remembered tab, default 0.
func (m *Machine) ActiveTab(portal string) int {
	return m.state.Tabs[access.NormalizePortal(portal)]
}

// SelectClub records the club portal's selection and synchronously issues
// the dependent member-list load, so the write is observed before anything
// else interleaves.
func (m *Machine) SelectClub(id int64, name string) {
	m.selMu.Lock()
	m.state.SelectedClubID = id
	m.state.SelectedClubName = name
	m.selMu.Unlock()
	if m.hooks.LoadClubMembers != nil {
		m.hooks.LoadClubMembers()
	}
}

// SelectedClubName returns the club selection token ("" when none). Safe to
// call from loader goroutines.
func (m *Machine) SelectedClubName() string {
	m.selMu.RLock()
	defer m.selMu.RUnlock()
	return m.state.SelectedClubName
}

// SelectedClubID returns the selected club id (0 when none). Safe to call
// from loader goroutines.
func (m *Machine) SelectedClubID() int64 {
	m.selMu.RLock()
	defer m.selMu.RUnlock()
	return m.state.SelectedClubID
}

// ClearClubSelection resets the selector, e.g. when options fail to load.
func (m *Machine) ClearClubSelection() {
	m.selMu.Lock()
	m.state.SelectedClubID = 0
	m.state.SelectedClubName = ""
	m.selMu.Unlock()
}

// SetMessage updates the auth banner ("" clears it).
func (m *Machine) SetMessage(message string) {
	m.state.Message = message
}

// Fault forces a return to role selection after an unhandled runtime fault.
func (m *Machine) Fault(message string) {
	m.SelectRole()
	m.state.Message = message
}
