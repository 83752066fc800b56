// ABOUTME: Tests for the navigation state machine
// ABOUTME: Covers boot routing, grant checks, tab scoping, and club selection ordering
package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomly-app/roomly/access"
	"github.com/roomly-app/roomly/models"
)

type hookLog struct {
	calendars []string
	loads     []string
	members   int
}

func newMachine(log *hookLog) *Machine {
	return New(access.Portals, Hooks{
		ActivateCalendars: func(p string) { log.calendars = append(log.calendars, p) },
		LoadPortal:        func(p string) { log.loads = append(log.loads, p) },
		LoadClubMembers:   func() { log.members++ },
	})
}

// A student identity boots straight into the student portal; club and admin
// stay out of the allowed set.
func TestBootStudent(t *testing.T) {
	log := &hookLog{}
	m := newMachine(log)

	m.Boot(&models.Identity{ID: 1, Role: models.RoleStudent}, false, "")

	s := m.State()
	assert.Equal(t, TopPortal, s.Top)
	assert.Equal(t, access.PortalStudent, s.Portal)
	assert.Empty(t, s.Message)

	allowed := m.AllowedPortals()
	assert.True(t, allowed[access.PortalStudent])
	assert.False(t, allowed[access.PortalClub])
	assert.False(t, allowed[access.PortalAdministration])

	assert.Equal(t, []string{access.PortalStudent}, log.calendars)
	assert.Equal(t, []string{access.PortalStudent}, log.loads)
}

func TestBootDefaultViews(t *testing.T) {
	tests := []struct {
		role   string
		portal string
	}{
		{models.RoleAdministration, access.PortalAdministration},
		{models.RoleAdmin, access.PortalAdministration},
		{models.RoleClubLeader, access.PortalClub},
		{models.RoleStudent, access.PortalStudent},
	}
	for _, tt := range tests {
		m := newMachine(&hookLog{})
		m.Boot(&models.Identity{Role: tt.role}, false, "")
		assert.Equal(t, tt.portal, m.State().Portal, "role %q", tt.role)
	}
}

// A blocked bootstrap pins the machine to role selection and refuses portal
// entry regardless of any cached identity.
func TestBootBlocked(t *testing.T) {
	log := &hookLog{}
	m := newMachine(log)

	m.Boot(&models.Identity{Role: models.RoleAdmin}, true, "Email required.")

	s := m.State()
	assert.Equal(t, TopSelectRole, s.Top)
	assert.Equal(t, "Email required.", s.Message)
	assert.Empty(t, m.AllowedPortals())

	assert.False(t, m.Enter(access.PortalStudent))
	assert.Equal(t, TopSelectRole, m.State().Top)
	assert.Empty(t, log.loads, "blocked session must never trigger a load")
}

func TestBootWithoutIdentity(t *testing.T) {
	m := newMachine(&hookLog{})
	m.Boot(nil, false, "")

	s := m.State()
	assert.Equal(t, TopSelectRole, s.Top)
	assert.Equal(t, "student", m.Label())
	assert.True(t, m.AllowedPortals()[access.PortalStudent])
}

func TestEnterDenied(t *testing.T) {
	log := &hookLog{}
	m := newMachine(log)
	m.Boot(&models.Identity{Role: models.RoleStudent}, false, "")
	log.loads = nil

	ok := m.Enter(access.PortalAdministration)

	assert.False(t, ok)
	s := m.State()
	assert.Equal(t, access.PortalStudent, s.Portal, "denied entry must not move the view")
	assert.Equal(t, "Access denied.", s.Message)
	assert.Empty(t, log.loads)
}

func TestEnterAdminAlias(t *testing.T) {
	m := newMachine(&hookLog{})
	m.Boot(&models.Identity{Role: models.RoleAdmin}, false, "")

	require.True(t, m.Enter("admin"))
	assert.Equal(t, access.PortalAdministration, m.State().Portal)
}

// A role key with no configured portal falls back to role selection with an
// error banner.
func TestEnterUnknownPortal(t *testing.T) {
	m := New([]string{access.PortalStudent}, Hooks{})
	m.Boot(&models.Identity{Role: models.RoleAdmin}, false, "")

	ok := m.Enter(access.PortalClub)

	assert.False(t, ok)
	s := m.State()
	assert.Equal(t, TopSelectRole, s.Top)
	assert.Equal(t, "Portal not found. Please reload the app.", s.Message)
}

// Switching tabs re-triggers activation for that portal only and leaves
// sibling portals' tab memory alone.
func TestActivateTabScoped(t *testing.T) {
	log := &hookLog{}
	m := newMachine(log)
	m.Boot(&models.Identity{Role: models.RoleAdmin}, false, "")
	log.calendars, log.loads = nil, nil

	m.ActivateTab(access.PortalClub, 2)

	assert.Equal(t, 2, m.ActiveTab(access.PortalClub))
	assert.Equal(t, 0, m.ActiveTab(access.PortalStudent))
	assert.Equal(t, []string{access.PortalClub}, log.calendars)
	assert.Equal(t, []string{access.PortalClub}, log.loads)
}

// Repeated activation of the same tab is a no-op in effect but still
// re-issues the refresh hooks.
func TestActivateTabReentrant(t *testing.T) {
	log := &hookLog{}
	m := newMachine(log)
	m.Boot(&models.Identity{Role: models.RoleClubLeader}, false, "")
	log.loads = nil

	m.ActivateTab(access.PortalClub, 1)
	m.ActivateTab(access.PortalClub, 1)

	assert.Equal(t, 1, m.ActiveTab(access.PortalClub))
	assert.Equal(t, []string{access.PortalClub, access.PortalClub}, log.loads)
}

// The selection write must be observable by the members load the selection
// itself triggers.
func TestSelectClubOrdersLoad(t *testing.T) {
	var observed string
	m := New(access.Portals, Hooks{})
	m.hooks.LoadClubMembers = func() { observed = m.SelectedClubName() }

	m.SelectClub(5, "Robotics")

	assert.Equal(t, "Robotics", observed)
	assert.Equal(t, int64(5), m.SelectedClubID())

	m.ClearClubSelection()
	assert.Empty(t, m.SelectedClubName())
}

func TestFaultReturnsToSelectRole(t *testing.T) {
	m := newMachine(&hookLog{})
	m.Boot(&models.Identity{Role: models.RoleAdmin}, false, "")

	m.Fault("Something went wrong. Please reopen the app.")

	s := m.State()
	assert.Equal(t, TopSelectRole, s.Top)
	assert.Equal(t, "Something went wrong. Please reopen the app.", s.Message)
}

// The members loader reads the selection from its own goroutine; selection
// reads and writes must not race.
func TestClubSelectionConcurrentAccess(t *testing.T) {
	m := New(access.Portals, Hooks{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			_ = m.SelectedClubName()
			_ = m.SelectedClubID()
		}
	}()
	for i := 0; i < 500; i++ {
		m.SelectClub(int64(i+1), "Robotics")
	}
	<-done

	assert.Equal(t, "Robotics", m.SelectedClubName())
	assert.Equal(t, int64(500), m.SelectedClubID())
}
