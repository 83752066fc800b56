// ABOUTME: Keyboard dispatch: typed commands bound to keys, resolved against the active view
// ABOUTME: Normal mode navigates and acts on rows; edit mode types into the current form
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roomly-app/roomly/access"
	"github.com/roomly-app/roomly/api"
	"github.com/roomly-app/roomly/models"
	"github.com/roomly-app/roomly/syncer"
	"github.com/roomly-app/roomly/viewstate"
)

// Command is a typed UI command. Keys bind to commands; commands resolve
// against the active portal and tab, so one key can act on whatever list or
// form currently has focus.
type Command int

const (
	cmdNone Command = iota
	cmdQuit
	cmdRoles
	cmdDebug
	cmdExport
	cmdEdit
	cmdNew
	cmdSubmit
	cmdTab1
	cmdTab2
	cmdTab3
	cmdTab4
	cmdTab5
	cmdMonthBack
	cmdMonthForward
	cmdUp
	cmdDown
	cmdApprove
	cmdReject
	cmdDelete
	cmdCycleClub
	cmdCycleArea
)

var keyCommands = map[string]Command{
	"ctrl+c": cmdQuit,
	"q":      cmdQuit,
	"s":      cmdRoles,
	"ctrl+d": cmdDebug,
	"o":      cmdExport,
	"e":      cmdEdit,
	"n":      cmdNew,
	"1":      cmdTab1,
	"2":      cmdTab2,
	"3":      cmdTab3,
	"4":      cmdTab4,
	"5":      cmdTab5,
	"[":      cmdMonthBack,
	"]":      cmdMonthForward,
	"up":     cmdUp,
	"k":      cmdUp,
	"down":   cmdDown,
	"j":      cmdDown,
	"a":      cmdApprove,
	"x":      cmdReject,
	"d":      cmdDelete,
	"c":      cmdCycleClub,
	"tab":    cmdCycleArea,
}

// tabCount is how many tabs each portal renders.
var tabCount = map[string]int{
	access.PortalStudent:        3,
	access.PortalClub:           4,
	access.PortalAdministration: 5,
}

// dataAreas orders the administration data tab's listings for tab-cycling.
var dataAreas = []string{
	syncer.LoaderAdminUsers,
	syncer.LoaderAdminClubs,
	syncer.LoaderAdminClubMembers,
	syncer.LoaderAdminEvents,
	syncer.LoaderAdminParticipants,
}

// assignForms orders the assignment tab's forms for tab-cycling.
var assignForms = []string{formRole, formClub, formLeader}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showDebug {
		switch key {
		case "ctrl+c":
			return m, tea.Quit
		default:
			m.showDebug = false
			return m, nil
		}
	}

	if m.editing {
		return m.handleEditKey(msg)
	}

	cmd, ok := keyCommands[key]
	if !ok {
		return m, nil
	}
	return m.runCommand(cmd)
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.currentForm()
	if f == nil {
		m.editing = false
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.editing = false
		f.blur()
		return m, nil
	case "tab", "enter":
		f.next()
		return m, nil
	case "shift+tab":
		f.prev()
		return m, nil
	case "ctrl+s":
		return m, m.submitCurrentForm()
	}
	return m, f.update(msg)
}

func (m *Model) runCommand(cmd Command) (tea.Model, tea.Cmd) {
	s := m.machine.State()

	switch cmd {
	case cmdQuit:
		return m, tea.Quit

	case cmdDebug:
		m.ring.Enable("manual toggle")
		m.showDebug = !m.showDebug
		return m, nil

	case cmdRoles:
		m.machine.SelectRole()
		return m, nil

	case cmdExport:
		return m, m.exportCmd()

	case cmdTab1, cmdTab2, cmdTab3, cmdTab4, cmdTab5:
		index := int(cmd - cmdTab1)
		if s.Top == viewstate.TopSelectRole {
			return m.enterPortalByIndex(index)
		}
		if index < tabCount[s.Portal] {
			m.focusArea = 0
			m.machine.ActivateTab(s.Portal, index)
			return m, tea.Batch(m.drainPending()...)
		}
		return m, nil

	case cmdMonthBack:
		return m, m.shiftVisibleCalendar(-1)
	case cmdMonthForward:
		return m, m.shiftVisibleCalendar(1)

	case cmdUp:
		return m, m.moveCursor(-1)
	case cmdDown:
		return m, m.moveCursor(1)

	case cmdEdit:
		return m.startEditing(true)
	case cmdNew:
		return m.startEditing(false)

	case cmdApprove:
		return m, m.decideSelected(api.ActionApprove)
	case cmdReject:
		return m, m.decideSelected(api.ActionReject)

	case cmdDelete:
		return m, m.deleteSelected()

	case cmdCycleClub:
		m.cycleClubSelection()
		return m, tea.Batch(m.drainPending()...)

	case cmdCycleArea:
		m.cycleFocusArea()
		return m, nil
	}
	return m, nil
}

// enterPortalByIndex maps the role-selection digits onto the allowed
// portals in their canonical order.
func (m *Model) enterPortalByIndex(index int) (tea.Model, tea.Cmd) {
	allowed := m.machine.AllowedPortals()
	var ordered []string
	for _, p := range access.Portals {
		if allowed[p] {
			ordered = append(ordered, p)
		}
	}
	if index >= len(ordered) {
		return m, nil
	}
	m.machine.Enter(ordered[index])
	return m, tea.Batch(m.drainPending()...)
}

// currentForm resolves which form the active tab edits, if any.
func (m *Model) currentForm() *form {
	s := m.machine.State()
	if s.Top != viewstate.TopPortal {
		return nil
	}
	tab := m.machine.ActiveTab(s.Portal)
	switch s.Portal {
	case access.PortalClub:
		switch tab {
		case 0:
			return m.forms.booking
		case 2:
			return m.forms.member
		}
	case access.PortalAdministration:
		switch tab {
		case 1:
			return m.forms.booking
		case 2:
			return m.forms.room
		case 4:
			return m.forms.byName(assignForms[m.focusArea%len(assignForms)])
		}
	}
	return nil
}

// focusedTable names the admin table that cursor and row actions target.
func (m *Model) focusedTable() string {
	s := m.machine.State()
	if s.Top != viewstate.TopPortal || s.Portal != access.PortalAdministration {
		return ""
	}
	switch m.machine.ActiveTab(s.Portal) {
	case 0:
		return syncer.LoaderAdminApprovals
	case 2:
		return syncer.LoaderAdminRooms
	case 3:
		return dataAreas[m.focusArea%len(dataAreas)]
	}
	return ""
}

func (m *Model) startEditing(prefill bool) (tea.Model, tea.Cmd) {
	s := m.machine.State()
	if s.Portal == access.PortalClub && m.machine.ActiveTab(s.Portal) == 3 {
		return m.reserveSelectedRoom()
	}

	if prefill && m.focusedTable() == syncer.LoaderAdminRooms {
		rooms, ok := region[[]models.Room](m, syncer.LoaderAdminRooms)
		idx := m.tableCursor(syncer.LoaderAdminRooms)
		if ok && idx >= 0 && idx < len(rooms) {
			m.forms.prefillRoom(rooms[idx])
			m.editing = true
		}
		return m, nil
	}

	f := m.currentForm()
	if f == nil {
		return m, nil
	}
	if !prefill && f.name == formRoom {
		m.forms.reset(formRoom)
	}
	f.focusField(0)
	m.editing = true
	return m, nil
}

func (m *Model) moveCursor(delta int) tea.Cmd {
	if name := m.focusedTable(); name != "" {
		t, ok := m.tables[name]
		if !ok {
			return nil
		}
		if delta < 0 {
			t.MoveUp(1)
		} else {
			t.MoveDown(1)
		}
		m.tables[name] = t
		return nil
	}

	loader, length := m.plainList()
	if loader == "" {
		return nil
	}
	cur := m.cursors[loader] + delta
	if cur < 0 {
		cur = 0
	}
	if cur >= length && length > 0 {
		cur = length - 1
	}
	m.cursors[loader] = cur
	return nil
}

// plainList names the cursor-driven plain list on the active tab, if any,
// along with its current length.
func (m *Model) plainList() (string, int) {
	s := m.machine.State()
	switch {
	case s.Portal == access.PortalStudent && m.machine.ActiveTab(s.Portal) == 0:
		clubs, _ := region[[]models.Membership](m, syncer.LoaderStudentClubs)
		return syncer.LoaderStudentClubs, len(clubs)
	case s.Portal == access.PortalClub && m.machine.ActiveTab(s.Portal) == 3:
		rooms, _ := region[[]models.Room](m, syncer.LoaderClubRooms)
		return syncer.LoaderClubRooms, len(rooms)
	}
	return "", 0
}

// reserveSelectedRoom jumps from the club rooms tab to the booking form
// with the highlighted room's code prefilled.
func (m *Model) reserveSelectedRoom() (tea.Model, tea.Cmd) {
	rooms, ok := region[[]models.Room](m, syncer.LoaderClubRooms)
	idx := m.cursors[syncer.LoaderClubRooms]
	if !ok || idx < 0 || idx >= len(rooms) {
		return m, nil
	}
	m.forms.booking.fields[bkRoom].input.SetValue(rooms[idx].Code)
	m.machine.ActivateTab(access.PortalClub, 0)
	m.forms.booking.focusField(0)
	m.editing = true
	return m, tea.Batch(m.drainPending()...)
}

func (m *Model) tableCursor(name string) int {
	if t, ok := m.tables[name]; ok {
		return t.Cursor()
	}
	return -1
}

// decideSelected approves or rejects the highlighted pending booking.
func (m *Model) decideSelected(action string) tea.Cmd {
	if m.focusedTable() != syncer.LoaderAdminApprovals {
		return nil
	}
	events, ok := region[[]models.Event](m, syncer.LoaderAdminApprovals)
	idx := m.tableCursor(syncer.LoaderAdminApprovals)
	if !ok || idx < 0 || idx >= len(events) {
		return nil
	}
	id := events[idx].ID
	return m.mutateCmd(syncer.MutationEventDecided, "", func(ctx context.Context) error {
		return m.client.EventAction(ctx, id, action)
	})
}

// deleteSelected resolves the highlighted row of the focused list and runs
// the matching deletion with its invalidation edge.
func (m *Model) deleteSelected() tea.Cmd {
	s := m.machine.State()

	if s.Portal == access.PortalStudent && m.machine.ActiveTab(s.Portal) == 0 {
		clubs, ok := region[[]models.Membership](m, syncer.LoaderStudentClubs)
		idx := m.cursors[syncer.LoaderStudentClubs]
		if !ok || idx < 0 || idx >= len(clubs) {
			return nil
		}
		name := clubs[idx].Name
		return m.mutateCmd(syncer.MutationMembershipLeft, "", func(ctx context.Context) error {
			return m.client.LeaveClub(ctx, name)
		})
	}

	name := m.focusedTable()
	idx := m.tableCursor(name)
	if name == "" || idx < 0 {
		return nil
	}

	switch name {
	case syncer.LoaderAdminRooms:
		rooms, ok := region[[]models.Room](m, name)
		if !ok || idx >= len(rooms) {
			return nil
		}
		code := rooms[idx].Code
		return m.mutateCmd(syncer.MutationRoomDeleted, "", func(ctx context.Context) error {
			return m.client.DeleteRoom(ctx, code)
		})

	case syncer.LoaderAdminUsers:
		users, ok := region[[]models.AdminUser](m, name)
		if !ok || idx >= len(users) {
			return nil
		}
		id := users[idx].ID
		return m.mutateCmd(syncer.MutationUserDeleted, "", func(ctx context.Context) error {
			return m.client.DeleteUser(ctx, id)
		})

	case syncer.LoaderAdminClubs:
		clubs, ok := region[[]models.AdminClub](m, name)
		if !ok || idx >= len(clubs) {
			return nil
		}
		id := clubs[idx].ID
		return m.mutateCmd(syncer.MutationClubDeleted, "", func(ctx context.Context) error {
			return m.client.DeleteClub(ctx, id)
		})

	case syncer.LoaderAdminClubMembers:
		members, ok := region[[]models.AdminClubMember](m, name)
		if !ok || idx >= len(members) {
			return nil
		}
		row := members[idx]
		return m.mutateCmd(syncer.MutationClubMemberRemoved, "", func(ctx context.Context) error {
			return m.client.DeleteClubMember(ctx, row.ClubID, row.UserID)
		})

	case syncer.LoaderAdminEvents:
		events, ok := region[[]models.AdminEvent](m, name)
		if !ok || idx >= len(events) {
			return nil
		}
		id := events[idx].ID
		return m.mutateCmd(syncer.MutationEventDeleted, "", func(ctx context.Context) error {
			return m.client.DeleteEvent(ctx, id)
		})

	case syncer.LoaderAdminParticipants:
		rows, ok := region[[]models.AdminEventParticipant](m, name)
		if !ok || idx >= len(rows) {
			return nil
		}
		row := rows[idx]
		// No static edge covers participant removal; reload the portal.
		return m.mutateReloadCmd("", access.PortalAdministration, func(ctx context.Context) error {
			return m.client.DeleteEventParticipant(ctx, row.EventID, row.UserID)
		})
	}
	return nil
}

// cycleClubSelection advances the club portal's selector to the next club.
func (m *Model) cycleClubSelection() {
	s := m.machine.State()
	if s.Portal != access.PortalClub {
		return
	}
	clubs, ok := region[[]models.Club](m, syncer.LoaderClubOptions)
	if !ok || len(clubs) == 0 {
		return
	}
	next := 0
	for i, c := range clubs {
		if c.ID == m.machine.SelectedClubID() {
			next = (i + 1) % len(clubs)
			break
		}
	}
	m.machine.SelectClub(clubs[next].ID, clubs[next].Name)
}

func (m *Model) cycleFocusArea() {
	s := m.machine.State()
	if s.Portal != access.PortalAdministration {
		return
	}
	switch m.machine.ActiveTab(s.Portal) {
	case 3:
		m.focusArea = (m.focusArea + 1) % len(dataAreas)
	case 4:
		m.focusArea = (m.focusArea + 1) % len(assignForms)
	}
}

func (m *Model) shiftVisibleCalendar(months int) tea.Cmd {
	for element := range calendarElements {
		if !m.elementVisible(element) {
			continue
		}
		req, ok := m.adapter.Shift(m.handles[element], months)
		if !ok {
			return nil
		}
		return m.fetchCalendarCmd(req)
	}
	return nil
}

// submitCurrentForm validates and submits the form under edit. Validation
// failures stay local; only valid payloads reach the network.
func (m *Model) submitCurrentForm() tea.Cmd {
	f := m.currentForm()
	if f == nil {
		return nil
	}
	s := m.machine.State()

	switch f.name {
	case formBooking:
		var clubID *int64
		mutation := syncer.MutationEventCreatedAdmin
		fixedType := "" // administration picks a type, default lesson
		if s.Portal == access.PortalClub {
			mutation = syncer.MutationEventCreatedClub
			fixedType = models.EventTypeEvent
			if id := m.machine.SelectedClubID(); id != 0 {
				clubID = &id
			}
		}
		payload, err := buildBookingPayload(f, clubID, m.loc.String(), fixedType)
		if err != nil {
			m.statuses[formBooking] = status{text: err.Error(), kind: "error"}
			return nil
		}
		return m.mutateCmd(mutation, formBooking, func(ctx context.Context) error {
			return m.client.CreateEvent(ctx, payload)
		})

	case formMember:
		club := m.machine.SelectedClubName()
		email := f.value(0)
		if club == "" || email == "" {
			m.statuses[formMember] = status{text: "Select a club and enter an email.", kind: "error"}
			return nil
		}
		return m.mutateCmd(syncer.MutationMemberAdded, formMember, func(ctx context.Context) error {
			return m.client.AddClubMember(ctx, club, email)
		})

	case formRoom:
		editCode := m.forms.editRoomCode
		payload, err := buildRoomPayload(f, editCode != "")
		if err != nil {
			m.statuses[formRoom] = status{text: err.Error(), kind: "error"}
			return nil
		}
		return m.mutateCmd(syncer.MutationRoomSaved, formRoom, func(ctx context.Context) error {
			if editCode != "" {
				return m.client.UpdateRoom(ctx, editCode, payload)
			}
			return m.client.CreateRoom(ctx, payload)
		})

	case formRole:
		email, role := f.value(0), f.value(1)
		if email == "" || role == "" {
			m.statuses[formRole] = status{text: "Email and role are required.", kind: "error"}
			return nil
		}
		return m.mutateReloadCmd(formRole, access.PortalAdministration, func(ctx context.Context) error {
			return m.client.AssignRole(ctx, email, role)
		})

	case formClub:
		name := f.value(0)
		if name == "" {
			m.statuses[formClub] = status{text: "Club name is required.", kind: "error"}
			return nil
		}
		owner := f.value(1)
		return m.mutateReloadCmd(formClub, access.PortalAdministration, func(ctx context.Context) error {
			return m.client.CreateClub(ctx, name, owner)
		})

	case formLeader:
		club, email := f.value(0), f.value(1)
		if club == "" || email == "" {
			m.statuses[formLeader] = status{text: "Club and email are required.", kind: "error"}
			return nil
		}
		return m.mutateReloadCmd(formLeader, access.PortalAdministration, func(ctx context.Context) error {
			return m.client.AssignLeader(ctx, club, email)
		})
	}
	return nil
}
