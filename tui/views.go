// ABOUTME: All view rendering: role selection, the three portals, and the debug overlay
// ABOUTME: Pure functions of model state; lipgloss styling lives in the shared style block
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roomly-app/roomly/access"
	"github.com/roomly-app/roomly/debuglog"
	"github.com/roomly-app/roomly/models"
	"github.com/roomly-app/roomly/syncer"
	"github.com/roomly-app/roomly/viewstate"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("74")).
			MarginTop(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)

// portalTitles are the header titles per portal key.
var portalTitles = map[string]string{
	access.PortalStudent:        "Student portal",
	access.PortalClub:           "Club portal",
	access.PortalAdministration: "Administration portal",
}

// tabLabels per portal, in tab order.
var tabLabels = map[string][]string{
	access.PortalStudent:        {"Overview", "Calendar", "Rooms"},
	access.PortalClub:           {"New booking", "Calendar & requests", "Members", "Rooms"},
	access.PortalAdministration: {"Approvals", "New booking", "Rooms", "Data", "Assign"},
}

func (m *Model) View() string {
	if m.showDebug {
		return m.debugView()
	}

	s := m.machine.State()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Roomly"))
	b.WriteString("\n")

	if s.Message != "" {
		b.WriteString(bannerStyle.Render(s.Message))
		b.WriteString("\n\n")
	}

	switch s.Top {
	case viewstate.TopSelectRole:
		b.WriteString(m.selectRoleView())
	case viewstate.TopPortal:
		b.WriteString(m.portalView(s.Portal))
	}

	if m.exportNote != "" {
		b.WriteString("\n" + dimStyle.Render(m.exportNote))
	}
	return b.String()
}

func (m *Model) selectRoleView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Select a portal"))
	b.WriteString("\n\n")

	allowed := m.machine.AllowedPortals()
	n := 0
	for _, p := range access.Portals {
		if !allowed[p] {
			continue
		}
		n++
		fmt.Fprintf(&b, "  %d. %s\n", n, portalTitles[p])
	}
	if n == 0 {
		b.WriteString(dimStyle.Render("  No portals available.") + "\n")
	}

	b.WriteString(helpStyle.Render("1-3 enter portal • ctrl+d debug • q quit"))
	return b.String()
}

func (m *Model) portalView(portal string) string {
	active := m.machine.ActiveTab(portal)

	var tabs []string
	for i, label := range tabLabels[portal] {
		style := tabStyle
		if i == active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%d %s", i+1, label)))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(portalTitles[portal]) +
		dimStyle.Render("  signed in as "+m.machine.Label()))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch portal {
	case access.PortalStudent:
		b.WriteString(m.studentTab(active))
	case access.PortalClub:
		b.WriteString(m.clubTab(active))
	case access.PortalAdministration:
		b.WriteString(m.adminTab(active))
	}

	b.WriteString(m.helpLine(portal, active))
	return b.String()
}

func (m *Model) studentTab(tab int) string {
	switch tab {
	case 0:
		var b strings.Builder
		b.WriteString(sectionStyle.Render("Upcoming bookings") + "\n")
		b.WriteString(m.upcomingList())
		b.WriteString(sectionStyle.Render("My clubs") + "\n")
		b.WriteString(m.membershipList())
		return b.String()
	case 1:
		return m.calendarFor("calendar-student")
	case 2:
		return m.roomCards(syncer.LoaderStudentRooms)
	}
	return ""
}

func (m *Model) clubTab(tab int) string {
	switch tab {
	case 0:
		return m.renderForm(m.forms.booking, formBooking)
	case 1:
		var b strings.Builder
		b.WriteString(m.calendarFor("calendar-club"))
		b.WriteString(sectionStyle.Render("Booking requests") + "\n")
		b.WriteString(m.requestList())
		return b.String()
	case 2:
		var b strings.Builder
		selected := m.machine.SelectedClubName()
		if selected == "" {
			b.WriteString(dimStyle.Render("No club selected.") + "\n")
		} else {
			b.WriteString(headerStyle.Render("Club: "+selected) + "\n")
		}
		b.WriteString(sectionStyle.Render("Members") + "\n")
		b.WriteString(m.memberList())
		b.WriteString(sectionStyle.Render("Add member") + "\n")
		b.WriteString(m.renderForm(m.forms.member, formMember))
		return b.String()
	case 3:
		return m.roomCards(syncer.LoaderClubRooms)
	}
	return ""
}

func (m *Model) adminTab(tab int) string {
	switch tab {
	case 0:
		var b strings.Builder
		b.WriteString(m.calendarFor("calendar-admin"))
		b.WriteString(sectionStyle.Render("Pending approvals") + "\n")
		b.WriteString(m.tableView(syncer.LoaderAdminApprovals))
		return b.String()
	case 1:
		return m.renderForm(m.forms.booking, formBooking)
	case 2:
		var b strings.Builder
		b.WriteString(sectionStyle.Render("Rooms") + "\n")
		b.WriteString(m.tableView(syncer.LoaderAdminRooms))
		title := "New room"
		if m.forms.editRoomCode != "" {
			title = "Edit room " + m.forms.editRoomCode
		}
		b.WriteString(sectionStyle.Render(title) + "\n")
		b.WriteString(m.renderForm(m.forms.room, formRoom))
		return b.String()
	case 3:
		var b strings.Builder
		focused := dataAreas[m.focusArea%len(dataAreas)]
		var heads []string
		for _, area := range dataAreas {
			style := tabStyle
			if area == focused {
				style = activeTabStyle
			}
			heads = append(heads, style.Render(strings.TrimPrefix(area, "admin.")))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, heads...))
		b.WriteString("\n")
		b.WriteString(m.tableView(focused))
		return b.String()
	case 4:
		var b strings.Builder
		focused := assignForms[m.focusArea%len(assignForms)]
		sections := []struct{ title, name string }{
			{"Assign role", formRole},
			{"Create club", formClub},
			{"Assign leader", formLeader},
		}
		for _, sec := range sections {
			title := sec.title
			if sec.name == focused {
				title = "> " + title
			}
			b.WriteString(sectionStyle.Render(title) + "\n")
			b.WriteString(m.renderForm(m.forms.byName(sec.name), sec.name))
		}
		return b.String()
	}
	return ""
}

func (m *Model) calendarFor(element string) string {
	w := m.adapter.Widget(m.handles[element])
	if w == nil || !w.Rendered() {
		return dimStyle.Render("Calendar loading...") + "\n"
	}
	return w.View()
}

func (m *Model) tableView(loader string) string {
	res, has := m.regions[loader]
	if has && res.Err != nil {
		return errorStyle.Render("Failed to load.") + "\n"
	}
	t, ok := m.tables[loader]
	if !ok {
		return dimStyle.Render("Loading...") + "\n"
	}
	if len(t.Rows()) == 0 {
		return dimStyle.Render("Nothing here.") + "\n"
	}
	return t.View() + "\n"
}

func (m *Model) upcomingList() string {
	events, ok := region[[]models.Event](m, syncer.LoaderStudentUpcoming)
	if !ok {
		return m.regionFallback(syncer.LoaderStudentUpcoming)
	}
	if len(events) == 0 {
		return dimStyle.Render("No upcoming bookings.") + "\n"
	}
	var b strings.Builder
	for _, ev := range events {
		line := fmt.Sprintf("  %s  %s", ev.Start.In(m.loc).Format("Mon 02 Jan 15:04"), ev.Title)
		if ev.RoomCode != "" {
			line += "  " + dimStyle.Render(ev.RoomCode)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *Model) membershipList() string {
	clubs, ok := region[[]models.Membership](m, syncer.LoaderStudentClubs)
	if !ok {
		return m.regionFallback(syncer.LoaderStudentClubs)
	}
	if len(clubs) == 0 {
		return dimStyle.Render("No memberships.") + "\n"
	}
	cursor := m.cursors[syncer.LoaderStudentClubs]
	var b strings.Builder
	for i, c := range clubs {
		line := fmt.Sprintf("  %s (%s)", c.Name, c.Role)
		if i == cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *Model) requestList() string {
	events, ok := region[[]models.Event](m, syncer.LoaderClubRequests)
	if !ok {
		return m.regionFallback(syncer.LoaderClubRequests)
	}
	if len(events) == 0 {
		return dimStyle.Render("No requests.") + "\n"
	}
	var b strings.Builder
	for _, ev := range events {
		style := dimStyle
		switch ev.Status {
		case models.StatusApproved:
			style = successStyle
		case models.StatusRejected:
			style = errorStyle
		}
		fmt.Fprintf(&b, "  %s  %s\n", style.Render(ev.Status), ev.Title)
	}
	return b.String()
}

func (m *Model) memberList() string {
	members, ok := region[[]models.ClubMember](m, syncer.LoaderClubMembers)
	if !ok {
		return m.regionFallback(syncer.LoaderClubMembers)
	}
	if len(members) == 0 {
		return dimStyle.Render("No members.") + "\n"
	}
	var b strings.Builder
	for _, mem := range members {
		name := mem.FullName
		if name == "" {
			name = mem.Email
		}
		fmt.Fprintf(&b, "  %s  %s\n", name, dimStyle.Render(mem.Role))
	}
	return b.String()
}

func (m *Model) roomCards(loader string) string {
	rooms, ok := region[[]models.Room](m, loader)
	if !ok {
		return m.regionFallback(loader)
	}
	if len(rooms) == 0 {
		return dimStyle.Render("No rooms available.") + "\n"
	}
	cursorList, _ := m.plainList()
	var b strings.Builder
	for i, r := range rooms {
		line := "  " + headerStyle.Render(r.Code)
		var details []string
		if r.Building != "" {
			details = append(details, r.Building)
		}
		if r.Floor != "" {
			details = append(details, "floor "+r.Floor)
		}
		if r.Capacity != nil {
			details = append(details, fmt.Sprintf("seats %d", *r.Capacity))
		}
		if len(details) > 0 {
			line += "  " + dimStyle.Render(strings.Join(details, ", "))
		}
		if cursorList == loader && i == m.cursors[loader] {
			line = cursorStyle.Render("> ") + line[2:]
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *Model) regionFallback(loader string) string {
	if res, has := m.regions[loader]; has && res.Err != nil {
		return errorStyle.Render("Failed to load.") + "\n"
	}
	return dimStyle.Render("Loading...") + "\n"
}

func (m *Model) renderForm(f *form, name string) string {
	var b strings.Builder
	for i, fl := range f.fields {
		marker := "  "
		if m.editing && m.currentForm() == f && i == f.focus {
			marker = "> "
		}
		b.WriteString(marker + labelStyle.Render(fl.label) + fl.input.View() + "\n")
	}
	if st, ok := m.statuses[name]; ok {
		style := successStyle
		if st.kind == "error" {
			style = errorStyle
		}
		b.WriteString(style.Render(st.text) + "\n")
	}
	return b.String()
}

func (m *Model) helpLine(portal string, tab int) string {
	if m.editing {
		return helpStyle.Render("esc done • tab next field • ctrl+s submit")
	}

	parts := []string{"1-" + fmt.Sprint(tabCount[portal]) + " tabs", "s roles"}
	if m.elementVisibleForPortalTab(portal, tab) {
		parts = append(parts, "[ ] month")
	}
	switch {
	case portal == access.PortalStudent && tab == 0:
		parts = append(parts, "j/k move", "d leave club")
	case portal == access.PortalClub && tab == 0, portal == access.PortalAdministration && tab == 1:
		parts = append(parts, "e edit form")
	case portal == access.PortalClub && tab == 2:
		parts = append(parts, "c next club", "e add member")
	case portal == access.PortalClub && tab == 3:
		parts = append(parts, "j/k move", "e reserve")
	case portal == access.PortalAdministration && tab == 0:
		parts = append(parts, "j/k move", "a approve", "x reject")
	case portal == access.PortalAdministration && tab == 2:
		parts = append(parts, "j/k move", "e edit", "n new", "d delete")
	case portal == access.PortalAdministration && tab == 3:
		parts = append(parts, "tab list", "j/k move", "d delete")
	case portal == access.PortalAdministration && tab == 4:
		parts = append(parts, "tab form", "e edit form")
	}
	parts = append(parts, "o export", "ctrl+d debug", "q quit")
	return helpStyle.Render(strings.Join(parts, " • "))
}

func (m *Model) elementVisibleForPortalTab(portal string, tab int) bool {
	return calendarTab[portal] == tab
}

func (m *Model) debugView() string {
	stored := ""
	if id := m.store.Identity(); id != nil {
		stored = id.Role
	}
	s := m.machine.State()
	bindings := 0
	for element := range calendarElements {
		bindings += m.adapter.BindingCount(element)
	}

	snap := debuglog.Snapshot{
		InstallID:     m.store.InstallID(),
		AuthBlocked:   s.Blocked,
		StoredUser:    stored,
		VisiblePortal: s.Portal,
		BindingCount:  bindings,
	}
	return titleStyle.Render("Debug") + "\n" + m.ring.Render(snap) + "\n\n" +
		helpStyle.Render("any key to close")
}
