// ABOUTME: bubbles table construction for the administration listings
// ABOUTME: Rebuilds rows on every loader result, preserving the cursor
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/roomly-app/roomly/models"
	"github.com/roomly-app/roomly/syncer"
)

const tableHeight = 10

var tableColumns = map[string][]table.Column{
	syncer.LoaderAdminApprovals: {
		{Title: "ID", Width: 10},
		{Title: "Title", Width: 24},
		{Title: "Start", Width: 17},
		{Title: "Type", Width: 8},
		{Title: "Room", Width: 8},
	},
	syncer.LoaderAdminRooms: {
		{Title: "Code", Width: 8},
		{Title: "Building", Width: 14},
		{Title: "Floor", Width: 6},
		{Title: "Type", Width: 12},
		{Title: "Cap", Width: 5},
		{Title: "Active", Width: 7},
	},
	syncer.LoaderAdminUsers: {
		{Title: "ID", Width: 6},
		{Title: "Email", Width: 26},
		{Title: "Name", Width: 20},
		{Title: "Role", Width: 14},
	},
	syncer.LoaderAdminClubs: {
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 26},
		{Title: "Owner", Width: 8},
	},
	syncer.LoaderAdminClubMembers: {
		{Title: "Club", Width: 20},
		{Title: "Email", Width: 26},
		{Title: "Role", Width: 10},
	},
	syncer.LoaderAdminEvents: {
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 24},
		{Title: "Status", Width: 10},
		{Title: "Type", Width: 8},
		{Title: "Room", Width: 8},
	},
	syncer.LoaderAdminParticipants: {
		{Title: "Event", Width: 7},
		{Title: "User", Width: 7},
		{Title: "Email", Width: 26},
	},
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	return s
}

// refreshTable rebuilds the loader's table rows. Non-table regions and
// failed loads leave the table as it was.
func (m *Model) refreshTable(res syncer.Result) {
	cols, ok := tableColumns[res.Loader]
	if !ok || res.Err != nil {
		return
	}
	rows := tableRows(res)

	t, exists := m.tables[res.Loader]
	if !exists {
		t = table.New(
			table.WithColumns(cols),
			table.WithHeight(tableHeight),
			table.WithStyles(tableStyles()),
		)
	}
	cursor := t.Cursor()
	t.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor >= 0 {
		t.SetCursor(cursor)
	}
	m.tables[res.Loader] = t
}

func tableRows(res syncer.Result) []table.Row {
	switch data := res.Data.(type) {
	case []models.Event: // approvals
		rows := make([]table.Row, len(data))
		for i, ev := range data {
			rows[i] = table.Row{ev.ID, ev.Title, ev.Start.Format("2006-01-02 15:04"), ev.EventType, ev.RoomCode}
		}
		return rows
	case []models.Room:
		rows := make([]table.Row, len(data))
		for i, r := range data {
			capacity := ""
			if r.Capacity != nil {
				capacity = strconv.Itoa(*r.Capacity)
			}
			rows[i] = table.Row{r.Code, r.Building, r.Floor, r.RoomType, capacity, yesNo(r.IsActive)}
		}
		return rows
	case []models.AdminUser:
		rows := make([]table.Row, len(data))
		for i, u := range data {
			rows[i] = table.Row{strconv.FormatInt(u.ID, 10), u.Email, u.FullName, u.Role}
		}
		return rows
	case []models.AdminClub:
		rows := make([]table.Row, len(data))
		for i, c := range data {
			owner := ""
			if c.OwnerUserID != nil {
				owner = strconv.FormatInt(*c.OwnerUserID, 10)
			}
			rows[i] = table.Row{strconv.FormatInt(c.ID, 10), c.Name, owner}
		}
		return rows
	case []models.AdminClubMember:
		rows := make([]table.Row, len(data))
		for i, cm := range data {
			rows[i] = table.Row{cm.ClubName, cm.UserEmail, cm.Role}
		}
		return rows
	case []models.AdminEvent:
		rows := make([]table.Row, len(data))
		for i, ev := range data {
			rows[i] = table.Row{strconv.FormatInt(ev.ID, 10), ev.Title, ev.Status, ev.EventType, ev.RoomCode}
		}
		return rows
	case []models.AdminEventParticipant:
		rows := make([]table.Row, len(data))
		for i, p := range data {
			rows[i] = table.Row{strconv.FormatInt(p.EventID, 10), strconv.FormatInt(p.UserID, 10), p.UserEmail}
		}
		return rows
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
