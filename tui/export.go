// ABOUTME: ICS export command: fetch raw events and write the calendar file
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roomly-app/roomly/api"
	"github.com/roomly-app/roomly/export"
)

// runExport fetches the raw event list, rules included, and writes it to
// the default export path.
func runExport(client *api.Client, loc *time.Location) tea.Msg {
	events, err := client.Events(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		return exportDoneMsg{err: err}
	}
	path := export.DefaultPath()
	if err := export.WriteFile(path, events, loc); err != nil {
		return exportDoneMsg{err: err}
	}
	return exportDoneMsg{path: path}
}
