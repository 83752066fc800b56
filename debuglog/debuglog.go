// ABOUTME: Rolling diagnostic log and point-in-time state snapshot
// ABOUTME: Backs the debug overlay; diagnostic only, not part of the functional contract
package debuglog

import (
	"fmt"
	"strings"
	"time"
)

// maxLines bounds the ring; older lines fall off the front.
const maxLines = 50

// Ring is the rolling debug log. Enabled once, it stays on for the life of
// the process.
type Ring struct {
	enabled bool
	lines   []string
	now     func() time.Time
}

func New() *Ring {
	return &Ring{now: time.Now}
}

// Enable turns the overlay on, recording why. Repeated calls are no-ops.
func (r *Ring) Enable(reason string) {
	if r.enabled {
		return
	}
	r.enabled = true
	r.Add("debug enabled: %s", reason)
}

func (r *Ring) Enabled() bool { return r.enabled }

// Add appends a timestamped line, dropping the oldest past the cap.
func (r *Ring) Add(format string, args ...any) {
	line := fmt.Sprintf("[%s] %s", r.now().Format(time.RFC3339), fmt.Sprintf(format, args...))
	r.lines = append(r.lines, line)
	if len(r.lines) > maxLines {
		r.lines = r.lines[len(r.lines)-maxLines:]
	}
}

// Snapshot holds the point-in-time state rendered under the log lines.
type Snapshot struct {
	InstallID     string
	AuthBlocked   bool
	StoredUser    string
	VisiblePortal string
	BindingCount  int
}

// Render joins the ring and the snapshot into the overlay text.
func (r *Ring) Render(s Snapshot) string {
	var b strings.Builder
	b.WriteString(strings.Join(r.lines, "\n"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "install: %s\n", s.InstallID)
	fmt.Fprintf(&b, "authBlocked: %t\n", s.AuthBlocked)
	stored := s.StoredUser
	if stored == "" {
		stored = "none"
	}
	fmt.Fprintf(&b, "storedUser: %s\n", stored)
	visible := s.VisiblePortal
	if visible == "" {
		visible = "none"
	}
	fmt.Fprintf(&b, "visiblePortal: %s\n", visible)
	fmt.Fprintf(&b, "calendarBindings: %d", s.BindingCount)
	return b.String()
}
