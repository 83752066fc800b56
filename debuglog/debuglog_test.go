// ABOUTME: Tests for the rolling debug ring
// ABOUTME: Covers the line cap, enable idempotence, and snapshot rendering
package debuglog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingCapsAtFifty(t *testing.T) {
	r := New()
	for i := 0; i < 60; i++ {
		r.Add("line %d", i)
	}

	out := r.Render(Snapshot{})
	assert.NotContains(t, out, "line 9\n", "oldest lines should have rolled off")
	assert.Contains(t, out, "line 59")

	lines := strings.Split(strings.SplitN(out, "\n\n", 2)[0], "\n")
	assert.Len(t, lines, 50)
}

func TestEnableOnce(t *testing.T) {
	r := New()
	r.Enable("query")
	r.Enable("window error")

	assert.True(t, r.Enabled())
	out := r.Render(Snapshot{})
	assert.Equal(t, 1, strings.Count(out, "debug enabled"), "second enable must be a no-op")
	assert.Contains(t, out, "debug enabled: query")
}

func TestSnapshotRendering(t *testing.T) {
	r := New()
	out := r.Render(Snapshot{
		InstallID:     "abc",
		AuthBlocked:   true,
		VisiblePortal: "club",
		BindingCount:  2,
	})

	assert.Contains(t, out, "authBlocked: true")
	assert.Contains(t, out, "storedUser: none")
	assert.Contains(t, out, "visiblePortal: club")
	assert.Contains(t, out, fmt.Sprintf("calendarBindings: %d", 2))
}
