// ABOUTME: Tests for the role-to-portal access mapping
// ABOUTME: Covers allowed view sets, nesting, defaults, and labels
package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedViews(t *testing.T) {
	tests := []struct {
		role    string
		portals []string
	}{
		{"administration", []string{PortalStudent, PortalClub, PortalAdministration}},
		{"admin", []string{PortalStudent, PortalClub, PortalAdministration}},
		{"club_leader", []string{PortalStudent, PortalClub}},
		{"student", []string{PortalStudent}},
		{"", nil},
		{"teacher", nil},
	}

	for _, tt := range tests {
		got := AllowedViews(tt.role)
		assert.Len(t, got, len(tt.portals), "role %q", tt.role)
		for _, p := range tt.portals {
			assert.True(t, got[p], "role %q should enter %q", tt.role, p)
		}
	}
}

// Admin access must contain club-leader access, which must contain student
// access.
func TestAllowedViewsNesting(t *testing.T) {
	student := AllowedViews("student")
	leader := AllowedViews("club_leader")
	admin := AllowedViews("administration")

	for p := range student {
		assert.True(t, leader[p], "leader should cover student portal %q", p)
	}
	for p := range leader {
		assert.True(t, admin[p], "admin should cover leader portal %q", p)
	}
}

func TestDefaultView(t *testing.T) {
	assert.Equal(t, PortalAdministration, DefaultView("administration"))
	assert.Equal(t, PortalAdministration, DefaultView("admin"))
	assert.Equal(t, PortalClub, DefaultView("club_leader"))
	assert.Equal(t, PortalStudent, DefaultView("student"))
	assert.Equal(t, PortalStudent, DefaultView(""))
	assert.Equal(t, PortalStudent, DefaultView("something_else"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "admin", Label("administration"))
	assert.Equal(t, "admin", Label("admin"))
	assert.Equal(t, "club leader", Label("club_leader"))
	assert.Equal(t, "student", Label("student"))
	assert.Equal(t, "student", Label(""))
}

func TestCanEnter(t *testing.T) {
	assert.True(t, CanEnter("club_leader", PortalClub))
	assert.True(t, CanEnter("admin", "admin"), "admin alias should resolve to the administration portal")
	assert.False(t, CanEnter("student", PortalClub))
	assert.False(t, CanEnter("", PortalStudent))
}
