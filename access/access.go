// ABOUTME: Pure role-to-portal access mapping
// ABOUTME: Decides which portals a role may enter, its default portal, and its display label
package access

import "github.com/roomly-app/roomly/models"

// Portal keys. PortalAdministration is the admin portal; the legacy "admin"
// role string maps onto it.
const (
	PortalStudent        = "student"
	PortalClub           = "club"
	PortalAdministration = "administration"
)

// Portals lists every portal in display order.
var Portals = []string{PortalStudent, PortalClub, PortalAdministration}

// NormalizeRole collapses the admin/administration synonym pair. Unknown
// roles pass through unchanged.
func NormalizeRole(role string) string {
	if role == models.RoleAdmin {
		return models.RoleAdministration
	}
	return role
}

// AllowedViews returns the set of portal keys the role may enter.
// Administrators enter everything, club leaders the student and club
// portals, students only their own. An empty or unknown role gets no portals
// and the caller must route to role selection.
func AllowedViews(role string) map[string]bool {
	switch NormalizeRole(role) {
	case models.RoleAdministration:
		return map[string]bool{PortalStudent: true, PortalClub: true, PortalAdministration: true}
	case models.RoleClubLeader:
		return map[string]bool{PortalStudent: true, PortalClub: true}
	case models.RoleStudent:
		return map[string]bool{PortalStudent: true}
	default:
		return map[string]bool{}
	}
}

// CanEnter reports whether the role may enter the given portal. Portal keys
// are normalized, so "admin" is accepted for the administration portal.
func CanEnter(role, portal string) bool {
	return AllowedViews(role)[NormalizePortal(portal)]
}

// NormalizePortal maps the "admin" alias onto the administration portal key.
func NormalizePortal(portal string) string {
	if portal == models.RoleAdmin {
		return PortalAdministration
	}
	return portal
}

// DefaultView returns the portal an identity lands in after bootstrap.
func DefaultView(role string) string {
	switch NormalizeRole(role) {
	case models.RoleAdministration:
		return PortalAdministration
	case models.RoleClubLeader:
		return PortalClub
	default:
		return PortalStudent
	}
}

// Label returns the role label shown in portal headers.
func Label(role string) string {
	switch NormalizeRole(role) {
	case models.RoleAdministration:
		return "admin"
	case models.RoleClubLeader:
		return "club leader"
	default:
		return "student"
	}
}
