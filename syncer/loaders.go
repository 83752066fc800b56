// ABOUTME: Standard loader registry wired to the backend client
// ABOUTME: One loader per view region across the three portals
package syncer

import (
	"context"
	"sort"
	"time"

	"github.com/roomly-app/roomly/access"
	"github.com/roomly-app/roomly/api"
	"github.com/roomly-app/roomly/models"
)

// upcomingWindow and upcomingLimit bound the student "upcoming" list.
const (
	upcomingWindow = 30 * 24 * time.Hour
	upcomingLimit  = 8
)

// EventsAPI is the read surface the standard loaders consume.
type EventsAPI interface {
	Events(ctx context.Context, start, end time.Time) ([]models.Event, error)
	AvailableRooms(ctx context.Context) ([]models.Room, error)
	MyClubs(ctx context.Context) ([]models.Club, error)
	Memberships(ctx context.Context) ([]models.Membership, error)
	ClubMembers(ctx context.Context, clubName string) ([]models.ClubMember, error)
	AdminUsers(ctx context.Context) ([]models.AdminUser, error)
	AdminClubs(ctx context.Context) ([]models.AdminClub, error)
	AdminClubMembers(ctx context.Context) ([]models.AdminClubMember, error)
	AdminEvents(ctx context.Context) ([]models.AdminEvent, error)
	AdminEventParticipants(ctx context.Context) ([]models.AdminEventParticipant, error)
	AdminRooms(ctx context.Context) ([]models.Room, error)
}

var _ EventsAPI = (*api.Client)(nil)

// NewStandard builds the orchestrator with every portal's loaders
// registered. selectedClub reports the club portal's current selection (""
// when none); the members loader reads it at run time, so a selection write
// followed by an invalidation always observes the new value.
func NewStandard(client EventsAPI, selectedClub func() string, now func() time.Time) *Orchestrator {
	if now == nil {
		now = time.Now
	}

	o := New()
	register := func(name, portal string, run RunFunc) {
		// Names are compile-time constants; a duplicate is a programming error.
		if err := o.Register(Loader{Name: name, Portal: portal, Run: run}); err != nil {
			panic(err)
		}
	}

	register(LoaderStudentUpcoming, access.PortalStudent, func(ctx context.Context) (any, error) {
		start := now()
		events, err := client.Events(ctx, start, start.Add(upcomingWindow))
		if err != nil {
			return nil, err
		}
		sort.SliceStable(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
		if len(events) > upcomingLimit {
			events = events[:upcomingLimit]
		}
		return events, nil
	})
	register(LoaderStudentClubs, access.PortalStudent, func(ctx context.Context) (any, error) {
		return client.Memberships(ctx)
	})
	register(LoaderStudentRooms, access.PortalStudent, func(ctx context.Context) (any, error) {
		return client.AvailableRooms(ctx)
	})

	register(LoaderClubOptions, access.PortalClub, func(ctx context.Context) (any, error) {
		return client.MyClubs(ctx)
	})
	register(LoaderClubRequests, access.PortalClub, func(ctx context.Context) (any, error) {
		events, err := client.Events(ctx, time.Time{}, time.Time{})
		if err != nil {
			return nil, err
		}
		sort.SliceStable(events, func(i, j int) bool { return events[i].Status < events[j].Status })
		return events, nil
	})
	register(LoaderClubMembers, access.PortalClub, func(ctx context.Context) (any, error) {
		club := selectedClub()
		if club == "" {
			// Nothing selected yet; the region prompts for a selection.
			return []models.ClubMember(nil), nil
		}
		return client.ClubMembers(ctx, club)
	})
	register(LoaderClubRooms, access.PortalClub, func(ctx context.Context) (any, error) {
		return client.AvailableRooms(ctx)
	})

	register(LoaderAdminApprovals, access.PortalAdministration, func(ctx context.Context) (any, error) {
		events, err := client.Events(ctx, time.Time{}, time.Time{})
		if err != nil {
			return nil, err
		}
		pending := events[:0:0]
		for _, ev := range events {
			if ev.Status == models.StatusPending {
				pending = append(pending, ev)
			}
		}
		return pending, nil
	})
	register(LoaderAdminRooms, access.PortalAdministration, func(ctx context.Context) (any, error) {
		return client.AdminRooms(ctx)
	})
	register(LoaderAdminUsers, access.PortalAdministration, func(ctx context.Context) (any, error) {
		return client.AdminUsers(ctx)
	})
	register(LoaderAdminClubs, access.PortalAdministration, func(ctx context.Context) (any, error) {
		return client.AdminClubs(ctx)
	})
	register(LoaderAdminClubMembers, access.PortalAdministration, func(ctx context.Context) (any, error) {
		return client.AdminClubMembers(ctx)
	})
	register(LoaderAdminEvents, access.PortalAdministration, func(ctx context.Context) (any, error) {
		return client.AdminEvents(ctx)
	})
	register(LoaderAdminParticipants, access.PortalAdministration, func(ctx context.Context) (any, error) {
		return client.AdminEventParticipants(ctx)
	})

	return o
}
