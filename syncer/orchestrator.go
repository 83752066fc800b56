// ABOUTME: Data-sync orchestrator: per-portal loaders and cascading invalidation
// ABOUTME: Maps each mutation kind to the exact loader set whose rendered data it staled
package syncer

import (
	"context"
	"fmt"
	"sync"
)

// Mutation identifies a state-changing operation whose effects are
// denormalized into one or more rendered views.
type Mutation string

const (
	MutationEventCreatedClub  Mutation = "event_created_club"
	MutationEventCreatedAdmin Mutation = "event_created_admin"
	MutationEventDecided      Mutation = "event_decided" // approve or reject
	MutationEventDeleted      Mutation = "event_deleted"
	MutationUserDeleted       Mutation = "user_deleted"
	MutationClubDeleted       Mutation = "club_deleted"
	MutationClubMemberRemoved Mutation = "club_member_removed"
	MutationMemberAdded       Mutation = "member_added"
	MutationMembershipLeft    Mutation = "membership_left"
	MutationRoomSaved         Mutation = "room_saved"
	MutationRoomDeleted       Mutation = "room_deleted"
	MutationClubSelected      Mutation = "club_selected"
)

// Loader names. Each loader fetches one entity collection and fills one view
// region; the name doubles as the region key.
const (
	LoaderStudentUpcoming = "student.upcoming"
	LoaderStudentClubs    = "student.clubs"
	LoaderStudentRooms    = "student.rooms"

	LoaderClubOptions  = "club.options"
	LoaderClubRequests = "club.requests"
	LoaderClubMembers  = "club.members"
	LoaderClubRooms    = "club.rooms"

	LoaderAdminApprovals    = "admin.approvals"
	LoaderAdminRooms        = "admin.rooms"
	LoaderAdminUsers        = "admin.users"
	LoaderAdminClubs        = "admin.clubs"
	LoaderAdminClubMembers  = "admin.club_members"
	LoaderAdminEvents       = "admin.events"
	LoaderAdminParticipants = "admin.participants"
)

// invalidationEdges is process-wide static configuration. Cascades are
// explicit, never transitive: deleting a user re-runs every loader whose
// rows denormalize user identity, and nothing else.
var invalidationEdges = map[Mutation][]string{
	MutationEventCreatedClub:  {LoaderClubRequests},
	MutationEventCreatedAdmin: {LoaderAdminApprovals},
	MutationEventDecided:      {LoaderAdminApprovals},
	MutationEventDeleted:      {LoaderAdminEvents, LoaderAdminParticipants, LoaderAdminApprovals},
	MutationUserDeleted:       {LoaderAdminUsers, LoaderAdminClubMembers, LoaderAdminParticipants, LoaderAdminEvents},
	MutationClubDeleted:       {LoaderAdminClubs, LoaderAdminClubMembers, LoaderAdminEvents},
	MutationClubMemberRemoved: {LoaderAdminClubMembers},
	MutationMemberAdded:       {LoaderClubMembers},
	MutationMembershipLeft:    {LoaderStudentClubs},
	MutationRoomSaved:         {LoaderAdminRooms},
	MutationRoomDeleted:       {LoaderAdminRooms},
	MutationClubSelected:      {LoaderClubMembers},
}

// calendarEdges names the portal whose calendars must re-render after a
// mutation, in addition to the loader re-runs.
var calendarEdges = map[Mutation]string{
	MutationEventCreatedClub:  "club",
	MutationEventCreatedAdmin: "administration",
	MutationEventDecided:      "administration",
	MutationEventDeleted:      "administration",
}

// RunFunc fetches one collection. The returned value is whatever the owning
// region renders; on error the region shows its empty state instead.
type RunFunc func(ctx context.Context) (any, error)

// Loader pairs a region with its fetch.
type Loader struct {
	Name   string
	Portal string
	Run    RunFunc
}

// Result is one loader's outcome. Err never propagates further than this;
// Data is nil exactly when Err is set.
type Result struct {
	Loader string
	Portal string
	Data   any
	Err    error
}

// Orchestrator owns the loader registry and the invalidation edges.
// CalendarHook, when set, is called with the portal key named by a
// mutation's calendar edge.
type Orchestrator struct {
	loaders      []Loader
	byName       map[string]Loader
	CalendarHook func(portal string)
}

func New() *Orchestrator {
	return &Orchestrator{byName: make(map[string]Loader)}
}

// Register adds a loader. Registration order is preserved per portal for
// deterministic result ordering, though loaders never depend on each other.
func (o *Orchestrator) Register(l Loader) error {
	if l.Name == "" || l.Run == nil {
		return fmt.Errorf("syncer: loader needs a name and a run func")
	}
	if _, dup := o.byName[l.Name]; dup {
		return fmt.Errorf("syncer: duplicate loader %q", l.Name)
	}
	o.loaders = append(o.loaders, l)
	o.byName[l.Name] = l
	return nil
}

// LoadAll runs every loader registered for the portal concurrently and
// returns once all have finished. A failed loader contributes a Result with
// Err set; it never prevents its siblings from running.
func (o *Orchestrator) LoadAll(ctx context.Context, portal string) []Result {
	var targets []Loader
	for _, l := range o.loaders {
		if l.Portal == portal {
			targets = append(targets, l)
		}
	}
	return o.run(ctx, targets)
}

// Invalidate re-runs exactly the loaders named by the mutation's edge and
// fires the calendar hook if one is configured for it. It returns after
// every re-run has finished, so the caller may treat the mutation's UI
// effects as complete.
func (o *Orchestrator) Invalidate(ctx context.Context, m Mutation) []Result {
	var targets []Loader
	for _, name := range invalidationEdges[m] {
		if l, ok := o.byName[name]; ok {
			targets = append(targets, l)
		}
	}
	results := o.run(ctx, targets)
	if portal, ok := calendarEdges[m]; ok && o.CalendarHook != nil {
		o.CalendarHook(portal)
	}
	return results
}

// CalendarEdge reports the portal whose calendars a mutation stales, when
// it has one. Callers that cannot use CalendarHook consult this instead.
func CalendarEdge(m Mutation) (string, bool) {
	portal, ok := calendarEdges[m]
	return portal, ok
}

// Edges returns the loader names a mutation invalidates, for introspection.
func Edges(m Mutation) []string {
	out := make([]string, len(invalidationEdges[m]))
	copy(out, invalidationEdges[m])
	return out
}

func (o *Orchestrator) run(ctx context.Context, targets []Loader) []Result {
	results := make([]Result, len(targets))
	var wg sync.WaitGroup
	for i, l := range targets {
		wg.Add(1)
		go func(i int, l Loader) {
			defer wg.Done()
			data, err := l.Run(ctx)
			if err != nil {
				results[i] = Result{Loader: l.Name, Portal: l.Portal, Err: err}
				return
			}
			results[i] = Result{Loader: l.Name, Portal: l.Portal, Data: data}
		}(i, l)
	}
	wg.Wait()
	return results
}
