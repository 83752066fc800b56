// ABOUTME: Wire types for the Roomly booking backend
// ABOUTME: Defines Identity, Event, Room, Club and admin listing rows
package models

import "time"

// Role strings as the backend stores them. RoleAdmin and RoleAdministration
// are synonyms; access.NormalizeRole collapses them.
const (
	RoleStudent        = "student"
	RoleClubLeader     = "club_leader"
	RoleAdmin          = "admin"
	RoleAdministration = "administration"
)

// Event status values.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Event types.
const (
	EventTypeEvent  = "event"
	EventTypeLesson = "lesson"
)

// Identity is the authenticated user snapshot returned by the auth exchange
// and persisted in the local store.
type Identity struct {
	ID       int64  `json:"id"`
	TgID     string `json:"tg_id,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
}

// AuthResponse is the body of a successful POST /api/auth/telegram.
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        Identity `json:"user"`
}

// Event is a calendar entry as the backend serves it. Exactly one of End or
// (RRule + Duration) is populated: a fixed occurrence or a recurring series.
// When the query carried a range the server pre-expands series into
// occurrences with ids of the form "<event>:<start>".
type Event struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Start     time.Time  `json:"start"`
	End       *time.Time `json:"end,omitempty"`
	RRule     string     `json:"rrule,omitempty"`
	Duration  string     `json:"duration,omitempty"` // "HH:MM", set only with RRule
	EventType string     `json:"event_type"`
	Status    string     `json:"status"`
	RoomID    *int64     `json:"room_id,omitempty"`
	RoomCode  string     `json:"room_code,omitempty"`
	ClubID    *int64     `json:"club_id,omitempty"`
}

// EventCreate is the booking submission payload. EndsAt and
// RRule+DurationMinutes are mutually exclusive; the form layer enforces that
// before anything reaches the network.
type EventCreate struct {
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	EventType       string  `json:"event_type"`
	StartsAt        string  `json:"starts_at"`
	EndsAt          *string `json:"ends_at"`
	RRule           *string `json:"rrule"`
	DurationMinutes *int    `json:"duration_minutes"`
	Timezone        string  `json:"timezone,omitempty"`
	RoomCode        *string `json:"room_code,omitempty"`
	ClubID          *int64  `json:"club_id,omitempty"`
	ParticipantIDs  []int64 `json:"participant_ids,omitempty"`
}

// Room as served by /api/rooms/available and the admin room endpoints.
type Room struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Building string `json:"building,omitempty"`
	Floor    string `json:"floor,omitempty"`
	RoomType string `json:"room_type,omitempty"`
	Capacity *int   `json:"capacity,omitempty"`
	IsActive bool   `json:"is_active"`
}

// RoomSave is the create/update payload for admin rooms. Code is required on
// create and carried in the path on update.
type RoomSave struct {
	Code     string  `json:"code,omitempty"`
	Building *string `json:"building"`
	Floor    *string `json:"floor"`
	RoomType *string `json:"room_type"`
	Capacity *int    `json:"capacity"`
	IsActive bool    `json:"is_active"`
}

// Club is a club the caller leads (GET /api/clubs/my).
type Club struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Membership is one row of the caller's club memberships.
type Membership struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"` // "leader" or "member"
}

// ClubMember is a member of a selected club as the club portal lists them.
type ClubMember struct {
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
}

// AdminUser is a row of the admin users listing.
type AdminUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
}

// AdminClub is a row of the admin clubs listing.
type AdminClub struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	OwnerUserID *int64 `json:"owner_user_id,omitempty"`
}

// AdminClubMember joins club and user identity for the admin listing.
type AdminClubMember struct {
	ClubID    int64  `json:"club_id"`
	ClubName  string `json:"club_name"`
	UserID    int64  `json:"user_id"`
	UserEmail string `json:"user_email,omitempty"`
	Role      string `json:"role"`
}

// AdminEvent is a row of the admin events listing.
type AdminEvent struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	EventType string `json:"event_type"`
	ClubID    *int64 `json:"club_id,omitempty"`
	RoomCode  string `json:"room_code,omitempty"`
}

// AdminEventParticipant is a row of the admin event-participants listing.
type AdminEventParticipant struct {
	EventID   int64  `json:"event_id"`
	UserID    int64  `json:"user_id"`
	UserEmail string `json:"user_email,omitempty"`
}
