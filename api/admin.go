// ABOUTME: Administrative listing, deletion, and assignment endpoints
// ABOUTME: Covers users, clubs, club members, events, participants, rooms, and approvals
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/roomly-app/roomly/models"
)

// Approval actions for pending bookings.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

func (c *Client) AdminUsers(ctx context.Context) ([]models.AdminUser, error) {
	var out []models.AdminUser
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminClubs(ctx context.Context) ([]models.AdminClub, error) {
	var out []models.AdminClub
	if err := c.do(ctx, http.MethodGet, "/api/admin/clubs", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminClubMembers(ctx context.Context) ([]models.AdminClubMember, error) {
	var out []models.AdminClubMember
	if err := c.do(ctx, http.MethodGet, "/api/admin/club-members", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminEvents(ctx context.Context) ([]models.AdminEvent, error) {
	var out []models.AdminEvent
	if err := c.do(ctx, http.MethodGet, "/api/admin/events", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminEventParticipants(ctx context.Context) ([]models.AdminEventParticipant, error) {
	var out []models.AdminEventParticipant
	if err := c.do(ctx, http.MethodGet, "/api/admin/event-participants", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminRooms(ctx context.Context) ([]models.Room, error) {
	var out []models.Room
	if err := c.do(ctx, http.MethodGet, "/api/admin/rooms", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRoom creates a room; payload.Code is required.
func (c *Client) CreateRoom(ctx context.Context, payload models.RoomSave) error {
	return c.do(ctx, http.MethodPost, "/api/admin/rooms", nil, payload, nil)
}

// UpdateRoom patches an existing room addressed by code.
func (c *Client) UpdateRoom(ctx context.Context, code string, payload models.RoomSave) error {
	payload.Code = ""
	return c.do(ctx, http.MethodPatch, "/api/admin/rooms/"+url.PathEscape(code), nil, payload, nil)
}

func (c *Client) DeleteRoom(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/rooms/"+url.PathEscape(code), nil, nil, nil)
}

func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/users/"+strconv.FormatInt(userID, 10), nil, nil, nil)
}

func (c *Client) DeleteClub(ctx context.Context, clubID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/clubs/"+strconv.FormatInt(clubID, 10), nil, nil, nil)
}

func (c *Client) DeleteClubMember(ctx context.Context, clubID, userID int64) error {
	query := url.Values{
		"club_id": {strconv.FormatInt(clubID, 10)},
		"user_id": {strconv.FormatInt(userID, 10)},
	}
	return c.do(ctx, http.MethodDelete, "/api/admin/club-members", query, nil, nil)
}

func (c *Client) DeleteEvent(ctx context.Context, eventID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/events/"+strconv.FormatInt(eventID, 10), nil, nil, nil)
}

func (c *Client) DeleteEventParticipant(ctx context.Context, eventID, userID int64) error {
	query := url.Values{
		"event_id": {strconv.FormatInt(eventID, 10)},
		"user_id":  {strconv.FormatInt(userID, 10)},
	}
	return c.do(ctx, http.MethodDelete, "/api/admin/event-participants", query, nil, nil)
}

// EventAction approves or rejects a pending booking.
func (c *Client) EventAction(ctx context.Context, eventID, action string) error {
	if action != ActionApprove && action != ActionReject {
		return fmt.Errorf("unknown event action %q", action)
	}
	return c.do(ctx, http.MethodPost,
		fmt.Sprintf("/api/admin/events/%s/%s", url.PathEscape(eventID), action), nil, nil, nil)
}

type roleAssign struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AssignRole sets a user's role by email.
func (c *Client) AssignRole(ctx context.Context, email, role string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/users/role", nil, roleAssign{Email: email, Role: role}, nil)
}

type clubCreate struct {
	Name       string  `json:"name"`
	OwnerEmail *string `json:"owner_email"`
}

// CreateClub creates a club, optionally assigning an owner by email.
func (c *Client) CreateClub(ctx context.Context, name, ownerEmail string) error {
	payload := clubCreate{Name: name}
	if ownerEmail != "" {
		payload.OwnerEmail = &ownerEmail
	}
	return c.do(ctx, http.MethodPost, "/api/admin/clubs", nil, payload, nil)
}

type leaderAssign struct {
	ClubName  string `json:"club_name"`
	UserEmail string `json:"user_email"`
}

// AssignLeader makes the user the leader of the named club.
func (c *Client) AssignLeader(ctx context.Context, clubName, userEmail string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/clubs/leader", nil,
		leaderAssign{ClubName: clubName, UserEmail: userEmail}, nil)
}
