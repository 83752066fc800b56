// ABOUTME: Club membership lifecycle endpoints
// ABOUTME: My clubs, memberships, and member add/remove by club name
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/roomly-app/roomly/models"
)

// MyClubs lists clubs the caller leads, for the club portal's selector.
func (c *Client) MyClubs(ctx context.Context) ([]models.Club, error) {
	var out []models.Club
	if err := c.do(ctx, http.MethodGet, "/api/clubs/my", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Memberships lists the caller's own club memberships.
func (c *Client) Memberships(ctx context.Context) ([]models.Membership, error) {
	var out []models.Membership
	if err := c.do(ctx, http.MethodGet, "/api/clubs/memberships", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClubMembers lists members of the named club.
func (c *Client) ClubMembers(ctx context.Context, clubName string) ([]models.ClubMember, error) {
	query := url.Values{"club_name": {clubName}}
	var out []models.ClubMember
	if err := c.do(ctx, http.MethodGet, "/api/clubs/members", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type clubMemberAdd struct {
	ClubName  string `json:"club_name"`
	UserEmail string `json:"user_email"`
}

// AddClubMember adds a user to the named club by email.
func (c *Client) AddClubMember(ctx context.Context, clubName, userEmail string) error {
	return c.do(ctx, http.MethodPost, "/api/clubs/members", nil,
		clubMemberAdd{ClubName: clubName, UserEmail: userEmail}, nil)
}

// LeaveClub removes the caller's own membership in the named club.
func (c *Client) LeaveClub(ctx context.Context, clubName string) error {
	query := url.Values{"club_name": {clubName}}
	return c.do(ctx, http.MethodDelete, "/api/clubs/members", query, nil, nil)
}
