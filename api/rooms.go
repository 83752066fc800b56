// ABOUTME: Room availability query for student and club portals
// ABOUTME: Admin room CRUD lives in admin.go
package api

import (
	"context"
	"net/http"

	"github.com/roomly-app/roomly/models"
)

// AvailableRooms lists rooms currently open for reservation.
func (c *Client) AvailableRooms(ctx context.Context) ([]models.Room, error) {
	var out []models.Room
	if err := c.do(ctx, http.MethodGet, "/api/rooms/available", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
