// ABOUTME: Calendar event queries and booking submission
// ABOUTME: Wraps the /api/calendar/events read and write endpoints
package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/roomly-app/roomly/models"
)

// Events fetches events. With a non-zero range the server returns expanded
// occurrences inside [start, end); with zero times it returns raw events
// including their recurrence rules.
func (c *Client) Events(ctx context.Context, start, end time.Time) ([]models.Event, error) {
	query := url.Values{}
	if !start.IsZero() {
		query.Set("start", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		query.Set("end", end.Format(time.RFC3339))
	}
	var out []models.Event
	if err := c.do(ctx, http.MethodGet, "/api/calendar/events", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEvent submits a booking. The payload carries either EndsAt or
// RRule+DurationMinutes, never both; callers validate before submitting.
func (c *Client) CreateEvent(ctx context.Context, payload models.EventCreate) error {
	return c.do(ctx, http.MethodPost, "/api/calendar/events", nil, payload, nil)
}
