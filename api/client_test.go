// ABOUTME: Tests for the backend API client
// ABOUTME: Covers auth headers, request ids, error mapping, and the auth exchange
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomly-app/roomly/models"
)

func TestDoSetsAuthAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("tok-123"))
	_, err := c.Events(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Len(t, gotReqID, 26, "request id should be a ULID")
}

func TestConcurrentRequestsGetUniqueIDs(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]bool)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.Header.Get("X-Request-ID")] = true
		mu.Unlock()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// One client shared across goroutines, like a portal load.
	c := NewClient(srv.URL, StaticToken("tok"))
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Events(context.Background(), time.Time{}, time.Time{})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, seen, 8, "every request carries its own ULID")
}

func TestDoOmitsAuthWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken(""))
	_, err := c.Events(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDoMapsNon2xxToAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.CreateEvent(context.Background(), models.EventCreate{Title: "x"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "nope", apiErr.Body)
}

func TestEventsRangeQuery(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[{"id":"1","title":"t","start":"2024-06-01T10:00:00Z","event_type":"event","status":"approved"}]`))
	}))
	defer srv.Close()

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	c := NewClient(srv.URL, nil)
	events, err := c.Events(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, start.Format(time.RFC3339), gotQuery.Get("start"))
	assert.Equal(t, end.Format(time.RFC3339), gotQuery.Get("end"))
}

func TestExchangeTelegram(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/telegram", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "init-payload", body["init_data"])

		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			AccessToken: "issued",
			TokenType:   "bearer",
			User:        models.Identity{ID: 7, Role: models.RoleClubLeader},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	res, err := c.ExchangeTelegram(context.Background(), "init-payload")
	require.NoError(t, err)
	assert.Equal(t, "issued", res.AccessToken)
	assert.Equal(t, models.RoleClubLeader, res.User.Role)
}

func TestExchangeTelegramBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "email required", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.ExchangeTelegram(context.Background(), "init-payload")
	assert.ErrorIs(t, err, ErrAuthBlocked)
}

func TestEventActionRejectsUnknownAction(t *testing.T) {
	c := NewClient("http://unused", nil)
	err := c.EventAction(context.Background(), "1", "escalate")
	assert.Error(t, err)
}
