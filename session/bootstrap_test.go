// ABOUTME: Tests for startup identity resolution
// ABOUTME: Covers the blocked path, transient failures, and session persistence
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomly-app/roomly/api"
	"github.com/roomly-app/roomly/models"
)

func TestBootstrapExchangePersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			AccessToken: "fresh-token",
			User:        models.Identity{ID: 9, Role: models.RoleStudent},
		})
	}))
	defer srv.Close()

	store := openTestStore(t)
	out := Bootstrap(context.Background(), api.NewClient(srv.URL, store), store, "payload")

	assert.False(t, out.Blocked)
	assert.Empty(t, out.Message)
	require.NotNil(t, out.Identity)
	assert.Equal(t, models.RoleStudent, out.Identity.Role)
	assert.Equal(t, "fresh-token", store.Token())
}

// A 403 must force the blocked state even when a prior session is cached,
// and must not destroy the cached token.
func TestBootstrapBlockedOverridesCachedSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "email required", http.StatusForbidden)
	}))
	defer srv.Close()

	store := openTestStore(t)
	require.NoError(t, store.SetToken("old-token"))
	require.NoError(t, store.SetIdentity(models.Identity{ID: 1, Role: models.RoleAdmin}))

	out := Bootstrap(context.Background(), api.NewClient(srv.URL, store), store, "payload")

	assert.True(t, out.Blocked)
	assert.Contains(t, out.Message, "Email required")
	assert.Nil(t, out.Identity, "blocked bootstrap must refuse portal entry")
	assert.Equal(t, "old-token", store.Token())
}

// Transient auth failure keeps the existing session usable.
func TestBootstrapTransientFailureKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := openTestStore(t)
	require.NoError(t, store.SetIdentity(models.Identity{ID: 2, Role: models.RoleClubLeader}))

	out := Bootstrap(context.Background(), api.NewClient(srv.URL, store), store, "payload")

	assert.False(t, out.Blocked)
	assert.Equal(t, msgAuthFailed, out.Message)
	require.NotNil(t, out.Identity)
	assert.Equal(t, models.RoleClubLeader, out.Identity.Role)
}

// Without an init payload nothing is exchanged; the stored snapshot decides.
func TestBootstrapWithoutInitData(t *testing.T) {
	store := openTestStore(t)
	out := Bootstrap(context.Background(), nil, store, "")
	assert.False(t, out.Blocked)
	assert.Nil(t, out.Identity)

	require.NoError(t, store.SetIdentity(models.Identity{ID: 3, Role: models.RoleStudent}))
	out = Bootstrap(context.Background(), nil, store, "")
	require.NotNil(t, out.Identity)
	assert.Equal(t, int64(3), out.Identity.ID)
}
