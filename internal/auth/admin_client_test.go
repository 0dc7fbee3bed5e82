package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdminAPI is an in-memory stand-in for the Supabase admin users endpoint
type fakeAdminAPI struct {
	mu      sync.Mutex
	users   []AdminUser
	deleted []string
}

func (f *fakeAdminAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("apikey") != "service-key" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/auth/v1/admin/users":
		json.NewEncoder(w).Encode(listUsersResponse{Users: f.users})
	case r.Method == http.MethodPost && r.URL.Path == "/auth/v1/admin/users":
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.EmailConfirm {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		user := AdminUser{ID: "id-" + req.Email, Email: req.Email, Role: "authenticated"}
		f.users = append(f.users, user)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(user)
	case r.Method == http.MethodDelete:
		f.deleted = append(f.deleted, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestAdminClient_EnsureUser(t *testing.T) {
	api := &fakeAdminAPI{}
	srv := httptest.NewServer(api)
	defer srv.Close()

	client := NewAdminClient(srv.URL+"/", "service-key")
	ctx := context.Background()

	id, created, err := client.EnsureUser(ctx, "system@yogablocks.dev", "pw")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "id-system@yogablocks.dev", id)

	again, created, err := client.EnsureUser(ctx, "SYSTEM@yogablocks.dev", "pw")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, again)
	assert.Len(t, api.users, 1)
}

func TestAdminClient_DeleteUserByEmail(t *testing.T) {
	api := &fakeAdminAPI{users: []AdminUser{{ID: "u1", Email: "a@example.com"}}}
	srv := httptest.NewServer(api)
	defer srv.Close()

	client := NewAdminClient(srv.URL, "service-key")
	ctx := context.Background()

	require.NoError(t, client.DeleteUserByEmail(ctx, "missing@example.com"))
	assert.Empty(t, api.deleted)

	require.NoError(t, client.DeleteUserByEmail(ctx, "a@example.com"))
	assert.Equal(t, []string{"/auth/v1/admin/users/u1"}, api.deleted)
}

func TestAdminClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(&fakeAdminAPI{})
	defer srv.Close()

	client := NewAdminClient(srv.URL, "wrong-key")
	_, err := client.CreateUser(context.Background(), "a@example.com", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
