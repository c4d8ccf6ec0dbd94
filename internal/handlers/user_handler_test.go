package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"ecommerce-api/internal/handlers"
	"ecommerce-api/internal/models"
)

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice Doe", "alice@example.com", "secret1", models.RoleUser)

	w := env.do(t, http.MethodGet, "/user/profile", env.tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, handlers.UserResponse{
		ID:       user.ID,
		FullName: "Alice Doe",
		Email:    "alice@example.com",
		Role:     models.RoleUser,
	}, decode[handlers.UserResponse](t, w))
}

func TestGetAllUsers(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Root", "root@example.com", "rootpass", models.RoleAdmin)
	env.createUser(t, "Alice", "alice@example.com", "secret1", models.RoleUser)

	w := env.do(t, http.MethodGet, "/admin/users", env.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "password")

	resp := decode[struct {
		Users []handlers.UserResponse `json:"users"`
		Count int            `json:"count"`
	}](t, w)
	require.Equal(t, 2, resp.Count)
	require.Equal(t, "root@example.com", resp.Users[0].Email)
	require.Equal(t, "alice@example.com", resp.Users[1].Email)
}

func TestGetAllUsers_ForbiddenForUsers(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", "alice@example.com", "secret1", models.RoleUser)

	w := env.do(t, http.MethodGet, "/admin/users", env.tokenFor(t, user), nil)
	requireError(t, w, http.StatusForbidden, "Permission denied")
}

func TestAdminConnectionsAndHealth(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Root", "root@example.com", "rootpass", models.RoleAdmin)

	env.registry.Connect(42, stubConn{})
	env.registry.Connect(7, stubConn{})

	w := env.do(t, http.MethodGet, "/admin/connections", env.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Count   int    `json:"count"`
		UserIDs []uint `json:"user_ids"`
	}](t, w)
	require.Equal(t, 2, resp.Count)
	require.Equal(t, []uint{7, 42}, resp.UserIDs)

	w = env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[struct {
		Status      string `json:"status"`
		Connections int    `json:"connections"`
	}](t, w)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, 2, health.Connections)
}

func TestHome(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Welcome")
}
