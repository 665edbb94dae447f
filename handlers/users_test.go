package handlers_test

import (
	"net/http"
	"testing"

	"homechef-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/users", "", obj{"name": "Nobody"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/users", "new@example.com", obj{"name": "New Cook", "role": "admin", "status": "fraud"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["inserted"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "new@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "active", user["status"])

	w = env.do(http.MethodPost, "/users", "new@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["inserted"])
}

func TestUserLookups(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("eater@example.com", models.RoleUser)
	other := env.seedUser("other@example.com", models.RoleUser)
	admin := env.seedUser("admin@example.com", models.RoleAdmin)

	w := env.do(http.MethodGet, "/users/"+user.Email, user.Email, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodGet, "/users/"+user.Email, other.Email, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(http.MethodGet, "/users/"+user.Email, admin.Email, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodGet, "/users/ghost@example.com", admin.Email, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/users/me/role", admin.Email, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", decode(t, w)["role"])

	w = env.do(http.MethodGet, "/users", user.Email, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(http.MethodGet, "/users", admin.Email, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decode(t, w)["count"])
}

func TestMarkFraud(t *testing.T) {
	env := newTestEnv(t)
	chef := env.seedUser("chef@example.com", models.RoleChef)
	admin := env.seedUser("admin@example.com", models.RoleAdmin)

	w := env.do(http.MethodPatch, "/users/fraud/missing", admin.Email, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPatch, "/users/fraud/"+chef.ID, admin.Email, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/meals", chef.Email, obj{"foodName": "Dal", "price": 3.0})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPublicEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/", "/health", "/state-machine"} {
		w := env.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := env.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, "Hello Chef", decode(t, w)["message"])

	w = env.do(http.MethodGet, "/state-machine", "", nil)
	assert.Len(t, decode(t, w)["stateMachine"], 7)
}
