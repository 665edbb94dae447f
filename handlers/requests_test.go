package handlers_test

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"homechef-api/events"
	"homechef-api/handlers"
	"homechef-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var chefIDPattern = regexp.MustCompile(`^chef-\d{4}$`)

func submitRequest(t *testing.T, env *testEnv, email, requestType string) string {
	t.Helper()
	w := env.do(http.MethodPost, "/requests", email, obj{"requestType": requestType})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["request"].(map[string]interface{})["_id"].(string)
}

func TestSubmitRequest(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("cook@example.com", models.RoleUser)
	chef := env.seedUser("chef@example.com", models.RoleChef)

	w := env.do(http.MethodPost, "/requests", user.Email, obj{"requestType": "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	submitRequest(t, env, user.Email, "chef")

	w = env.do(http.MethodPost, "/requests", user.Email, obj{"requestType": "chef"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// a different type is tracked separately
	submitRequest(t, env, user.Email, "admin")

	w = env.do(http.MethodPost, "/requests", chef.Email, obj{"requestType": "chef"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApproveChefRequest(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser("admin@example.com", models.RoleAdmin)
	user := env.seedUser("cook@example.com", models.RoleUser)
	id := submitRequest(t, env, user.Email, "chef")

	w := env.do(http.MethodPatch, "/requests/accept/"+id, user.Email, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPatch, "/requests/accept/"+id, admin.Email, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "chef", body["role"])
	assert.Regexp(t, chefIDPattern, body["chefId"])

	ctx := context.Background()
	promoted, err := env.store.Users().GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, models.RoleChef, promoted.Role)
	require.NotNil(t, promoted.ChefID)
	assert.Equal(t, body["chefId"], *promoted.ChefID)

	req, err := env.store.Requests().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, req.RequestStatus)
	assert.NotNil(t, req.ResolvedAt)
	env.events.AssertCalled(t, "Publish", mock.Anything, events.SubjectRequestApproved, mock.Anything)

	w = env.do(http.MethodPatch, "/requests/accept/"+id, admin.Email, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApproveChefRequest_RetriesTakenChefID(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser("admin@example.com", models.RoleAdmin)
	env.seedUser("taken@example.com", models.RoleUser)
	taken := "chef-1000"
	require.NoError(t, env.store.Users().SetRole(context.Background(), "taken@example.com", models.RoleChef, &taken))
	user := env.seedUser("cook@example.com", models.RoleUser)
	id := submitRequest(t, env, user.Email, "chef")

	draws := []int{0, 0, 1233}
	handlers.SetRandIntn(env.handler, func(n int) int {
		v := draws[0]
		draws = draws[1:]
		return v
	})

	w := env.do(http.MethodPatch, "/requests/accept/"+id, admin.Email, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "chef-2233", decode(t, w)["chefId"])
	assert.Empty(t, draws)
}

func TestApproveAdminRequest(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser("admin@example.com", models.RoleAdmin)
	user := env.seedUser("ops@example.com", models.RoleUser)
	id := submitRequest(t, env, user.Email, "admin")

	w := env.do(http.MethodPatch, "/requests/accept/"+id, admin.Email, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "admin", body["role"])
	assert.Nil(t, body["chefId"])

	promoted, err := env.store.Users().GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)
	assert.Nil(t, promoted.ChefID)
}

func TestRejectRequest(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser("admin@example.com", models.RoleAdmin)
	user := env.seedUser("cook@example.com", models.RoleUser)
	id := submitRequest(t, env, user.Email, "chef")

	w := env.do(http.MethodPatch, "/requests/reject/missing", admin.Email, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPatch, "/requests/reject/"+id, admin.Email, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodPatch, "/requests/accept/"+id, admin.Email, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	unchanged, err := env.store.Users().GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, unchanged.Role)

	// once resolved, the user may ask again
	submitRequest(t, env, user.Email, "chef")

	w = env.do(http.MethodGet, "/requests", admin.Email, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["count"])
}
