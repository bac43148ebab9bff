package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contaia-backend/shared/tenancy"
	"contaia-backend/shared/utils/cache"
	"contaia-backend/shared/utils/permission"
)

func newCachedAPI(t *testing.T) (*api, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	cm := cache.NewCacheManager(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute, nil)
	t.Cleanup(func() { _ = cm.Close() })

	reg, err := tenancy.NewRegistry()
	require.NoError(t, err)
	checker := permission.NewChecker(reg, cm, nil, nil)
	reg.Subscribe(checker.Invalidate)

	r := gin.New()
	New(reg, checker, nil, zap.NewNop()).Register(r.Group("/api"))
	return &api{t: t, router: r, registry: reg}, mr
}

func TestBatchCheckPermissions(t *testing.T) {
	a, _ := newCachedAPI(t)
	org := a.createOrg(map[string]any{"name": "Acme"})
	uid, err := a.registry.InviteUser(tenancy.InviteInput{Email: "bob@acme.com", Role: "user", OrganizationID: org})
	require.NoError(t, err)

	code, env := a.do(http.MethodPost, "/api/users/"+uid+"/permissions/batch-check", map[string]any{
		"permissions": []string{"reports", "settings"},
	})
	require.Equal(t, http.StatusOK, code, env.Error)
	got := decode[BatchCheckResponse](t, env)
	assert.Equal(t, uid, got.UserID)
	assert.Equal(t, map[string]bool{"reports": true, "settings": false}, got.Results)

	code, env = a.do(http.MethodPost, "/api/users/"+uid+"/permissions/batch-check", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "INVALID_INPUT", env.Code)

	code, env = a.do(http.MethodPost, "/api/users/missing/permissions/batch-check", map[string]any{
		"permissions": []string{"reports"},
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestCacheEndpoints(t *testing.T) {
	a, _ := newCachedAPI(t)
	org := a.createOrg(map[string]any{"name": "Acme"})
	uid, err := a.registry.InviteUser(tenancy.InviteInput{Email: "bob@acme.com", Role: "user", OrganizationID: org})
	require.NoError(t, err)

	code, _ := a.do(http.MethodPost, "/api/users/"+uid+"/permissions/batch-check", map[string]any{
		"permissions": []string{"reports", "workflows"},
	})
	require.Equal(t, http.StatusOK, code)

	code, env := a.do(http.MethodGet, "/api/cache/stats", nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode[map[string]any](t, env)
	assert.Equal(t, 2.0, stats["total_permission_keys"])
	assert.Equal(t, 60.0, stats["ttl_seconds"])

	code, env = a.do(http.MethodPost, "/api/cache/invalidate/all", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	_, env = a.do(http.MethodGet, "/api/cache/stats", nil)
	assert.Equal(t, 0.0, decode[map[string]any](t, env)["total_permission_keys"])
}

func TestCacheEndpointsWithoutCache(t *testing.T) {
	a := newAPI(t, nil)

	code, env := a.do(http.MethodGet, "/api/cache/stats", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", env.Code)

	code, _ = a.do(http.MethodPost, "/api/cache/invalidate/all", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestAssignRoleEndpoint(t *testing.T) {
	a := newAPI(t, nil)
	org := a.createOrg(map[string]any{"name": "Acme"})
	invite := func(email, role string) string {
		id, err := a.registry.InviteUser(tenancy.InviteInput{Email: email, Role: role, OrganizationID: org})
		require.NoError(t, err)
		return id
	}
	admin := invite("admin@acme.com", "org-admin")
	manager := invite("manager@acme.com", "manager")
	staff := invite("staff@acme.com", "user")

	code, env := a.do(http.MethodPut, "/api/users/"+staff+"/role", map[string]any{"role": "manager", "assigned_by": admin})
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, tenancy.RoleManager, decode[tenancy.User](t, env).Role)

	code, env = a.do(http.MethodPut, "/api/users/"+staff+"/role", map[string]any{"role": "org-admin", "assigned_by": manager})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Code)

	code, env = a.do(http.MethodPut, "/api/users/"+staff+"/role", map[string]any{"role": "user", "assigned_by": "missing"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Code)
}
