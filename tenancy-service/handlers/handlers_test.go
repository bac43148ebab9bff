package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"contaia-backend/shared/database"
	"contaia-backend/shared/tenancy"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

type api struct {
	t        *testing.T
	router   *gin.Engine
	registry *tenancy.Registry
}

func newAPI(t *testing.T, audit *database.AuditWriter) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg, err := tenancy.NewRegistry()
	require.NoError(t, err)
	if audit != nil {
		reg.Subscribe(audit.Record)
	}

	r := gin.New()
	New(reg, nil, audit, zap.NewNop()).Register(r.Group("/api"))
	return &api{t: t, router: r, registry: reg}
}

func (a *api) do(method, path string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func (a *api) createOrg(body map[string]any) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/organizations", body)
	require.Equal(a.t, http.StatusCreated, code, env.Error)
	return decode[CreatedResponse](a.t, env).ID
}

func TestOrganizationEndpoints(t *testing.T) {
	a := newAPI(t, nil)

	id := a.createOrg(map[string]any{"name": "Acme", "plan": "professional"})

	code, env := a.do(http.MethodGet, "/api/organizations/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	org := decode[tenancy.Organization](t, env)
	assert.Equal(t, "Acme", org.Name)
	assert.Equal(t, tenancy.OrganizationActive, org.Status)
	assert.Equal(t, 25, org.Settings.MaxUsers)

	code, env = a.do(http.MethodPatch, "/api/organizations/"+id, map[string]any{
		"name":     "Acme Accounting",
		"settings": map[string]any{"max_users": 40},
	})
	require.Equal(t, http.StatusOK, code)
	org = decode[tenancy.Organization](t, env)
	assert.Equal(t, "Acme Accounting", org.Name)
	assert.Equal(t, 40, org.Settings.MaxUsers)
	assert.Equal(t, 100.0, org.Settings.MaxStorageGB)

	// an empty patch changes nothing
	code, env = a.do(http.MethodPatch, "/api/organizations/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Acme Accounting", decode[tenancy.Organization](t, env).Name)

	code, env = a.do(http.MethodPut, "/api/organizations/"+id+"/limits", map[string]any{"max_storage_gb": 10})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 10.0, decode[tenancy.Organization](t, env).Settings.MaxStorageGB)

	a.createOrg(map[string]any{"name": "Beta Bookkeeping"})
	code, env = a.do(http.MethodGet, "/api/organizations?search=beta", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[ListResponse[tenancy.Organization]](t, env)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Beta Bookkeeping", list.Items[0].Name)
	assert.Equal(t, tenancy.PlanStarter, list.Items[0].Plan)
}

func TestOrganizationErrors(t *testing.T) {
	a := newAPI(t, nil)

	code, env := a.do(http.MethodPost, "/api/organizations", map[string]any{"domain": "x.com"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "INVALID_INPUT", env.Code)
	assert.False(t, env.Success)

	code, env = a.do(http.MethodPost, "/api/organizations", map[string]any{"name": "X", "plan": "platinum"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "INVALID_INPUT", env.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/organizations", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, path := range []string{"/api/organizations/missing", "/api/organizations/missing/usage", "/api/organizations/missing/quota"} {
		code, env = a.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, "NOT_FOUND", env.Code, path)
	}
}

func TestAcmeLifecycle(t *testing.T) {
	a := newAPI(t, nil)
	org := a.createOrg(map[string]any{"name": "Acme"})

	code, env := a.do(http.MethodPost, "/api/users", map[string]any{
		"email": "alice@acme.com", "role": "manager", "organization_id": org,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	alice := decode[CreatedResponse](t, env).ID

	code, env = a.do(http.MethodGet, "/api/users/"+alice, nil)
	require.Equal(t, http.StatusOK, code)
	u := decode[tenancy.User](t, env)
	assert.Equal(t, []string{"workflows", "ai-review", "reports", "user-management"}, u.Permissions)
	assert.Equal(t, tenancy.UserPending, u.Status)
	assert.Equal(t, "alice", u.Name)

	code, env = a.do(http.MethodGet, "/api/organizations/"+org+"/usage", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, decode[tenancy.Usage](t, env).CurrentUsers)

	code, _ = a.do(http.MethodPost, "/api/organizations/"+org+"/suspend", nil)
	require.Equal(t, http.StatusOK, code)
	_, env = a.do(http.MethodGet, "/api/users/"+alice, nil)
	assert.Equal(t, tenancy.UserSuspended, decode[tenancy.User](t, env).Status)

	code, _ = a.do(http.MethodDelete, "/api/organizations/"+org, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = a.do(http.MethodGet, "/api/users/"+alice, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = a.do(http.MethodGet, "/api/organizations/"+org+"/usage", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUserEndpoints(t *testing.T) {
	a := newAPI(t, nil)
	org := a.createOrg(map[string]any{"name": "Smith"})

	code, env := a.do(http.MethodPost, "/api/users", map[string]any{"email": "bob@smith.com", "role": "firm-user"})
	assert.Equal(t, http.StatusUnprocessableEntity, code, "organization required for non platform admins")

	code, env = a.do(http.MethodPost, "/api/users", map[string]any{
		"email": "bob@smith.com", "role": "firm-user", "organization_id": org,
	})
	require.Equal(t, http.StatusCreated, code)
	bob := decode[CreatedResponse](t, env).ID

	code, env = a.do(http.MethodGet, "/api/users/"+bob+"/permissions/reports", nil)
	require.Equal(t, http.StatusOK, code)
	res := decode[map[string]any](t, env)
	assert.Equal(t, true, res["allowed"])
	assert.Equal(t, "registry", res["source"])

	_, env = a.do(http.MethodGet, "/api/users/"+bob+"/permissions/settings", nil)
	assert.Equal(t, false, decode[map[string]any](t, env)["allowed"])

	code, env = a.do(http.MethodPut, "/api/users/"+bob+"/role", map[string]any{"role": "firm-admin"})
	require.Equal(t, http.StatusOK, code)
	u := decode[tenancy.User](t, env)
	assert.Equal(t, tenancy.RoleOrgAdmin, u.Role)
	assert.Contains(t, u.Permissions, "settings")

	code, env = a.do(http.MethodPut, "/api/users/"+bob+"/permissions", map[string]any{"permissions": []string{"all"}})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"all"}, decode[tenancy.User](t, env).Permissions)

	code, env = a.do(http.MethodPatch, "/api/users/"+bob, map[string]any{"status": "active", "metadata": map[string]any{"title": "CPA"}})
	require.Equal(t, http.StatusOK, code)
	u = decode[tenancy.User](t, env)
	assert.Equal(t, tenancy.UserActive, u.Status)
	assert.Equal(t, "CPA", u.Metadata["title"])

	code, env = a.do(http.MethodGet, "/api/users?role=firm-admin", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[ListResponse[tenancy.User]](t, env).Items, 1)

	code, env = a.do(http.MethodGet, "/api/organizations/"+org+"/users", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[ListResponse[tenancy.User]](t, env).Items, 1)

	code, _ = a.do(http.MethodPost, "/api/users/"+bob+"/suspend", nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = a.do(http.MethodDelete, "/api/users/"+bob, nil)
	require.Equal(t, http.StatusOK, code)
	code, env = a.do(http.MethodDelete, "/api/users/"+bob, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestClientEndpoints(t *testing.T) {
	a := newAPI(t, nil)
	org := a.createOrg(map[string]any{"name": "Smith"})

	code, env := a.do(http.MethodPost, "/api/organizations/"+org+"/clients", map[string]any{
		"name": "Acme Corporation", "business_type": "Manufacturing",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	client := decode[CreatedResponse](t, env).ID

	code, env = a.do(http.MethodGet, "/api/clients/"+client, nil)
	require.Equal(t, http.StatusOK, code)
	cl := decode[tenancy.Client](t, env)
	assert.Equal(t, org, cl.FirmID)
	assert.True(t, cl.Settings.AIProcessingEnabled)
	assert.True(t, cl.Usage.LastProcessed.IsNever())

	code, env = a.do(http.MethodPatch, "/api/clients/"+client, map[string]any{
		"status": "onboarding", "usage": map[string]any{"storage_used_mb": 512},
	})
	require.Equal(t, http.StatusOK, code)
	cl = decode[tenancy.Client](t, env)
	assert.Equal(t, tenancy.ClientOnboarding, cl.Status)
	assert.Equal(t, 512.0, cl.Usage.StorageUsedMB)

	code, env = a.do(http.MethodGet, "/api/organizations/"+org+"/clients?filters[status]=onboarding", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[ListResponse[tenancy.Client]](t, env).Items, 1)

	code, _ = a.do(http.MethodPost, "/api/organizations/missing/clients", map[string]any{"name": "Orphan"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = a.do(http.MethodDelete, "/api/clients/"+client, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = a.do(http.MethodGet, "/api/clients/"+client, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUsageAndQuota(t *testing.T) {
	a := newAPI(t, nil)
	org := a.createOrg(map[string]any{"name": "Johnson Tax"})

	code, env := a.do(http.MethodPost, "/api/organizations/"+org+"/usage", map[string]any{"storage_gb": 30, "processing_hours": 5})
	require.Equal(t, http.StatusOK, code)
	usage := decode[tenancy.Usage](t, env)
	assert.Equal(t, 30.0, usage.StorageUsedGB)
	assert.Equal(t, 5.0, usage.ProcessingHoursUsed)

	code, env = a.do(http.MethodGet, "/api/organizations/"+org+"/quota", nil)
	require.Equal(t, http.StatusOK, code)
	report := decode[struct {
		OverQuota bool                   `json:"over_quota"`
		Warnings  []tenancy.QuotaWarning `json:"warnings"`
	}](t, env)
	assert.True(t, report.OverQuota)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, tenancy.ResourceStorageGB, report.Warnings[0].Resource)
	assert.Equal(t, 25.0, report.Warnings[0].Limit)
}

func TestSessionEndpoints(t *testing.T) {
	a := newAPI(t, nil)
	demo, err := tenancy.SeedDemoData(a.registry)
	require.NoError(t, err)
	smith := demo.Organizations["Smith & Associates CPA"]

	code, env := a.do(http.MethodPost, "/api/sessions", map[string]any{"user_id": demo.Users["admin@contaia.com"]})
	require.Equal(t, http.StatusCreated, code, env.Error)
	s := decode[SessionResponse](t, env)
	assert.Empty(t, s.CurrentOrganizationID)

	code, env = a.do(http.MethodGet, "/api/sessions/"+s.ID+"/users", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]tenancy.User](t, env), 4)

	code, env = a.do(http.MethodPost, "/api/sessions/"+s.ID+"/switch", map[string]any{"organization_id": smith})
	require.Equal(t, http.StatusOK, code)
	s = decode[SessionResponse](t, env)
	require.NotNil(t, s.CurrentOrganization)
	assert.Equal(t, "Smith & Associates CPA", s.CurrentOrganization.Name)
	require.NotNil(t, s.CurrentUser)
	assert.Equal(t, "admin@smith-cpa.com", s.CurrentUser.Email)

	// now acting as the firm admin, only Smith staff are visible
	_, env = a.do(http.MethodGet, "/api/sessions/"+s.ID+"/users", nil)
	assert.Len(t, decode[[]tenancy.User](t, env), 3)

	code, _ = a.do(http.MethodPost, "/api/sessions/"+s.ID+"/switch", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = a.do(http.MethodDelete, "/api/organizations/"+smith, nil)
	require.Equal(t, http.StatusOK, code)
	_, env = a.do(http.MethodGet, "/api/sessions/"+s.ID, nil)
	s = decode[SessionResponse](t, env)
	assert.Empty(t, s.CurrentOrganizationID)
	assert.Nil(t, s.CurrentUser)

	code, _ = a.do(http.MethodDelete, "/api/sessions/"+s.ID, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = a.do(http.MethodGet, "/api/sessions/"+s.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetRoles(t *testing.T) {
	a := newAPI(t, nil)

	code, env := a.do(http.MethodGet, "/api/roles", nil)
	require.Equal(t, http.StatusOK, code)
	roles := decode[[]RoleResponse](t, env)
	require.Len(t, roles, 4)
	assert.Equal(t, tenancy.RolePlatformAdmin, roles[0].Role)
	assert.Equal(t, []string{"all"}, roles[0].Permissions)
	assert.Equal(t, tenancy.RoleUser, roles[3].Role)
	assert.Contains(t, roles[3].Aliases, "firm-user")
}

func TestAuditEndpoint(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db, zap.NewNop()))

	w := database.NewAuditWriter(db, nil, 0)
	w.Start()
	a := newAPI(t, w)

	org := a.createOrg(map[string]any{"name": "Audited"})
	code, _ := a.do(http.MethodPost, "/api/organizations/"+org+"/suspend", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, w.Close(context.Background()))

	code, env := a.do(http.MethodGet, "/api/organizations/"+org+"/audit", nil)
	require.Equal(t, http.StatusOK, code)
	entries := decode[[]map[string]any](t, env)
	require.Len(t, entries, 2)
	assert.Equal(t, string(tenancy.EventOrganizationSuspended), entries[0]["event_type"])

	// without an audit store the route is not mounted
	plain := newAPI(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/organizations/"+org+"/audit", nil)
	rec := httptest.NewRecorder()
	plain.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
