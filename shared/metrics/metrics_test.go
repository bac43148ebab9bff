package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contaia-backend/shared/tenancy"
)

func TestObserveTenancyEvents(t *testing.T) {
	m := New("tenancy-service", prometheus.NewRegistry())

	r, err := tenancy.NewRegistry()
	require.NoError(t, err)
	r.Subscribe(m.Observe)

	org, err := r.CreateOrganization(tenancy.OrganizationInput{Name: "Acme", Settings: &tenancy.OrganizationSettings{MaxUsers: 1}})
	require.NoError(t, err)
	for _, email := range []string{"a@acme.com", "b@acme.com"} {
		_, err := r.InviteUser(tenancy.InviteInput{Email: email, Role: "user", OrganizationID: org})
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Organizations))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Users))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TenancyEvents.WithLabelValues(string(tenancy.EventUserInvited))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotaExceeded.WithLabelValues(tenancy.ResourceUsers)))

	require.NoError(t, r.DeleteOrganization(org))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Organizations))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Users))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("tenancy-service", prometheus.NewRegistry())

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/organizations/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/organizations/1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/organizations/2", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("tenancy-service", "GET", "/api/organizations/:id", "200")))

	m.RecordCacheHit("redis")
	m.RecordCacheMiss("redis")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits.WithLabelValues("redis")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tenancy_organizations")
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
