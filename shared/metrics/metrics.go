package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contaia-backend/shared/tenancy"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	ServiceName string

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Tenancy metrics
	TenancyEvents *prometheus.CounterVec
	QuotaExceeded *prometheus.CounterVec
	Organizations prometheus.Gauge
	Users         prometheus.Gauge

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the metrics and registers them with reg. A nil reg uses a
// fresh private registry.
func New(serviceName string, reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	f := promauto.With(reg)
	return &Metrics{
		ServiceName: serviceName,
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path", "status"},
		),
		TenancyEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tenancy_events_total",
				Help: "Committed tenancy changes by event type",
			},
			[]string{"type"},
		),
		QuotaExceeded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tenancy_quota_exceeded_total",
				Help: "Quota warnings raised by resource",
			},
			[]string{"resource"},
		),
		Organizations: f.NewGauge(prometheus.GaugeOpts{
			Name: "tenancy_organizations",
			Help: "Number of organizations in the registry",
		}),
		Users: f.NewGauge(prometheus.GaugeOpts{
			Name: "tenancy_users",
			Help: "Number of users in the registry",
		}),
		CacheHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache_type"},
		),
		CacheMisses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache_type"},
		),
		gatherer: reg,
	}
}

// Middleware records request count and latency per route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(m.ServiceName, c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(m.ServiceName, c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry the metrics were registered with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Observe is a tenancy listener counting committed events.
func (m *Metrics) Observe(ev tenancy.Event) {
	m.TenancyEvents.WithLabelValues(string(ev.Type)).Inc()
	switch ev.Type {
	case tenancy.EventQuotaExceeded:
		if res, ok := ev.Data["resource"].(string); ok {
			m.QuotaExceeded.WithLabelValues(res).Inc()
		}
	case tenancy.EventOrganizationCreated:
		m.Organizations.Inc()
	case tenancy.EventOrganizationDeleted:
		m.Organizations.Dec()
		if n, ok := ev.Data["users_removed"].(int); ok {
			m.Users.Sub(float64(n))
		}
	case tenancy.EventUserInvited:
		m.Users.Inc()
	case tenancy.EventUserDeleted:
		m.Users.Dec()
	}
}

func (m *Metrics) RecordCacheHit(cacheType string) {
	m.CacheHits.WithLabelValues(cacheType).Inc()
}

func (m *Metrics) RecordCacheMiss(cacheType string) {
	m.CacheMisses.WithLabelValues(cacheType).Inc()
}
