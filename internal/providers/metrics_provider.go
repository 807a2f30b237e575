package providers

import (
	"net/http"
	"time"

	"aocbot/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsProviderInterface interface {
	IncInvocations(outcome string)
	IncFetch(result string)
	IncNotifications(result string)
	AddEvents(kind string, count int)
	SetMembersTracked(count int)
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	Handler() http.Handler
}

type MetricsProvider struct {
	registry        *prometheus.Registry
	invocations     *prometheus.CounterVec
	fetches         *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	events          *prometheus.CounterVec
	membersTracked  prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

func (m *MetricsProvider) IncInvocations(outcome string) {
	m.invocations.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncFetch(result string) {
	m.fetches.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) IncNotifications(result string) {
	m.notifications.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) AddEvents(kind string, count int) {
	if count > 0 {
		m.events.WithLabelValues(kind).Add(float64(count))
	}
}

func (m *MetricsProvider) SetMembersTracked(count int) {
	m.membersTracked.Set(float64(count))
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// NewMetricsProvider registers collectors on a private registry.
func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsProvider{
		registry: registry,

		invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aocbot_invocations_total",
			Help: "Total number of leaderboard invocations by outcome",
		}, []string{"outcome"}),

		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aocbot_fetch_total",
			Help: "Total number of leaderboard fetches by result",
		}, []string{"result"}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aocbot_notifications_total",
			Help: "Total number of webhook notifications by result",
		}, []string{"result"}),

		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aocbot_events_total",
			Help: "Total number of leaderboard events reported by kind",
		}, []string{"kind"}),

		membersTracked: factory.NewGauge(prometheus.GaugeOpts{
			Name: "aocbot_members_tracked",
			Help: "Number of members in the last baseline",
		}),

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aocbot_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aocbot_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "aocbot_cache_hits_total",
			Help: "Total number of leaderboard cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "aocbot_cache_misses_total",
			Help: "Total number of leaderboard cache misses",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncInvocations(_ string)                          {}
func (n *noopMetrics) IncFetch(_ string)                                {}
func (n *noopMetrics) IncNotifications(_ string)                        {}
func (n *noopMetrics) AddEvents(_ string, _ int)                        {}
func (n *noopMetrics) SetMembersTracked(_ int)                          {}
func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) Handler() http.Handler                            { return http.NotFoundHandler() }
