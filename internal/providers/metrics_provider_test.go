package providers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aocbot/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: false}})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncInvocations("updated")
	m.IncFetch("ok")
	m.IncNotifications("sent")
	m.AddEvents("star", 3)
	m.SetMembersTracked(10)
	m.IncRequestsTotal("/invoke", 200)
	m.ObserveRequestDuration("/invoke", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func scrape(t *testing.T, m MetricsProviderInterface) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	require.IsType(t, &MetricsProvider{}, m)

	m.IncInvocations("updated")
	m.IncFetch("ok")
	m.IncNotifications("sent")
	m.AddEvents("star", 2)
	m.AddEvents("joined", 0)
	m.SetMembersTracked(7)
	m.IncRequestsTotal("/invoke", 502)
	m.ObserveRequestDuration("/invoke", 10*time.Millisecond)
	m.IncCacheHits()

	body := scrape(t, m)
	assert.Contains(t, body, `aocbot_invocations_total{outcome="updated"} 1`)
	assert.Contains(t, body, `aocbot_fetch_total{result="ok"} 1`)
	assert.Contains(t, body, `aocbot_notifications_total{result="sent"} 1`)
	assert.Contains(t, body, `aocbot_events_total{kind="star"} 2`)
	assert.NotContains(t, body, `kind="joined"`)
	assert.Contains(t, body, `aocbot_members_tracked 7`)
	assert.Contains(t, body, `aocbot_requests_total{endpoint="/invoke",status="5xx"} 1`)
	assert.Contains(t, body, `aocbot_cache_hits_total 1`)
}

func TestMetricsProvider_IndependentRegistries(t *testing.T) {
	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}
	assert.NotPanics(t, func() {
		NewMetricsProvider(conf)
		NewMetricsProvider(conf)
	})
}

func TestHttpStatusBucket(t *testing.T) {
	assert.Equal(t, "1xx", httpStatusBucket(101))
	assert.Equal(t, "2xx", httpStatusBucket(200))
	assert.Equal(t, "3xx", httpStatusBucket(304))
	assert.Equal(t, "4xx", httpStatusBucket(404))
	assert.Equal(t, "5xx", httpStatusBucket(500))
}
