package providers

import (
	"net/http"
	"time"

	"aocbot/internal/structures"
)

// local mocks to avoid import cycle with testutil
type nopLogger struct{}

func (m *nopLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *nopLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *nopLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *nopLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *nopLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *nopLogger) Close()                                        {}

type mockMetrics struct {
	noopMetrics
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                    { m.hits++ }
func (m *mockMetrics) IncCacheMisses()                                  { m.misses++ }
func (m *mockMetrics) Handler() http.Handler                            { return http.NotFoundHandler() }

func validConfig() *structures.Config {
	return &structures.Config{
		Board: structures.BoardConfig{
			Year:          "2021",
			Board:         "123456",
			SessionCookie: "cookie",
			WebhookURL:    "https://hooks.slack.com/services/T000/B000/XXXX",
		},
		Fetch: structures.FetchConfig{
			BaseURL:   "https://adventofcode.com",
			UserAgent: "aocbot test",
			Timeout:   30 * time.Second,
		},
		Output: structures.OutputConfig{
			Timezone: "Europe/Copenhagen",
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
		},
		Persistence: structures.Persistence{
			FilePath: "/tmp/aocbot-state.json",
		},
		Schedule: structures.ScheduleConfig{
			Spec: "*/15 * * * *",
		},
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8090,
		},
	}
}
