package testutil

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"aocbot/internal/models"
	"aocbot/internal/providers"
	"aocbot/internal/services"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLog reports whether a record with the given level contains substr in its format.
func (m *MockLogger) HasLog(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if l.Level == level && strings.Contains(l.Format, substr) {
			return true
		}
	}
	return false
}

// Messages returns the formatted records logged at level.
func (m *MockLogger) Messages(level string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, l := range m.Logs {
		if l.Level == level {
			out = append(out, fmt.Sprintf(l.Format, l.Args...))
		}
	}
	return out
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls by label.
type MockMetrics struct {
	mu            sync.Mutex
	Invocations   map[string]int
	Fetches       map[string]int
	Notifications map[string]int
	Events        map[string]int
	Members       int
	Requests      map[string]int
	CacheHits     int
	CacheMisses   int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Invocations:   make(map[string]int),
		Fetches:       make(map[string]int),
		Notifications: make(map[string]int),
		Events:        make(map[string]int),
		Requests:      make(map[string]int),
	}
}

func (m *MockMetrics) IncInvocations(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Invocations[outcome]++
}

func (m *MockMetrics) IncFetch(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetches[result]++
}

func (m *MockMetrics) IncNotifications(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications[result]++
}

func (m *MockMetrics) AddEvents(kind string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events[kind] += count
}

func (m *MockMetrics) SetMembersTracked(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Members = count
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[endpoint]++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) Handler() http.Handler { return http.NotFoundHandler() }

// MockFetcher implements services.LeaderboardFetcherInterface.
type MockFetcher struct {
	mu          sync.Mutex
	Leaderboard *models.Leaderboard
	Calls       int
}

func (m *MockFetcher) Fetch(_ context.Context) *models.Leaderboard {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.Leaderboard
}

// MockNotifier implements services.NotifierInterface.
type MockNotifier struct {
	mu       sync.Mutex
	Messages []string
	Err      error
}

func (m *MockNotifier) Submit(_ context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, message)
	return m.Err
}

// MockBoardService implements services.BoardServiceInterface.
type MockBoardService struct {
	mu        sync.Mutex
	Next      *models.Baseline
	Err       error
	Previous  []*models.Baseline
	LastState services.InvocationStatus
}

func (m *MockBoardService) Invoke(_ context.Context, previous *models.Baseline) (*models.Baseline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Previous = append(m.Previous, previous)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Next, nil
}

func (m *MockBoardService) NextState(ctx context.Context, previous *models.Baseline, _ *models.Leaderboard) (*models.Baseline, error) {
	return m.Invoke(ctx, previous)
}

func (m *MockBoardService) Status() services.InvocationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LastState
}

func (m *MockBoardService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Previous)
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }
