package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aocbot/internal/services"
	"aocbot/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_ReportsLastInvocation(t *testing.T) {
	at := time.Date(2021, 12, 23, 11, 45, 48, 0, time.UTC)
	service := &testutil.MockBoardService{
		LastState: services.InvocationStatus{At: at, Outcome: services.OutcomeUpdated, Members: 12},
	}
	hc := NewHealthController(service)

	rr := httptest.NewRecorder()
	hc.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, services.OutcomeUpdated, resp.LastInvocation.Outcome)
	assert.Equal(t, 12, resp.LastInvocation.Members)
	assert.True(t, resp.LastInvocation.At.Equal(at))
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m0s", formatDuration(0))
	assert.Equal(t, "1h2m3s", formatDuration(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "26h0m5s", formatDuration(26*time.Hour+5*time.Second))
}
