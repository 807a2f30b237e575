package controllers

import (
	"fmt"
	"net/http"
	"time"

	"aocbot/internal/services"
)

type HealthController struct {
	service   services.BoardServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status         string                    `json:"status"`
	Uptime         string                    `json:"uptime"`
	UptimeSeconds  float64                   `json:"uptime_seconds"`
	LastInvocation services.InvocationStatus `json:"last_invocation"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(hc.startTime)
	writeJSON(w, healthResponse{
		Status:         "ok",
		Uptime:         formatDuration(uptime),
		UptimeSeconds:  uptime.Seconds(),
		LastInvocation: hc.service.Status(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.BoardServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
