package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"recstore/internal/providers"
	"recstore/internal/services"
	"time"
)

type HealthController struct {
	service   services.RecordServiceInterface
	logger    providers.Logger
	startTime time.Time
}

type healthResponse struct {
	Status        string         `json:"status"`
	Uptime        string         `json:"uptime"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	DataDir       string         `json:"data_dir"`
	Collections   map[string]int `json:"collections,omitempty"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		DataDir:       hc.service.DataDir(),
	}

	status := http.StatusOK
	counts, err := hc.service.Counts()
	if err != nil {
		hc.logger.Errorf(providers.TypeApp, "Health check failed: %s", err)
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		resp.Collections = counts
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.RecordServiceInterface, logger providers.Logger) *HealthController {
	return &HealthController{
		service:   service,
		logger:    logger,
		startTime: time.Now(),
	}
}
