package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	startTime time.Time
	version   string
	source    string
}

func NewHealthHandler(version, source string) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		version:   version,
		source:    source,
	}
}

type healthResponse struct {
	System        string    `json:"system"`
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	DataSource    string    `json:"data_source"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	Timestamp     time.Time `json:"timestamp"`
}

// Health returns simple liveness check
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		System:        "wealthlab",
		Status:        "online",
		Version:       h.version,
		DataSource:    h.source,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now(),
	})
}
