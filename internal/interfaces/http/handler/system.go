package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	appName   string
	version   string
	db        Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName, version string, db Pinger) *SystemHandler {
	return &SystemHandler{
		appName:   appName,
		version:   version,
		db:        db,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers system routes on the given group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/health", h.Health)
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information including version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.appName,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Health reports service and database health
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
		}
	}

	h.Success(c, resp)
}
