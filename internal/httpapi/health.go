package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/latoulicious/artgallery/internal/version"
	"github.com/latoulicious/artgallery/pkg/catalog"
)

const healthCheckTimeout = 2 * time.Second

// SystemHealth is the body of /health
type SystemHealth struct {
	Status      string       `json:"status"`
	Uptime      string       `json:"uptime"`
	StartTime   string       `json:"start_time"`
	Mode        catalog.Mode `json:"mode"`
	CatalogUp   bool         `json:"catalog_ready"`
	CatalogSize int          `json:"catalog_size"`
}

// HealthHandler serves /health and /status
type HealthHandler struct {
	catalog   catalog.Catalog
	startTime time.Time
}

func NewHealthHandler(c catalog.Catalog, startTime time.Time) *HealthHandler {
	if startTime.IsZero() {
		startTime = time.Now()
	}
	return &HealthHandler{catalog: c, startTime: startTime}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.health)
	r.GET("/status", h.status)
}

func (h *HealthHandler) check(ctx context.Context) SystemHealth {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	health := SystemHealth{
		Status:    "healthy",
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		StartTime: h.startTime.Format(time.RFC3339),
		Mode:      h.catalog.Mode(),
	}

	stats, err := h.catalog.Stats(ctx)
	if err != nil {
		health.Status = "unhealthy"
		return health
	}
	health.CatalogUp = true
	health.CatalogSize = stats.Total
	return health
}

func (h *HealthHandler) health(c *gin.Context) {
	health := h.check(c.Request.Context())
	if !health.CatalogUp {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}

func (h *HealthHandler) status(c *gin.Context) {
	health := h.check(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"application": version.Get(),
		"status":      health.Status,
		"uptime":      health.Uptime,
		"start_time":  health.StartTime,
		"components": gin.H{
			"catalog": gin.H{
				"mode":  health.Mode,
				"ready": health.CatalogUp,
				"size":  health.CatalogSize,
			},
		},
	})
}
