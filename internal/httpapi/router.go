// Package httpapi exposes the artwork catalog over HTTP
package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/latoulicious/artgallery/pkg/catalog"
	"github.com/latoulicious/artgallery/pkg/logging"
)

// RouterConfig wires the HTTP surface
type RouterConfig struct {
	Catalog     catalog.Catalog
	Loggers     logging.LoggerFactory
	CORSOrigins []string
	RateLimiter *RateLimiter // nil disables rate limiting
	StartTime   time.Time
}

// NewRouter builds the gin engine serving /health, /status and /api
func NewRouter(cfg RouterConfig) *gin.Engine {
	loggers := cfg.Loggers
	if loggers == nil {
		loggers = logging.GetGlobalLoggerFactory()
	}
	httpLogger := loggers.CreateHTTPLogger()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(httpLogger))
	r.Use(CORS(cfg.CORSOrigins))

	NewHealthHandler(cfg.Catalog, cfg.StartTime).RegisterRoutes(r)

	api := r.Group("/api")
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Middleware())
	}
	NewArtworkHandler(cfg.Catalog, httpLogger.WithComponent("artworks")).RegisterRoutes(api)

	return r
}
