package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/latoulicious/artgallery/pkg/artwork"
	"github.com/latoulicious/artgallery/pkg/catalog"
	"github.com/latoulicious/artgallery/pkg/logging"
)

// artworkView is an artwork plus its display strings
type artworkView struct {
	artwork.Artwork
	CategoryLabel string `json:"categoryLabel"`
	PriceDisplay  string `json:"priceDisplay"`
}

func newArtworkView(a artwork.Artwork) artworkView {
	return artworkView{
		Artwork:       a,
		CategoryLabel: a.Category.Label(),
		PriceDisplay:  a.Pricing.Display(),
	}
}

func newArtworkViews(items []artwork.Artwork) []artworkView {
	views := make([]artworkView, 0, len(items))
	for _, a := range items {
		views = append(views, newArtworkView(a))
	}
	return views
}

// ArtworkHandler serves the read-only artwork API
type ArtworkHandler struct {
	Catalog catalog.Catalog
	logger  logging.Logger
}

func NewArtworkHandler(c catalog.Catalog, logger logging.Logger) *ArtworkHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ArtworkHandler{Catalog: c, logger: logger}
}

func (h *ArtworkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/artworks", h.list)         // GET /api/artworks?category=birds
	rg.GET("/artworks/:id", h.getByID)  // GET /api/artworks/:id
	rg.GET("/slugs/:slug", h.getBySlug) // GET /api/slugs/:slug
	rg.GET("/stats", h.stats)           // GET /api/stats
}

func (h *ArtworkHandler) list(c *gin.Context) {
	ctx := c.Request.Context()

	category, filtered := c.GetQuery("category")
	var (
		items []artwork.Artwork
		err   error
	)
	if filtered {
		items, err = h.Catalog.GetArtworksByCategory(ctx, category)
	} else {
		items, err = h.Catalog.GetAvailableArtworks(ctx)
	}
	if err != nil {
		h.fail(c, "list", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":  h.Catalog.Mode(),
		"count": len(items),
		"items": newArtworkViews(items),
	})
}

func (h *ArtworkHandler) getByID(c *gin.Context) {
	a, err := h.Catalog.GetArtworkByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, newArtworkView(*a))
}

func (h *ArtworkHandler) getBySlug(c *gin.Context) {
	a, err := h.Catalog.GetArtworkBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, newArtworkView(*a))
}

func (h *ArtworkHandler) stats(c *gin.Context) {
	stats, err := h.Catalog.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// fail maps catalog errors onto status codes: 503 for an unavailable data
// source, 500 for anything else
func (h *ArtworkHandler) fail(c *gin.Context, op string, err error) {
	_ = c.Error(err)
	h.logger.Error("Artwork request failed", err, map[string]interface{}{
		"op":   op,
		"path": c.FullPath(),
	})

	if errors.Is(err, catalog.ErrUnavailable) || errors.Is(err, catalog.ErrFixtureUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": op + " failed: catalog unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
}
