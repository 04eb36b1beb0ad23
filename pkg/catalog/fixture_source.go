package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/latoulicious/artgallery/pkg/artwork"
	"github.com/latoulicious/artgallery/pkg/fixture"
	"github.com/latoulicious/artgallery/pkg/logging"
)

// fixtureCatalog serves normalized fixture records. The record set is built
// on first use and never modified afterwards; callers get copies.
type fixtureCatalog struct {
	path   string
	opts   fixture.Options
	logger logging.Logger

	once    sync.Once
	records []artwork.Artwork
	byID    map[string]int
	bySlug  map[string]int
	stats   Stats
	loadErr error
}

var _ Catalog = (*fixtureCatalog)(nil)

func newFixtureCatalog(path string, opts fixture.Options, logger logging.Logger) *fixtureCatalog {
	return &fixtureCatalog{
		path:   path,
		opts:   opts,
		logger: logger,
	}
}

func (c *fixtureCatalog) Mode() Mode {
	return ModeFixture
}

func (c *fixtureCatalog) load() {
	raws, rowIssues, err := fixture.Load(c.path)
	if err != nil {
		c.loadErr = err
		c.logger.Error("Failed to load fixture", err, map[string]interface{}{
			"fixture_path": c.path,
		})
		return
	}

	records, issues := fixture.NewNormalizer(c.opts).NormalizeAll(raws)
	for _, issue := range append(rowIssues, issues...) {
		c.logger.Info("Fixture field defaulted", map[string]interface{}{
			"index":  issue.Index,
			"id":     issue.ID,
			"field":  issue.Field,
			"reason": issue.Reason,
		})
	}

	c.records = records
	c.byID = make(map[string]int, len(records))
	c.bySlug = make(map[string]int, len(records))
	c.stats = emptyStats()
	for i, record := range records {
		if _, exists := c.byID[record.ID]; !exists {
			c.byID[record.ID] = i
		}
		if _, exists := c.bySlug[record.Slug]; !exists {
			c.bySlug[record.Slug] = i
		}
		if !record.IsAvailable() {
			continue
		}
		c.stats.Total++
		c.stats.ByCategory[record.Category]++
		if record.Featured {
			c.stats.Featured++
		}
	}

	c.logger.Info("Fixture artwork data loaded", map[string]interface{}{
		"total":       c.stats.Total,
		"by_category": c.stats.ByCategory,
		"featured":    c.stats.Featured,
	})
}

func (c *fixtureCatalog) ensureLoaded(op string) error {
	c.once.Do(c.load)
	if c.loadErr != nil {
		return &QueryError{Op: op, Mode: ModeFixture, Kind: ErrFixtureUnavailable, Err: c.loadErr}
	}
	return nil
}

func (c *fixtureCatalog) GetAvailableArtworks(ctx context.Context) ([]artwork.Artwork, error) {
	if err := c.ensureLoaded("getAvailableArtworks"); err != nil {
		return nil, err
	}
	return c.filter(func(a *artwork.Artwork) bool { return a.IsAvailable() }), nil
}

func (c *fixtureCatalog) GetArtworksByCategory(ctx context.Context, category string) ([]artwork.Artwork, error) {
	if err := c.ensureLoaded("getArtworksByCategory"); err != nil {
		return nil, err
	}

	wanted, ok := artwork.ParseCategory(category)
	if !ok {
		return []artwork.Artwork{}, nil
	}
	return c.filter(func(a *artwork.Artwork) bool {
		return a.Category == wanted && a.IsAvailable()
	}), nil
}

func (c *fixtureCatalog) GetArtworkByID(ctx context.Context, id string) (*artwork.Artwork, error) {
	if err := c.ensureLoaded("getArtworkById"); err != nil {
		return nil, err
	}
	return c.lookup(c.byID, strings.TrimSpace(id)), nil
}

func (c *fixtureCatalog) GetArtworkBySlug(ctx context.Context, slug string) (*artwork.Artwork, error) {
	if err := c.ensureLoaded("getArtworkBySlug"); err != nil {
		return nil, err
	}
	return c.lookup(c.bySlug, strings.ToLower(strings.TrimSpace(slug))), nil
}

func (c *fixtureCatalog) Stats(ctx context.Context) (Stats, error) {
	if err := c.ensureLoaded("stats"); err != nil {
		return Stats{}, err
	}

	stats := c.stats
	stats.ByCategory = make(map[artwork.Category]int, len(c.stats.ByCategory))
	for k, v := range c.stats.ByCategory {
		stats.ByCategory[k] = v
	}
	return stats, nil
}

func (c *fixtureCatalog) filter(keep func(*artwork.Artwork) bool) []artwork.Artwork {
	out := make([]artwork.Artwork, 0, len(c.records))
	for i := range c.records {
		if keep(&c.records[i]) {
			out = append(out, c.records[i].Clone())
		}
	}
	return out
}

func (c *fixtureCatalog) lookup(index map[string]int, key string) *artwork.Artwork {
	i, ok := index[key]
	if !ok {
		return nil
	}
	record := c.records[i].Clone()
	return &record
}
