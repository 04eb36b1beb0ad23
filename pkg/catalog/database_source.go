package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/latoulicious/artgallery/pkg/artwork"
	"github.com/latoulicious/artgallery/pkg/database"
	"github.com/latoulicious/artgallery/pkg/database/models"
	"github.com/latoulicious/artgallery/pkg/database/repository"
	"github.com/latoulicious/artgallery/pkg/logging"
)

// databaseCatalog serves artworks from the ORM. Every query runs under its
// own timeout.
type databaseCatalog struct {
	repo    *repository.ArtworkRepository
	mapper  *models.ArtworkMapper
	timeout time.Duration
	logger  logging.Logger
}

var _ Catalog = (*databaseCatalog)(nil)

func newDatabaseCatalog(db *gorm.DB, timeout time.Duration, logger logging.Logger) *databaseCatalog {
	return &databaseCatalog{
		repo:    repository.NewArtworkRepository(db),
		mapper:  models.NewArtworkMapper(),
		timeout: timeout,
		logger:  logger,
	}
}

func openDatabase(url string) (*gorm.DB, error) {
	return database.NewGormDB(url)
}

func (c *databaseCatalog) Mode() Mode {
	return ModeDatabase
}

func (c *databaseCatalog) GetAvailableArtworks(ctx context.Context) ([]artwork.Artwork, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.repo.ListAvailable(ctx)
	if err != nil {
		return nil, c.fail("getAvailableArtworks", err, nil)
	}
	return c.mapper.ToDomainList(rows), nil
}

func (c *databaseCatalog) GetArtworksByCategory(ctx context.Context, category string) ([]artwork.Artwork, error) {
	wanted, ok := artwork.ParseCategory(category)
	if !ok {
		return []artwork.Artwork{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.repo.ListAvailableByCategory(ctx, wanted)
	if err != nil {
		return nil, c.fail("getArtworksByCategory", err, map[string]interface{}{"category": string(wanted)})
	}
	return c.mapper.ToDomainList(rows), nil
}

func (c *databaseCatalog) GetArtworkByID(ctx context.Context, id string) (*artwork.Artwork, error) {
	// ids that are not UUIDs cannot exist in the table
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	row, err := c.repo.FindByID(ctx, parsed)
	if err != nil {
		return nil, c.fail("getArtworkById", err, map[string]interface{}{"id": id})
	}
	return c.mapper.ToDomain(row), nil
}

func (c *databaseCatalog) GetArtworkBySlug(ctx context.Context, slug string) (*artwork.Artwork, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	row, err := c.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, c.fail("getArtworkBySlug", err, map[string]interface{}{"slug": slug})
	}
	return c.mapper.ToDomain(row), nil
}

func (c *databaseCatalog) Stats(ctx context.Context) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	counts, err := c.repo.CountAvailableByCategory(ctx)
	if err != nil {
		return Stats{}, c.fail("stats", err, nil)
	}
	featured, err := c.repo.CountAvailableFeatured(ctx)
	if err != nil {
		return Stats{}, c.fail("stats", err, nil)
	}

	stats := emptyStats()
	for raw, n := range counts {
		category, _ := artwork.ParseCategory(raw)
		stats.ByCategory[category] += int(n)
		stats.Total += int(n)
	}
	stats.Featured = int(featured)
	return stats, nil
}

func (c *databaseCatalog) fail(op string, err error, fields map[string]interface{}) error {
	logFields := map[string]interface{}{"operation": op}
	for k, v := range fields {
		logFields[k] = v
	}
	c.logger.Error("Database query failed", err, logFields)
	return &QueryError{Op: op, Mode: ModeDatabase, Kind: ErrUnavailable, Err: err}
}
