// Package catalog answers the gallery's artwork queries from either the
// database or the bundled fixture. The data source is chosen once, when the
// catalog is built, from whether a database URL is configured.
package catalog

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/latoulicious/artgallery/pkg/artwork"
	"github.com/latoulicious/artgallery/pkg/fixture"
	"github.com/latoulicious/artgallery/pkg/logging"
)

// Mode identifies the data source behind a Catalog
type Mode string

const (
	ModeDatabase Mode = "database"
	ModeFixture  Mode = "fixture"
)

// DefaultQueryTimeout bounds every database query
const DefaultQueryTimeout = 5 * time.Second

// SelectMode picks the data source for a database URL. Any non-blank URL
// selects the database.
func SelectMode(databaseURL string) Mode {
	if strings.TrimSpace(databaseURL) != "" {
		return ModeDatabase
	}
	return ModeFixture
}

// Catalog is the read surface of the gallery.
//
// In database mode listings are ordered newest first, then by gallery
// order. In fixture mode they keep the fixture's order. Lookups return
// (nil, nil) when nothing matches; errors are reserved for an unavailable
// data source.
type Catalog interface {
	GetAvailableArtworks(ctx context.Context) ([]artwork.Artwork, error)
	GetArtworksByCategory(ctx context.Context, category string) ([]artwork.Artwork, error)
	GetArtworkByID(ctx context.Context, id string) (*artwork.Artwork, error)
	GetArtworkBySlug(ctx context.Context, slug string) (*artwork.Artwork, error)
	Stats(ctx context.Context) (Stats, error)
	Mode() Mode
}

// Stats summarizes the available catalog
type Stats struct {
	Total      int                      `json:"total"`
	ByCategory map[artwork.Category]int `json:"byCategory"`
	Featured   int                      `json:"featured"`
}

func emptyStats() Stats {
	byCategory := make(map[artwork.Category]int, len(artwork.Categories))
	for _, c := range artwork.Categories {
		byCategory[c] = 0
	}
	return Stats{ByCategory: byCategory}
}

// Config selects and tunes the data source
type Config struct {
	DatabaseURL  string
	QueryTimeout time.Duration
	FixturePath  string
	Fixture      fixture.Options
}

// Deps carries optional collaborators. A nil DB is opened from
// Config.DatabaseURL; a nil Loggers uses the global factory.
type Deps struct {
	DB      *gorm.DB
	Loggers logging.LoggerFactory
}

// New builds the catalog for cfg. The mode is fixed for the lifetime of the
// returned value.
func New(cfg Config, deps Deps) (Catalog, error) {
	loggers := deps.Loggers
	if loggers == nil {
		loggers = logging.GetGlobalLoggerFactory()
	}

	mode := SelectMode(cfg.DatabaseURL)
	if deps.DB != nil {
		mode = ModeDatabase
	}
	logger := loggers.CreateCatalogLogger(string(mode))

	if mode == ModeFixture {
		logger.Info("Using fixture artwork data, database not configured", map[string]interface{}{
			"fixture_path": cfg.FixturePath,
		})
		return newFixtureCatalog(cfg.FixturePath, cfg.Fixture, logger), nil
	}

	db := deps.DB
	if db == nil {
		opened, err := openDatabase(cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to open database", err, nil)
			return nil, &QueryError{Op: "open", Mode: ModeDatabase, Kind: ErrUnavailable, Err: err}
		}
		db = opened
	}

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	logger.Info("Using database artwork data", map[string]interface{}{
		"query_timeout": timeout.String(),
	})
	return newDatabaseCatalog(db, timeout, logger), nil
}
