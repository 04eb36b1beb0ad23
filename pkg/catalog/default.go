package catalog

import (
	"sync"

	"github.com/latoulicious/artgallery/internal/config"
)

var (
	defaultCatalog Catalog
	defaultErr     error
	defaultOnce    sync.Once
	defaultMu      sync.RWMutex
)

// ConfigFrom extracts the catalog settings from the service configuration
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		DatabaseURL:  cfg.Database.URL,
		QueryTimeout: cfg.Database.QueryTimeout,
		FixturePath:  cfg.Fixture.Path,
		Fixture:      cfg.FixtureOptions(),
	}
}

// Default returns the process-wide catalog, built on first call from the
// loaded configuration
func Default() (Catalog, error) {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		if defaultCatalog != nil {
			return
		}

		cfg, err := config.Load()
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = New(ConfigFrom(cfg), Deps{})
	})

	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultCatalog, defaultErr
}

// SetDefault replaces the process-wide catalog
func SetDefault(c Catalog) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCatalog = c
	defaultErr = nil
}
