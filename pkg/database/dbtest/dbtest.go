// Package dbtest opens migrated in-memory databases for tests
package dbtest

import (
	"testing"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/latoulicious/artgallery/pkg/database"
	"github.com/latoulicious/artgallery/pkg/database/migration"
)

// Open returns a fresh, migrated SQLite database private to tb
func Open(tb testing.TB) *gorm.DB {
	tb.Helper()

	opts := database.DefaultOptions()
	opts.LogLevel = gormLogger.Silent

	db, err := database.NewGormDBWithOptions("file::memory:", opts)
	if err != nil {
		tb.Fatalf("failed to open test database: %v", err)
	}
	tb.Cleanup(func() {
		_ = database.Close(db)
	})

	if err := migration.RunMigration(db); err != nil {
		tb.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
