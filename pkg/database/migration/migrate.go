package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/latoulicious/artgallery/pkg/database/models"
	"github.com/latoulicious/artgallery/pkg/logging"
)

// Models lists every table owned by the gallery service
func Models() []interface{} {
	return []interface{}{
		&models.Artwork{},
		&models.CatalogLog{},
	}
}

// RunMigration creates or updates the gallery tables
func RunMigration(db *gorm.DB) error {
	logger := logging.GetGlobalLoggerFactory().CreateLogger("migration")

	logger.Info("Running database migrations...", map[string]interface{}{
		"tables": len(Models()),
	})
	if err := db.AutoMigrate(Models()...); err != nil {
		logger.Error("Failed to migrate database", err, nil)
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Migrations completed successfully", nil)
	return nil
}

// Reset drops every gallery table. Run RunMigration afterwards to recreate
// them.
func Reset(db *gorm.DB) error {
	logger := logging.GetGlobalLoggerFactory().CreateLogger("migration")

	logger.Warn("Dropping gallery tables", nil)
	if err := db.Migrator().DropTable(Models()...); err != nil {
		logger.Error("Failed to drop tables", err, nil)
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return nil
}
