package migration

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/latoulicious/artgallery/pkg/database/models"
)

// SlowQueryThreshold marks a round trip as slow in a CheckReport
const SlowQueryThreshold = 5 * time.Second

var errCheckRollback = errors.New("check rollback")

// CheckReport describes the state of a gallery database
type CheckReport struct {
	Dialect         string
	ServerVersion   string
	MissingTables   []string
	Artworks        int64
	OpenConnections int
	Idle            int
	RoundTrip       time.Duration
}

// Slow reports whether the check query exceeded SlowQueryThreshold
func (r CheckReport) Slow() bool {
	return r.RoundTrip > SlowQueryThreshold
}

// Ready reports whether every gallery table exists
func (r CheckReport) Ready() bool {
	return len(r.MissingTables) == 0
}

// Check tests connectivity, the server version, the gallery tables and
// transaction support. Missing tables are reported, not treated as errors.
func Check(ctx context.Context, db *gorm.DB) (CheckReport, error) {
	report := CheckReport{Dialect: db.Dialector.Name()}
	db = db.WithContext(ctx)

	sqlDB, err := db.DB()
	if err != nil {
		return report, fmt.Errorf("failed to get underlying database connection: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return report, fmt.Errorf("database ping failed: %w", err)
	}

	versionQuery := "SELECT version()"
	if report.Dialect == "sqlite" {
		versionQuery = "SELECT sqlite_version()"
	}
	if err := db.Raw(versionQuery).Scan(&report.ServerVersion).Error; err != nil {
		return report, fmt.Errorf("failed to get database version: %w", err)
	}

	for _, model := range Models() {
		if !db.Migrator().HasTable(model) {
			name := fmt.Sprintf("%T", model)
			if tabler, ok := model.(schema.Tabler); ok {
				name = tabler.TableName()
			}
			report.MissingTables = append(report.MissingTables, name)
		}
	}
	if !slices.Contains(report.MissingTables, models.Artwork{}.TableName()) {
		if err := db.Model(&models.Artwork{}).Count(&report.Artworks).Error; err != nil {
			return report, fmt.Errorf("failed to count artworks: %w", err)
		}
	}

	if err := checkTransaction(db); err != nil {
		return report, fmt.Errorf("transaction test failed: %w", err)
	}

	start := time.Now()
	var one int
	if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		return report, fmt.Errorf("check query failed: %w", err)
	}
	report.RoundTrip = time.Since(start)

	stats := sqlDB.Stats()
	report.OpenConnections = stats.OpenConnections
	report.Idle = stats.Idle
	return report, nil
}

// checkTransaction writes to a temporary table inside a transaction that is
// always rolled back
func checkTransaction(db *gorm.DB) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("CREATE TEMPORARY TABLE gallery_check (id INTEGER PRIMARY KEY, note TEXT)").Error; err != nil {
			return fmt.Errorf("failed to create temporary table: %w", err)
		}
		if err := tx.Exec("INSERT INTO gallery_check (id, note) VALUES (1, 'check')").Error; err != nil {
			return fmt.Errorf("failed to insert test row: %w", err)
		}
		var count int64
		if err := tx.Raw("SELECT COUNT(*) FROM gallery_check").Scan(&count).Error; err != nil {
			return fmt.Errorf("failed to read test row: %w", err)
		}
		if count != 1 {
			return fmt.Errorf("expected 1 test row, found %d", count)
		}
		return errCheckRollback
	})
	if errors.Is(err, errCheckRollback) {
		return nil
	}
	if err == nil {
		return errors.New("transaction was not rolled back")
	}
	return err
}
