package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/latoulicious/artgallery/pkg/database/models"
	"github.com/latoulicious/artgallery/pkg/logging"
)

// LogRepository stores catalog log entries in the catalog_logs table
type LogRepository struct {
	db *gorm.DB
}

var _ logging.LogRepository = (*LogRepository)(nil)

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// SaveLog implements logging.LogRepository
func (r *LogRepository) SaveLog(ctx context.Context, entry logging.LogEntry) error {
	row := &models.CatalogLog{
		Component: entry.Component,
		Level:     entry.Level,
		Message:   entry.Message,
		Error:     entry.Error,
		Mode:      entry.Mode,
		Fields:    datatypes.JSONMap(entry.Fields),
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// Recent returns the latest entries, newest first
func (r *LogRepository) Recent(ctx context.Context, limit int) ([]models.CatalogLog, error) {
	var rows []models.CatalogLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteBefore removes entries older than cutoff and reports how many went
func (r *LogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.CatalogLog{})
	return result.RowsAffected, result.Error
}
