package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CatalogLog represents a persisted log entry of the catalog service
type CatalogLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Component string    `gorm:"index;not null"`
	Level     string    `gorm:"index;not null"`
	Message   string    `gorm:"not null"`
	Error     string
	Mode      string `gorm:"index"`
	Fields    datatypes.JSONMap
	CreatedAt time.Time `gorm:"index"`
}

func (CatalogLog) TableName() string {
	return "catalog_logs"
}

func (l *CatalogLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
