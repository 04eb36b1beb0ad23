package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DimensionsColumn is the JSON payload of the dimensions column
type DimensionsColumn struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Unit   string `json:"unit"`
}

// PricingColumn is the JSON payload of the pricing column
type PricingColumn struct {
	Original *float64 `json:"original,omitempty"`
}

// ImageColumn is the JSON payload of the primary_image column
type ImageColumn struct {
	URL          string `json:"url"`
	AltText      string `json:"altText"`
	ColorProfile string `json:"colorProfile"`
}

// Artwork represents a gallery artwork in the database
type Artwork struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title                  string    `gorm:"not null"`
	Slug                   string    `gorm:"uniqueIndex;not null"`
	Category               string    `gorm:"index;not null"`
	Subcategory            *string
	Medium                 string `gorm:"not null"`
	Dimensions             datatypes.JSONType[DimensionsColumn]
	Pricing                datatypes.JSONType[PricingColumn]
	EmotionalTags          datatypes.JSONSlice[string]
	StoryBehindBrushstroke string
	InspirationSource      string
	PrimaryImage           datatypes.JSONType[ImageColumn]
	AvailabilityStatus     string `gorm:"index;not null"`
	IsOriginal             bool   `gorm:"not null"`
	Featured               bool   `gorm:"index;not null"`
	SearchTags             datatypes.JSONSlice[string]
	GalleryOrder           int `gorm:"index"`
	CreationYear           int
	SEODescription         string    `gorm:"column:seo_description"`
	CreatedAt              time.Time `gorm:"index"`
	UpdatedAt              time.Time
}

func (Artwork) TableName() string {
	return "artworks"
}

// BeforeCreate assigns a UUID to rows created without one
func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
