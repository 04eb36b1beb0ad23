package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/latoulicious/artgallery/pkg/artwork"
	"github.com/latoulicious/artgallery/pkg/database/models"
)

// listOrder is the display order of the public listings. Equal creation
// times fall back to the curated gallery order.
const listOrder = "created_at DESC, gallery_order ASC"

// upsertColumns are overwritten when a seeded slug already exists
var upsertColumns = []string{
	"title", "category", "subcategory", "medium", "dimensions", "pricing",
	"emotional_tags", "story_behind_brushstroke", "inspiration_source",
	"primary_image", "availability_status", "is_original", "featured",
	"search_tags", "gallery_order", "creation_year", "seo_description",
	"updated_at",
}

// ArtworkRepository handles database operations for Artwork model
type ArtworkRepository struct {
	db *gorm.DB
}

func NewArtworkRepository(db *gorm.DB) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

// ListAvailable returns every artwork that is available for sale
func (r *ArtworkRepository) ListAvailable(ctx context.Context) ([]models.Artwork, error) {
	var rows []models.Artwork
	err := r.db.WithContext(ctx).
		Where("availability_status = ?", string(artwork.StatusAvailable)).
		Order(listOrder).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAvailableByCategory returns available artworks of one category
func (r *ArtworkRepository) ListAvailableByCategory(ctx context.Context, category artwork.Category) ([]models.Artwork, error) {
	var rows []models.Artwork
	err := r.db.WithContext(ctx).
		Where("category = ? AND availability_status = ?", string(category), string(artwork.StatusAvailable)).
		Order(listOrder).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID returns the artwork with id, or nil when there is none
func (r *ArtworkRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Artwork, error) {
	var row models.Artwork
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindBySlug returns the artwork with slug, or nil when there is none
func (r *ArtworkRepository) FindBySlug(ctx context.Context, slug string) (*models.Artwork, error) {
	var row models.Artwork
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

type categoryCount struct {
	Category string
	Total    int64
}

// CountAvailableByCategory counts available artworks per category
func (r *ArtworkRepository) CountAvailableByCategory(ctx context.Context) (map[string]int64, error) {
	var counts []categoryCount
	err := r.db.WithContext(ctx).
		Model(&models.Artwork{}).
		Select("category, COUNT(*) AS total").
		Where("availability_status = ?", string(artwork.StatusAvailable)).
		Group("category").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(counts))
	for _, c := range counts {
		result[c.Category] = c.Total
	}
	return result, nil
}

// CountAvailableFeatured counts available artworks flagged as featured
func (r *ArtworkRepository) CountAvailableFeatured(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Artwork{}).
		Where("availability_status = ? AND featured = ?", string(artwork.StatusAvailable), true).
		Count(&total).Error
	return total, err
}

// Upsert inserts row or, when its slug exists, updates the stored artwork
func (r *ArtworkRepository) Upsert(ctx context.Context, row *models.Artwork) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(row).Error
}

// Create inserts a new artwork
func (r *ArtworkRepository) Create(ctx context.Context, row *models.Artwork) error {
	return r.db.WithContext(ctx).Create(row).Error
}
