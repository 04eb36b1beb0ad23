package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/latoulicious/artgallery/pkg/artwork"
)

// ArtworkMapper handles conversion between database rows and catalog records
type ArtworkMapper struct{}

// NewArtworkMapper creates a new artwork mapper
func NewArtworkMapper() *ArtworkMapper {
	return &ArtworkMapper{}
}

// ToDomain converts a database artwork to a catalog record. Unknown category
// values read back as the default category.
func (m *ArtworkMapper) ToDomain(row *Artwork) *artwork.Artwork {
	if row == nil {
		return nil
	}

	category, _ := artwork.ParseCategory(row.Category)
	dims := row.Dimensions.Data()
	pricing := row.Pricing.Data()
	image := row.PrimaryImage.Data()

	return &artwork.Artwork{
		ID:          row.ID.String(),
		Title:       row.Title,
		Slug:        row.Slug,
		Category:    category,
		Subcategory: cloneString(row.Subcategory),
		Medium:      row.Medium,
		Dimensions: artwork.Dimensions{
			Width:  dims.Width,
			Height: dims.Height,
			Unit:   dims.Unit,
		},
		Pricing:                artwork.Pricing{Original: cloneFloat(pricing.Original)},
		EmotionalTags:          cloneTags(row.EmotionalTags),
		StoryBehindBrushstroke: row.StoryBehindBrushstroke,
		InspirationSource:      row.InspirationSource,
		PrimaryImage: artwork.Image{
			URL:          image.URL,
			AltText:      image.AltText,
			ColorProfile: image.ColorProfile,
		},
		AvailabilityStatus: artwork.AvailabilityStatus(row.AvailabilityStatus),
		IsOriginal:         row.IsOriginal,
		Featured:           row.Featured,
		SearchTags:         cloneTags(row.SearchTags),
		GalleryOrder:       row.GalleryOrder,
		CreationYear:       row.CreationYear,
		SEODescription:     row.SEODescription,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

// ToDomainList converts rows in order
func (m *ArtworkMapper) ToDomainList(rows []Artwork) []artwork.Artwork {
	records := make([]artwork.Artwork, 0, len(rows))
	for i := range rows {
		records = append(records, *m.ToDomain(&rows[i]))
	}
	return records
}

// ToDatabase converts a catalog record to a database row. Record IDs that
// are not UUIDs (fixture ids such as "birds-1") leave the row ID unset so
// BeforeCreate assigns one.
func (m *ArtworkMapper) ToDatabase(record *artwork.Artwork) *Artwork {
	if record == nil {
		return nil
	}

	row := &Artwork{
		Title:       record.Title,
		Slug:        record.Slug,
		Category:    string(record.Category),
		Subcategory: cloneString(record.Subcategory),
		Medium:      record.Medium,
		Dimensions: datatypes.NewJSONType(DimensionsColumn{
			Width:  record.Dimensions.Width,
			Height: record.Dimensions.Height,
			Unit:   record.Dimensions.Unit,
		}),
		Pricing:                datatypes.NewJSONType(PricingColumn{Original: cloneFloat(record.Pricing.Original)}),
		EmotionalTags:          datatypes.NewJSONSlice(cloneTags(record.EmotionalTags)),
		StoryBehindBrushstroke: record.StoryBehindBrushstroke,
		InspirationSource:      record.InspirationSource,
		PrimaryImage: datatypes.NewJSONType(ImageColumn{
			URL:          record.PrimaryImage.URL,
			AltText:      record.PrimaryImage.AltText,
			ColorProfile: record.PrimaryImage.ColorProfile,
		}),
		AvailabilityStatus: string(record.AvailabilityStatus),
		IsOriginal:         record.IsOriginal,
		Featured:           record.Featured,
		SearchTags:         datatypes.NewJSONSlice(cloneTags(record.SearchTags)),
		GalleryOrder:       record.GalleryOrder,
		CreationYear:       record.CreationYear,
		SEODescription:     record.SEODescription,
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
	}

	if id, err := uuid.Parse(record.ID); err == nil {
		row.ID = id
	}
	return row
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
