// Package seed loads normalized fixture records into the database so the
// database data source starts with the same catalog as the fixture one.
package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/latoulicious/artgallery/pkg/artwork"
	"github.com/latoulicious/artgallery/pkg/database/models"
	"github.com/latoulicious/artgallery/pkg/database/repository"
	"github.com/latoulicious/artgallery/pkg/logging"
)

// Result summarizes a seeding run
type Result struct {
	Upserted int
	Failed   int
}

// FromFixture upserts records keyed by slug. A failing record is logged and
// counted; the run continues with the next one.
func FromFixture(ctx context.Context, db *gorm.DB, records []artwork.Artwork) (Result, error) {
	logger := logging.GetGlobalLoggerFactory().CreateLogger("seed")
	repo := repository.NewArtworkRepository(db)
	mapper := models.NewArtworkMapper()

	var result Result
	for i := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		row := mapper.ToDatabase(&records[i])
		if err := repo.Upsert(ctx, row); err != nil {
			result.Failed++
			logger.Error("Failed to seed artwork", err, map[string]interface{}{
				"slug":  records[i].Slug,
				"title": records[i].Title,
			})
			continue
		}
		result.Upserted++
	}

	logger.Info("Seeded artworks", map[string]interface{}{
		"upserted": result.Upserted,
		"failed":   result.Failed,
	})

	if result.Upserted == 0 && result.Failed > 0 {
		return result, fmt.Errorf("no artwork could be seeded (%d failures)", result.Failed)
	}
	return result, nil
}
