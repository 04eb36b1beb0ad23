package jobs

import (
	"context"
	"errors"

	"github.com/latoulicious/artgallery/pkg/catalog"
	"github.com/latoulicious/artgallery/pkg/logging"
)

// StatsReporter logs a summary of the available catalog
type StatsReporter struct {
	catalog catalog.Catalog
	logger  logging.Logger
}

func NewStatsReporter(c catalog.Catalog, logger logging.Logger) *StatsReporter {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &StatsReporter{catalog: c, logger: logger}
}

func (r *StatsReporter) Name() string { return "catalog-stats" }

func (r *StatsReporter) Run(ctx context.Context) error {
	result := catalog.Run(ctx, r.catalog.Stats)
	if !result.OK() {
		return errors.New(result.Error)
	}
	stats := result.Data

	fields := map[string]interface{}{
		"mode":     string(r.catalog.Mode()),
		"total":    stats.Total,
		"featured": stats.Featured,
	}
	for category, count := range stats.ByCategory {
		fields["category_"+string(category)] = count
	}
	r.logger.Info("Catalog stats", fields)
	return nil
}
