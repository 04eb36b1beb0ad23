package jobs

import (
	"context"
	"time"

	"github.com/latoulicious/artgallery/pkg/logging"
)

// LogDeleter removes persisted log entries older than a cutoff
type LogDeleter interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// LogPruner enforces the retention window of persisted catalog logs
type LogPruner struct {
	repo      LogDeleter
	retention time.Duration
	logger    logging.Logger
	now       func() time.Time
}

func NewLogPruner(repo LogDeleter, retention time.Duration, logger logging.Logger) *LogPruner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &LogPruner{repo: repo, retention: retention, logger: logger, now: time.Now}
}

func (p *LogPruner) Name() string { return "log-prune" }

func (p *LogPruner) Run(ctx context.Context) error {
	cutoff := p.now().Add(-p.retention)
	deleted, err := p.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		p.logger.Info("Pruned catalog logs", map[string]interface{}{
			"deleted": deleted,
			"cutoff":  cutoff.Format(time.RFC3339),
		})
	}
	return nil
}
