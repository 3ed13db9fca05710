package jobs

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	jobmetrics "github.com/tracklane/tracklane/internal/jobs"
	"github.com/tracklane/tracklane/internal/settings"
)

// Warmer pre-loads workflow settings for active projects so the first
// permission evaluation after a deploy does not pay the storage
// round-trip.
type Warmer struct {
	pool     *pgxpool.Pool
	settings *settings.Service
	logger   *slog.Logger
	metrics  *jobmetrics.Metrics
}

// NewWarmer constructs a Warmer.
func NewWarmer(pool *pgxpool.Pool, svc *settings.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *Warmer {
	return &Warmer{pool: pool, settings: svc, logger: logger, metrics: metrics}
}

// HandleSettingsWarmupTask processes TaskSettingsWarmup tasks.
func (w *Warmer) HandleSettingsWarmupTask(ctx context.Context, t *asynq.Task) error {
	tracker := w.metrics.Track("settings_warmup")

	rows, err := w.pool.Query(ctx, `SELECT id FROM projects WHERE active ORDER BY created_at`)
	if err != nil {
		return tracker.End(err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return tracker.End(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return tracker.End(err)
	}

	w.settings.Warm(ctx, ids)
	w.logger.Info("settings cache warmed", slog.Int("projects", len(ids)))
	return tracker.End(nil)
}
