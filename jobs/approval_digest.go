package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tracklane/tracklane/internal/authz"
	jobmetrics "github.com/tracklane/tracklane/internal/jobs"
)

// ProjectDigest is the per-project pending approval summary.
type ProjectDigest struct {
	ProjectID    uuid.UUID
	ProjectName  string
	Expenses     int64
	Timesheets   int64
	Deliverables int64
}

// Total returns the combined pending count.
func (d ProjectDigest) Total() int64 {
	return d.Expenses + d.Timesheets + d.Deliverables
}

// Digester produces the periodic pending-approvals digest. Counts come
// straight from storage rather than the inbox aggregator so the digest
// reports the whole backlog, not one actor's slice of it.
type Digester struct {
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
	printer *message.Printer
}

// NewDigester constructs a Digester.
func NewDigester(pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *Digester {
	return &Digester{
		pool:    pool,
		logger:  logger,
		metrics: metrics,
		printer: message.NewPrinter(language.English),
	}
}

// HandleApprovalDigestTask processes TaskApprovalDigest tasks.
func (d *Digester) HandleApprovalDigestTask(ctx context.Context, t *asynq.Task) error {
	var payload ApprovalDigestPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	tracker := d.metrics.Track("approval_digest")

	digests, err := d.collect(ctx, payload.ProjectID)
	if err != nil {
		return tracker.End(err)
	}
	for _, digest := range digests {
		if digest.Total() == 0 {
			continue
		}
		d.metrics.AddDigestItems("expense", int(digest.Expenses))
		d.metrics.AddDigestItems("timesheet", int(digest.Timesheets))
		d.metrics.AddDigestItems("deliverable", int(digest.Deliverables))
		d.logger.Info("approval digest",
			slog.String("project_id", digest.ProjectID.String()),
			slog.String("project", digest.ProjectName),
			slog.String("summary", d.printer.Sprintf(
				"%d expenses, %d timesheets and %d deliverables awaiting a decision",
				digest.Expenses, digest.Timesheets, digest.Deliverables)))
	}
	return tracker.End(nil)
}

// The status predicates interpolate the workflow constants so the query
// cannot drift from the values the repositories persist.
var digestQuery = fmt.Sprintf(`
SELECT p.id, p.name,
	(SELECT COUNT(*) FROM expenses e WHERE e.project_id = p.id AND e.status = '%s'),
	(SELECT COUNT(*) FROM timesheets t WHERE t.project_id = p.id AND t.status = '%s'),
	(SELECT COUNT(*) FROM deliverables d WHERE d.project_id = p.id AND d.status = '%s')
FROM projects p
WHERE p.active AND ($1::uuid IS NULL OR p.id = $1)
ORDER BY p.name`,
	authz.ExpenseSubmitted, authz.TimesheetSubmitted, authz.DeliverableSubmittedForReview)

func (d *Digester) collect(ctx context.Context, projectID *uuid.UUID) ([]ProjectDigest, error) {
	rows, err := d.pool.Query(ctx, digestQuery, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProjectDigest
	for rows.Next() {
		var digest ProjectDigest
		if err := rows.Scan(&digest.ProjectID, &digest.ProjectName,
			&digest.Expenses, &digest.Timesheets, &digest.Deliverables); err != nil {
			return nil, err
		}
		out = append(out, digest)
	}
	return out, rows.Err()
}
