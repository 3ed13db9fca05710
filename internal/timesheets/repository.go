package timesheets

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the timesheet does not exist.
var ErrNotFound = errors.New("timesheets: not found")

// Repository defines persistence for the timesheets module.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Timesheet, error)
	List(ctx context.Context, req ListTimesheetsRequest) ([]Timesheet, int, error)
	Create(ctx context.Context, t Timesheet) error
	Update(ctx context.Context, t Timesheet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const timesheetColumns = `id, project_id, resource_id, week_starting, hours, notes, status,
created_by, approved_by, approved_at, rejected_by, rejected_at, rejection_reason,
created_at, updated_at`

func scanTimesheet(row pgx.Row) (*Timesheet, error) {
	var t Timesheet
	err := row.Scan(&t.ID, &t.ProjectID, &t.ResourceID, &t.WeekStarting, &t.Hours,
		&t.Notes, &t.Status, &t.CreatedBy, &t.ApprovedBy, &t.ApprovedAt,
		&t.RejectedBy, &t.RejectedAt, &t.RejectionReason, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Get fetches a timesheet by id.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Timesheet, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+timesheetColumns+` FROM timesheets WHERE id = $1`, id)
	return scanTimesheet(row)
}

// List returns timesheets for a project, optionally filtered by status
// and owner.
func (r *PGRepository) List(ctx context.Context, req ListTimesheetsRequest) ([]Timesheet, int, error) {
	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	args := []any{req.ProjectID}
	filter := ``
	if req.Status != nil {
		args = append(args, string(*req.Status))
		filter += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if req.CreatedBy != nil {
		args = append(args, *req.CreatedBy)
		filter += fmt.Sprintf(` AND created_by = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM timesheets WHERE project_id = $1`+filter, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count timesheets: %w", err)
	}

	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE project_id = $1` + filter +
		fmt.Sprintf(` ORDER BY week_starting DESC, created_at DESC LIMIT %d OFFSET %d`, limit, req.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var timesheets []Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, 0, err
		}
		timesheets = append(timesheets, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return timesheets, total, nil
}

// Create inserts a new timesheet.
func (r *PGRepository) Create(ctx context.Context, t Timesheet) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO timesheets
(id, project_id, resource_id, week_starting, hours, notes, status, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		t.ID, t.ProjectID, t.ResourceID, t.WeekStarting, t.Hours, t.Notes,
		string(t.Status), t.CreatedBy, t.CreatedAt)
	return err
}

// Update writes the mutable columns back.
func (r *PGRepository) Update(ctx context.Context, t Timesheet) error {
	tag, err := r.pool.Exec(ctx, `UPDATE timesheets SET
week_starting=$2, hours=$3, notes=$4, status=$5, approved_by=$6, approved_at=$7,
rejected_by=$8, rejected_at=$9, rejection_reason=$10, updated_at=NOW()
WHERE id=$1`,
		t.ID, t.WeekStarting, t.Hours, t.Notes, string(t.Status),
		t.ApprovedBy, t.ApprovedAt, t.RejectedBy, t.RejectedAt, t.RejectionReason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a timesheet.
func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM timesheets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
