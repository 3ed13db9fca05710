package deliverables

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the deliverable or assessment does not exist.
var ErrNotFound = errors.New("deliverables: not found")

// Repository defines persistence for the deliverables module. Get and
// List hydrate the linked assessments so the guards always see the
// full criterion state.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Deliverable, error)
	List(ctx context.Context, req ListDeliverablesRequest) ([]Deliverable, int, error)
	Create(ctx context.Context, d Deliverable) error
	Update(ctx context.Context, d Deliverable) error
	Delete(ctx context.Context, id uuid.UUID) error
	LinkCriterion(ctx context.Context, a Assessment) error
	UnlinkCriterion(ctx context.Context, id uuid.UUID) error
	RecordAssessment(ctx context.Context, a Assessment) error
	GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const deliverableColumns = `id, project_id, title, description, due_on, status, created_by,
reviewed_by, reviewed_at, return_reason, delivered_by, delivered_at, created_at, updated_at`

func scanDeliverable(row pgx.Row) (*Deliverable, error) {
	var d Deliverable
	err := row.Scan(&d.ID, &d.ProjectID, &d.Title, &d.Description, &d.DueOn,
		&d.Status, &d.CreatedBy, &d.ReviewedBy, &d.ReviewedAt, &d.ReturnReason,
		&d.DeliveredBy, &d.DeliveredAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Get fetches a deliverable with its assessments.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Deliverable, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+deliverableColumns+` FROM deliverables WHERE id = $1`, id)
	d, err := scanDeliverable(row)
	if err != nil {
		return nil, err
	}
	assessments, err := r.assessmentsFor(ctx, []uuid.UUID{d.ID})
	if err != nil {
		return nil, err
	}
	d.Assessments = assessments[d.ID]
	return d, nil
}

// List returns deliverables for a project with assessments attached.
func (r *PGRepository) List(ctx context.Context, req ListDeliverablesRequest) ([]Deliverable, int, error) {
	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	args := []any{req.ProjectID}
	filter := ``
	if req.Status != nil {
		filter = ` AND status = $2`
		args = append(args, string(*req.Status))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM deliverables WHERE project_id = $1`+filter, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count deliverables: %w", err)
	}

	query := `SELECT ` + deliverableColumns + ` FROM deliverables WHERE project_id = $1` + filter +
		fmt.Sprintf(` ORDER BY due_on NULLS LAST, created_at DESC LIMIT %d OFFSET %d`, limit, req.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var deliverables []Deliverable
	var ids []uuid.UUID
	for rows.Next() {
		d, err := scanDeliverable(rows)
		if err != nil {
			return nil, 0, err
		}
		deliverables = append(deliverables, *d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		assessments, err := r.assessmentsFor(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range deliverables {
			deliverables[i].Assessments = assessments[deliverables[i].ID]
		}
	}
	return deliverables, total, nil
}

func (r *PGRepository) assessmentsFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]Assessment, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, deliverable_id, kind, criterion_id, criteria_met, notes, assessed_by, assessed_at
FROM deliverable_assessments WHERE deliverable_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]Assessment)
	for rows.Next() {
		var a Assessment
		var kind string
		if err := rows.Scan(&a.ID, &a.DeliverableID, &kind, &a.CriterionID,
			&a.CriteriaMet, &a.Notes, &a.AssessedBy, &a.AssessedAt); err != nil {
			return nil, err
		}
		a.Kind = CriterionKind(kind)
		out[a.DeliverableID] = append(out[a.DeliverableID], a)
	}
	return out, rows.Err()
}

// Create inserts a new deliverable.
func (r *PGRepository) Create(ctx context.Context, d Deliverable) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO deliverables
(id, project_id, title, description, due_on, status, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		d.ID, d.ProjectID, d.Title, d.Description, d.DueOn, string(d.Status), d.CreatedBy, d.CreatedAt)
	return err
}

// Update writes the mutable columns back.
func (r *PGRepository) Update(ctx context.Context, d Deliverable) error {
	tag, err := r.pool.Exec(ctx, `UPDATE deliverables SET
title=$2, description=$3, due_on=$4, status=$5, reviewed_by=$6, reviewed_at=$7,
return_reason=$8, delivered_by=$9, delivered_at=$10, updated_at=NOW()
WHERE id=$1`,
		d.ID, d.Title, d.Description, d.DueOn, string(d.Status),
		d.ReviewedBy, d.ReviewedAt, d.ReturnReason, d.DeliveredBy, d.DeliveredAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a deliverable and its assessment links.
func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM deliverables WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LinkCriterion attaches a KPI or quality standard to a deliverable
// with no verdict yet.
func (r *PGRepository) LinkCriterion(ctx context.Context, a Assessment) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO deliverable_assessments
(id, deliverable_id, kind, criterion_id, notes)
VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.DeliverableID, string(a.Kind), a.CriterionID, a.Notes)
	return err
}

// UnlinkCriterion removes an assessment link.
func (r *PGRepository) UnlinkCriterion(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM deliverable_assessments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordAssessment writes the verdict for one linked criterion.
func (r *PGRepository) RecordAssessment(ctx context.Context, a Assessment) error {
	tag, err := r.pool.Exec(ctx, `UPDATE deliverable_assessments SET
criteria_met=$2, notes=$3, assessed_by=$4, assessed_at=$5
WHERE id=$1`,
		a.ID, a.CriteriaMet, a.Notes, a.AssessedBy, a.AssessedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetAssessment fetches one assessment link.
func (r *PGRepository) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	var a Assessment
	var kind string
	err := r.pool.QueryRow(ctx, `SELECT id, deliverable_id, kind, criterion_id, criteria_met, notes, assessed_by, assessed_at
FROM deliverable_assessments WHERE id = $1`, id).
		Scan(&a.ID, &a.DeliverableID, &kind, &a.CriterionID, &a.CriteriaMet, &a.Notes, &a.AssessedBy, &a.AssessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.Kind = CriterionKind(kind)
	return &a, nil
}

var _ Repository = (*PGRepository)(nil)
