package raid

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the RAID item does not exist.
var ErrNotFound = errors.New("raid: not found")

// Repository defines persistence for the RAID log.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context, req ListItemsRequest) ([]Item, int, error)
	Create(ctx context.Context, i Item) error
	Update(ctx context.Context, i Item) error
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

const itemColumns = `id, project_id, category, title, description, severity, open,
owner_user_id, created_by, closed_at, created_at, updated_at`

func scanItem(row pgx.Row) (*Item, error) {
	var i Item
	err := row.Scan(&i.ID, &i.ProjectID, &i.Category, &i.Title, &i.Description,
		&i.Severity, &i.Open, &i.OwnerUserID, &i.CreatedBy, &i.ClosedAt,
		&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

// Get fetches one RAID item.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM raid_items WHERE id = $1`, id)
	return scanItem(row)
}

// List returns RAID items for a project, optionally filtered by
// category and open state.
func (r *PGRepository) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	args := []any{req.ProjectID}
	filter := ``
	if req.Category != nil {
		args = append(args, string(*req.Category))
		filter += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if req.OpenOnly {
		filter += ` AND open`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM raid_items WHERE project_id = $1`+filter, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count raid items: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM raid_items WHERE project_id = $1` + filter +
		fmt.Sprintf(` ORDER BY severity DESC, created_at DESC LIMIT %d OFFSET %d`, limit, req.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create inserts a new RAID item.
func (r *PGRepository) Create(ctx context.Context, i Item) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO raid_items
(id, project_id, category, title, description, severity, open, owner_user_id, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		i.ID, i.ProjectID, string(i.Category), i.Title, i.Description,
		i.Severity, i.Open, i.OwnerUserID, i.CreatedBy, i.CreatedAt)
	return err
}

// Update writes the mutable columns back.
func (r *PGRepository) Update(ctx context.Context, i Item) error {
	tag, err := r.pool.Exec(ctx, `UPDATE raid_items SET
title=$2, description=$3, severity=$4, open=$5, owner_user_id=$6, closed_at=$7, updated_at=NOW()
WHERE id=$1`,
		i.ID, i.Title, i.Description, i.Severity, i.Open, i.OwnerUserID, i.ClosedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a RAID item.
func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM raid_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
