package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the resource does not exist.
var ErrNotFound = errors.New("resources: not found")

// Repository defines persistence for the resources module.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Resource, error)
	List(ctx context.Context, req ListResourcesRequest) ([]Resource, int, error)
	Create(ctx context.Context, res Resource) error
	Update(ctx context.Context, res Resource) error
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

const resourceColumns = `id, project_id, name, user_id, resource_type, sell_price, cost_price,
margin, active, created_at, updated_at`

func scanResource(row pgx.Row) (*Resource, error) {
	var res Resource
	err := row.Scan(&res.ID, &res.ProjectID, &res.Name, &res.UserID, &res.ResourceType,
		&res.SellPrice, &res.CostPrice, &res.Margin, &res.Active, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// Get fetches a resource by id.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Resource, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id)
	return scanResource(row)
}

// List returns resources for a project.
func (r *PGRepository) List(ctx context.Context, req ListResourcesRequest) ([]Resource, int, error) {
	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	filter := ``
	if req.ActiveOnly {
		filter = ` AND active`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resources WHERE project_id = $1`+filter, req.ProjectID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count resources: %w", err)
	}

	query := `SELECT ` + resourceColumns + ` FROM resources WHERE project_id = $1` + filter +
		fmt.Sprintf(` ORDER BY name LIMIT %d OFFSET %d`, limit, req.Offset)
	rows, err := r.pool.Query(ctx, query, req.ProjectID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var resources []Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, 0, err
		}
		resources = append(resources, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return resources, total, nil
}

// Create inserts a new resource.
func (r *PGRepository) Create(ctx context.Context, res Resource) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO resources
(id, project_id, name, user_id, resource_type, sell_price, cost_price, margin, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		res.ID, res.ProjectID, res.Name, res.UserID, res.ResourceType,
		res.SellPrice, res.CostPrice, res.Margin, res.Active, res.CreatedAt)
	return err
}

// Update writes the mutable columns back.
func (r *PGRepository) Update(ctx context.Context, res Resource) error {
	tag, err := r.pool.Exec(ctx, `UPDATE resources SET
name=$2, user_id=$3, resource_type=$4, sell_price=$5, cost_price=$6, margin=$7, active=$8, updated_at=NOW()
WHERE id=$1`,
		res.ID, res.Name, res.UserID, res.ResourceType, res.SellPrice,
		res.CostPrice, res.Margin, res.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a resource.
func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
