package projects

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

// Repository defines persistence for projects and assignments.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Project, error)
	ListForUser(ctx context.Context, orgID uuid.UUID, userID int64) ([]Project, error)
	Create(ctx context.Context, p Project) error
	Update(ctx context.Context, p Project) error
	GetAssignment(ctx context.Context, projectID uuid.UUID, userID int64) (*Assignment, error)
	ListAssignments(ctx context.Context, projectID uuid.UUID) ([]Assignment, error)
	UpsertAssignment(ctx context.Context, a Assignment) error
	RemoveAssignment(ctx context.Context, projectID uuid.UUID, userID int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const projectColumns = `id, org_id, name, code, active, created_by, created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.OrgID, &p.Name, &p.Code, &p.Active, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Get fetches one project.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

// ListForUser returns the projects in the org the user is assigned to.
func (r *PGRepository) ListForUser(ctx context.Context, orgID uuid.UUID, userID int64) ([]Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT p.id, p.org_id, p.name, p.code, p.active, p.created_by, p.created_at, p.updated_at
FROM projects p JOIN project_assignments a ON a.project_id = p.id
WHERE p.org_id = $1 AND a.user_id = $2 ORDER BY p.name`, orgID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Create inserts a new project. The project code is unique per org;
// duplicates surface as ErrConflict.
func (r *PGRepository) Create(ctx context.Context, p Project) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO projects (id, org_id, name, code, active, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		p.ID, p.OrgID, p.Name, p.Code, p.Active, p.CreatedBy, p.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.ErrConflict
	}
	return err
}

// Update writes the mutable columns back.
func (r *PGRepository) Update(ctx context.Context, p Project) error {
	tag, err := r.pool.Exec(ctx, `UPDATE projects SET name=$2, code=$3, active=$4, updated_at=NOW() WHERE id=$1`,
		p.ID, p.Name, p.Code, p.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GetAssignment fetches the user's role assignment on a project.
func (r *PGRepository) GetAssignment(ctx context.Context, projectID uuid.UUID, userID int64) (*Assignment, error) {
	var a Assignment
	var role string
	err := r.pool.QueryRow(ctx, `SELECT project_id, user_id, role, created_at
FROM project_assignments WHERE project_id = $1 AND user_id = $2`, projectID, userID).
		Scan(&a.ProjectID, &a.UserID, &role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	a.Role, _ = authz.ParseRole(role)
	return &a, nil
}

// ListAssignments returns every assignment on a project.
func (r *PGRepository) ListAssignments(ctx context.Context, projectID uuid.UUID) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx, `SELECT project_id, user_id, role, created_at
FROM project_assignments WHERE project_id = $1 ORDER BY user_id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		var role string
		if err := rows.Scan(&a.ProjectID, &a.UserID, &role, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Role, _ = authz.ParseRole(role)
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpsertAssignment inserts or replaces the user's role on a project.
func (r *PGRepository) UpsertAssignment(ctx context.Context, a Assignment) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO project_assignments (project_id, user_id, role, created_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role`,
		a.ProjectID, a.UserID, string(a.Role))
	return err
}

// RemoveAssignment deletes the user's assignment.
func (r *PGRepository) RemoveAssignment(ctx context.Context, projectID uuid.UUID, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM project_assignments WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
