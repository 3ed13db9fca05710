package orgs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tracklane/tracklane/internal/shared"
)

// Repository defines persistence for organisations and memberships.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Org, error)
	ListForUser(ctx context.Context, userID int64) ([]Org, error)
	GetMember(ctx context.Context, orgID uuid.UUID, userID int64) (*Member, error)
	UpsertMember(ctx context.Context, m Member) error
	RemoveMember(ctx context.Context, orgID uuid.UUID, userID int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Get fetches one organisation.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Org, error) {
	var o Org
	err := r.pool.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM orgs WHERE id = $1`, id).
		Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// ListForUser returns the organisations the user belongs to.
func (r *PGRepository) ListForUser(ctx context.Context, userID int64) ([]Org, error) {
	rows, err := r.pool.Query(ctx, `SELECT o.id, o.name, o.created_at, o.updated_at
FROM orgs o JOIN org_members m ON m.org_id = o.id
WHERE m.user_id = $1 ORDER BY o.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Org
	for rows.Next() {
		var o Org
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetMember fetches one membership row.
func (r *PGRepository) GetMember(ctx context.Context, orgID uuid.UUID, userID int64) (*Member, error) {
	var m Member
	err := r.pool.QueryRow(ctx, `SELECT org_id, user_id, is_org_admin, created_at
FROM org_members WHERE org_id = $1 AND user_id = $2`, orgID, userID).
		Scan(&m.OrgID, &m.UserID, &m.IsOrgAdmin, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// UpsertMember inserts or updates a membership.
func (r *PGRepository) UpsertMember(ctx context.Context, m Member) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO org_members (org_id, user_id, is_org_admin, created_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (org_id, user_id) DO UPDATE SET is_org_admin = EXCLUDED.is_org_admin`,
		m.OrgID, m.UserID, m.IsOrgAdmin)
	return err
}

// RemoveMember deletes a membership.
func (r *PGRepository) RemoveMember(ctx context.Context, orgID uuid.UUID, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM org_members WHERE org_id = $1 AND user_id = $2`, orgID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
