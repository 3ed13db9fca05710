package expenses

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tracklane/tracklane/internal/authz"
)

// ErrNotFound indicates the expense does not exist.
var ErrNotFound = errors.New("expenses: not found")

// Repository defines persistence for the expenses module.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Expense, error)
	List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error)
	Create(ctx context.Context, e Expense) error
	Update(ctx context.Context, e Expense) error
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

const expenseColumns = `id, project_id, description, amount, currency, chargeable_to_customer,
status, incurred_on, created_by, approved_by, approved_at, rejected_by, rejected_at,
rejection_reason, created_at, updated_at`

func scanExpense(row pgx.Row) (*Expense, error) {
	var e Expense
	err := row.Scan(&e.ID, &e.ProjectID, &e.Description, &e.Amount, &e.Currency,
		&e.ChargeableToCustomer, &e.Status, &e.IncurredOn, &e.CreatedBy,
		&e.ApprovedBy, &e.ApprovedAt, &e.RejectedBy, &e.RejectedAt,
		&e.RejectionReason, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Get fetches an expense by id.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id)
	return scanExpense(row)
}

// List returns expenses for a project, optionally filtered by status.
func (r *PGRepository) List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error) {
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
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM expenses WHERE project_id = $1`+filter, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE project_id = $1` + filter +
		fmt.Sprintf(` ORDER BY incurred_on DESC, created_at DESC LIMIT %d OFFSET %d`, limit, req.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// Create inserts a new expense.
func (r *PGRepository) Create(ctx context.Context, e Expense) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO expenses
(id, project_id, description, amount, currency, chargeable_to_customer, status, incurred_on, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		e.ID, e.ProjectID, e.Description, e.Amount, e.Currency,
		e.ChargeableToCustomer, string(e.Status), e.IncurredOn, e.CreatedBy, e.CreatedAt)
	return err
}

// Update writes the mutable columns back.
func (r *PGRepository) Update(ctx context.Context, e Expense) error {
	tag, err := r.pool.Exec(ctx, `UPDATE expenses SET
description=$2, amount=$3, currency=$4, chargeable_to_customer=$5, status=$6,
incurred_on=$7, approved_by=$8, approved_at=$9, rejected_by=$10, rejected_at=$11,
rejection_reason=$12, updated_at=NOW()
WHERE id=$1`,
		e.ID, e.Description, e.Amount, e.Currency, e.ChargeableToCustomer,
		string(e.Status), e.IncurredOn, e.ApprovedBy, e.ApprovedAt,
		e.RejectedBy, e.RejectedAt, e.RejectionReason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an expense.
func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// submittedStatus is reused by the inbox query.
var submittedStatus = authz.ExpenseSubmitted

// PendingForProject lists submitted expenses, oldest first, for the
// approvals inbox.
func (r *PGRepository) PendingForProject(ctx context.Context, projectID uuid.UUID) ([]Expense, error) {
	status := submittedStatus
	expenses, _, err := r.List(ctx, ListExpensesRequest{ProjectID: projectID, Status: &status, Limit: 200})
	return expenses, err
}

var _ Repository = (*PGRepository)(nil)
