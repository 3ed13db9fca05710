package expenses

import (
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

// Expense is a project expense claim.
type Expense struct {
	ID                   uuid.UUID           `json:"id" db:"id"`
	ProjectID            uuid.UUID           `json:"project_id" db:"project_id"`
	Description          string              `json:"description" db:"description"`
	Amount               float64             `json:"amount" db:"amount"`
	Currency             string              `json:"currency" db:"currency"`
	ChargeableToCustomer bool                `json:"chargeable_to_customer" db:"chargeable_to_customer"`
	Status               authz.ExpenseStatus `json:"status" db:"status"`
	IncurredOn           time.Time           `json:"incurred_on" db:"incurred_on"`
	CreatedBy            int64               `json:"created_by" db:"created_by"`
	ApprovedBy           *int64              `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt           *time.Time          `json:"approved_at,omitempty" db:"approved_at"`
	RejectedBy           *int64              `json:"rejected_by,omitempty" db:"rejected_by"`
	RejectedAt           *time.Time          `json:"rejected_at,omitempty" db:"rejected_at"`
	RejectionReason      *string             `json:"rejection_reason,omitempty" db:"rejection_reason"`
	CreatedAt            time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at" db:"updated_at"`
}

// GuardState projects the expense onto the engine's guard input.
func (e *Expense) GuardState() authz.ExpenseState {
	return authz.ExpenseState{
		Status:               e.Status,
		CreatedBy:            e.CreatedBy,
		ChargeableToCustomer: e.ChargeableToCustomer,
	}
}
