package expenses

import (
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

type CreateExpenseRequest struct {
	ProjectID            uuid.UUID `json:"project_id" validate:"required"`
	Description          string    `json:"description" validate:"required,max=500"`
	Amount               float64   `json:"amount" validate:"required,gt=0"`
	Currency             string    `json:"currency" validate:"required,len=3"`
	ChargeableToCustomer bool      `json:"chargeable_to_customer"`
	IncurredOn           time.Time `json:"incurred_on" validate:"required"`
}

type UpdateExpenseRequest struct {
	Description          *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	Amount               *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Currency             *string    `json:"currency,omitempty" validate:"omitempty,len=3"`
	ChargeableToCustomer *bool      `json:"chargeable_to_customer,omitempty"`
	IncurredOn           *time.Time `json:"incurred_on,omitempty"`
}

type RejectExpenseRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type ListExpensesRequest struct {
	ProjectID uuid.UUID
	Status    *authz.ExpenseStatus
	Limit     int
	Offset    int
}

// ExpenseView is an expense plus the actions the current actor may
// take on it, evaluated once per render from the effective role so the
// UI never re-implements guard logic.
type ExpenseView struct {
	Expense
	CanEdit     bool `json:"can_edit"`
	CanDelete   bool `json:"can_delete"`
	CanSubmit   bool `json:"can_submit"`
	CanValidate bool `json:"can_validate"`
}

// NewExpenseView evaluates the guards for one expense.
func NewExpenseView(actor authz.Actor, settings *authz.Settings, e Expense) ExpenseView {
	state := e.GuardState()
	return ExpenseView{
		Expense:     e,
		CanEdit:     authz.CanEditExpense(actor, state),
		CanDelete:   authz.CanDeleteExpense(actor, state),
		CanSubmit:   authz.CanSubmitExpense(actor, state),
		CanValidate: authz.CanValidateExpense(actor, settings, state),
	}
}
