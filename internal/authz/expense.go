package authz

// ExpenseStatus is the expense lifecycle state. PAID is terminal and
// set by the billing process, never by this package's callers.
type ExpenseStatus string

const (
	ExpenseDraft     ExpenseStatus = "DRAFT"
	ExpenseSubmitted ExpenseStatus = "SUBMITTED"
	ExpenseApproved  ExpenseStatus = "APPROVED"
	ExpenseRejected  ExpenseStatus = "REJECTED"
	ExpensePaid      ExpenseStatus = "PAID"
)

func (s ExpenseStatus) known() bool {
	switch s {
	case ExpenseDraft, ExpenseSubmitted, ExpenseApproved, ExpenseRejected, ExpensePaid:
		return true
	}
	return false
}

// Locked reports whether the expense has passed the point where
// ordinary owners may touch it.
func (s ExpenseStatus) Locked() bool {
	return s == ExpenseApproved || s == ExpensePaid
}

// ExpenseState is the slice of an expense record the guards evaluate.
type ExpenseState struct {
	Status               ExpenseStatus
	CreatedBy            int64
	ChargeableToCustomer bool
}

// CanSubmitExpense reports whether the actor may submit the expense
// for approval. Only draft and rejected expenses are submittable;
// elevated roles may submit on behalf of others, everyone else only
// their own.
func CanSubmitExpense(actor Actor, e ExpenseState) bool {
	if e.Status != ExpenseDraft && e.Status != ExpenseRejected {
		return false
	}
	if actor.IsElevatedProjectRole() {
		return true
	}
	return actor.Owns(e.CreatedBy) && CanAddExpense(actor.EffectiveRole)
}

// CanValidateExpense reports whether the actor may approve or reject
// the expense under the project's approval authority. The chargeable
// flag feeds the conditional authority mode.
func CanValidateExpense(actor Actor, settings *Settings, e ExpenseState) bool {
	if e.Status != ExpenseSubmitted {
		return false
	}
	return CanApprove(settings, EntityExpense, actor.EffectiveRole, ApprovalContext{
		Chargeable: e.ChargeableToCustomer,
	})
}

// CanEditExpense reports whether this specific expense may be edited
// now. Approved and paid expenses are closed records; only elevated
// roles may correct them.
func CanEditExpense(actor Actor, e ExpenseState) bool {
	if !e.Status.known() {
		return false
	}
	if !CanEditExpenses(actor.EffectiveRole) {
		return false
	}
	if e.Status.Locked() {
		return actor.IsElevatedProjectRole()
	}
	return actor.IsElevatedProjectRole() || actor.Owns(e.CreatedBy)
}

// CanDeleteExpense mirrors CanEditExpense over the delete permission.
func CanDeleteExpense(actor Actor, e ExpenseState) bool {
	if !e.Status.known() {
		return false
	}
	if !CanDeleteExpenses(actor.EffectiveRole) {
		return false
	}
	if e.Status.Locked() {
		return actor.IsElevatedProjectRole()
	}
	return actor.IsElevatedProjectRole() || actor.Owns(e.CreatedBy)
}
