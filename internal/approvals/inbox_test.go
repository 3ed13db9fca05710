package approvals

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklane/tracklane/internal/authz"
)

type stubSources struct {
	expenses     []ExpenseItem
	timesheets   []TimesheetItem
	deliverables []DeliverableItem
	err          error
}

func (s stubSources) PendingExpenses(ctx context.Context, projectID uuid.UUID) ([]ExpenseItem, error) {
	return s.expenses, s.err
}

func (s stubSources) PendingTimesheets(ctx context.Context, projectID uuid.UUID) ([]TimesheetItem, error) {
	return s.timesheets, s.err
}

func (s stubSources) PendingDeliverables(ctx context.Context, projectID uuid.UUID) ([]DeliverableItem, error) {
	return s.deliverables, s.err
}

func inboxActor(role authz.Role) authz.Actor {
	return authz.ResolveActor(&authz.Identity{UserID: 1}, nil, &authz.ProjectAssignment{Role: role}, nil)
}

func TestInboxFiltersByGuards(t *testing.T) {
	chargeable := ExpenseItem{
		Item:  Item{Entity: "expense", ID: uuid.New(), Title: "Travel"},
		State: authz.ExpenseState{Status: authz.ExpenseSubmitted, ChargeableToCustomer: true},
	}
	nonChargeable := ExpenseItem{
		Item:  Item{Entity: "expense", ID: uuid.New(), Title: "Tooling"},
		State: authz.ExpenseState{Status: authz.ExpenseSubmitted, ChargeableToCustomer: false},
	}
	timesheet := TimesheetItem{
		Item:  Item{Entity: "timesheet", ID: uuid.New(), Title: "Week 34"},
		State: authz.TimesheetState{Status: authz.TimesheetSubmitted},
	}
	deliverable := DeliverableItem{
		Item:  Item{Entity: "deliverable", ID: uuid.New(), Title: "Design pack"},
		State: authz.DeliverableState{Status: authz.DeliverableSubmittedForReview},
	}

	sources := stubSources{
		expenses:     []ExpenseItem{chargeable, nonChargeable},
		timesheets:   []TimesheetItem{timesheet},
		deliverables: []DeliverableItem{deliverable},
	}
	inbox := Inbox{Expenses: sources, Timesheets: sources, Deliverables: sources}

	settings := &authz.Settings{Approvals: map[authz.Entity]authz.AuthorityMode{
		authz.EntityExpense: authz.AuthorityConditional,
	}}

	// A customer PM sees only the chargeable expense, plus the
	// timesheet and deliverable under the default both mode.
	view, err := inbox.Pending(context.Background(), inboxActor(authz.RoleCustomerPM), settings, uuid.New())
	require.NoError(t, err)
	require.Len(t, view.Expenses, 1)
	assert.Equal(t, chargeable.ID, view.Expenses[0].ID)
	assert.Len(t, view.Timesheets, 1)
	assert.Len(t, view.Deliverables, 1)
	assert.Equal(t, 3, view.Total)

	// A supplier PM sees the non-chargeable expense instead.
	view, err = inbox.Pending(context.Background(), inboxActor(authz.RoleSupplierPM), settings, uuid.New())
	require.NoError(t, err)
	require.Len(t, view.Expenses, 1)
	assert.Equal(t, nonChargeable.ID, view.Expenses[0].ID)

	// A contributor sees nothing.
	view, err = inbox.Pending(context.Background(), inboxActor(authz.RoleContributor), settings, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, view.Total)
}

func TestInboxPropagatesSourceError(t *testing.T) {
	sources := stubSources{err: errors.New("query failed")}
	inbox := Inbox{Expenses: sources}
	_, err := inbox.Pending(context.Background(), inboxActor(authz.RoleAdmin), nil, uuid.New())
	assert.Error(t, err)
}
