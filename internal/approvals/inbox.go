package approvals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tracklane/tracklane/internal/authz"
)

// Item is one record awaiting a decision, as shown in the approvals
// inbox.
type Item struct {
	Entity      string    `json:"entity"`
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	SubmittedBy int64     `json:"submitted_by"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ExpenseItem pairs an inbox item with the guard state needed to
// decide whether the current actor may validate it.
type ExpenseItem struct {
	Item
	State authz.ExpenseState
}

// TimesheetItem is the timesheet counterpart of ExpenseItem.
type TimesheetItem struct {
	Item
	State authz.TimesheetState
}

// DeliverableItem is the deliverable counterpart of ExpenseItem.
type DeliverableItem struct {
	Item
	State authz.DeliverableState
}

// ExpenseSource lists submitted expenses for a project.
type ExpenseSource interface {
	PendingExpenses(ctx context.Context, projectID uuid.UUID) ([]ExpenseItem, error)
}

// TimesheetSource lists submitted timesheets for a project.
type TimesheetSource interface {
	PendingTimesheets(ctx context.Context, projectID uuid.UUID) ([]TimesheetItem, error)
}

// DeliverableSource lists deliverables awaiting review for a project.
type DeliverableSource interface {
	PendingDeliverables(ctx context.Context, projectID uuid.UUID) ([]DeliverableItem, error)
}

// Inbox aggregates everything the actor may act on next across the
// approvable entity types. The three sources are queried concurrently;
// the engine's guards then filter the union down to what this actor's
// role and the project's approval authority actually allow.
type Inbox struct {
	Expenses     ExpenseSource
	Timesheets   TimesheetSource
	Deliverables DeliverableSource
}

// View is the aggregated inbox payload.
type View struct {
	Expenses     []Item `json:"expenses"`
	Timesheets   []Item `json:"timesheets"`
	Deliverables []Item `json:"deliverables"`
	Total        int    `json:"total"`
}

// Pending returns the records in the project the actor may approve,
// reject or review right now under the given workflow settings.
func (i Inbox) Pending(ctx context.Context, actor authz.Actor, settings *authz.Settings, projectID uuid.UUID) (View, error) {
	var (
		expenses     []ExpenseItem
		timesheets   []TimesheetItem
		deliverables []DeliverableItem
	)

	g, gctx := errgroup.WithContext(ctx)
	if i.Expenses != nil {
		g.Go(func() error {
			var err error
			expenses, err = i.Expenses.PendingExpenses(gctx, projectID)
			return err
		})
	}
	if i.Timesheets != nil {
		g.Go(func() error {
			var err error
			timesheets, err = i.Timesheets.PendingTimesheets(gctx, projectID)
			return err
		})
	}
	if i.Deliverables != nil {
		g.Go(func() error {
			var err error
			deliverables, err = i.Deliverables.PendingDeliverables(gctx, projectID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return View{}, err
	}

	view := View{
		Expenses:     make([]Item, 0, len(expenses)),
		Timesheets:   make([]Item, 0, len(timesheets)),
		Deliverables: make([]Item, 0, len(deliverables)),
	}
	for _, e := range expenses {
		if authz.CanValidateExpense(actor, settings, e.State) {
			view.Expenses = append(view.Expenses, e.Item)
		}
	}
	for _, ts := range timesheets {
		if authz.CanValidateTimesheet(actor, settings, ts.State) {
			view.Timesheets = append(view.Timesheets, ts.Item)
		}
	}
	for _, d := range deliverables {
		if authz.CanReviewDeliverable(actor, settings, d.State) {
			view.Deliverables = append(view.Deliverables, d.Item)
		}
	}
	view.Total = len(view.Expenses) + len(view.Timesheets) + len(view.Deliverables)
	return view, nil
}
