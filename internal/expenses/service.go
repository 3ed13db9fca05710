package expenses

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/approvals"
	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

// SettingsSource yields the workflow settings for a project. A nil
// return means unconfigured; the engine resolves defaults.
type SettingsSource interface {
	Get(ctx context.Context, projectID uuid.UUID) *authz.Settings
}

// Service wraps expense business rules. Every mutation consults the
// engine's guards against a freshly supplied actor before touching
// storage; the service never caches roles or settings.
type Service struct {
	repo     Repository
	settings SettingsSource
	recorder approvals.Recorder
}

// NewService constructs a Service.
func NewService(repo Repository, settings SettingsSource, recorder approvals.Recorder) *Service {
	return &Service{repo: repo, settings: settings, recorder: recorder}
}

// Get fetches one expense.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.Get(ctx, id)
}

// List returns expense views for a project with per-record allowed
// actions evaluated for the actor.
func (s *Service) List(ctx context.Context, actor authz.Actor, req ListExpensesRequest) ([]ExpenseView, int, error) {
	if !authz.CanViewExpenses(actor.EffectiveRole) {
		return nil, 0, fmt.Errorf("list expenses: %w", shared.ErrForbidden)
	}
	expenses, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	settings := s.settings.Get(ctx, req.ProjectID)
	views := make([]ExpenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, NewExpenseView(actor, settings, e))
	}
	return views, total, nil
}

// Create records a new draft expense owned by the actor.
func (s *Service) Create(ctx context.Context, actor authz.Actor, req CreateExpenseRequest) (*Expense, error) {
	if !authz.CanAddExpense(actor.EffectiveRole) {
		return nil, fmt.Errorf("create expense: %w", shared.ErrForbidden)
	}
	if !authz.IsFeatureEnabled(s.settings.Get(ctx, req.ProjectID), authz.FeatureExpenses) {
		return nil, fmt.Errorf("create expense: feature disabled: %w", shared.ErrForbidden)
	}

	expense := Expense{
		ID:                   uuid.New(),
		ProjectID:            req.ProjectID,
		Description:          req.Description,
		Amount:               req.Amount,
		Currency:             req.Currency,
		ChargeableToCustomer: req.ChargeableToCustomer,
		Status:               authz.ExpenseDraft,
		IncurredOn:           req.IncurredOn,
		CreatedBy:            actor.UserID,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return &expense, nil
}

// Update edits a draft or rejected expense, or corrects a closed one
// when the actor holds an elevated role.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateExpenseRequest) (*Expense, error) {
	expense, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditExpense(actor, expense.GuardState()) {
		return nil, fmt.Errorf("update expense: %w", shared.ErrForbidden)
	}

	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Currency != nil {
		expense.Currency = *req.Currency
	}
	if req.ChargeableToCustomer != nil {
		expense.ChargeableToCustomer = *req.ChargeableToCustomer
	}
	if req.IncurredOn != nil {
		expense.IncurredOn = *req.IncurredOn
	}
	if err := s.repo.Update(ctx, *expense); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return expense, nil
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	expense, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanDeleteExpense(actor, expense.GuardState()) {
		return fmt.Errorf("delete expense: %w", shared.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

// Submit moves a draft or rejected expense into the approval queue.
func (s *Service) Submit(ctx context.Context, actor authz.Actor, id uuid.UUID) (*Expense, error) {
	expense, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanSubmitExpense(actor, expense.GuardState()) {
		return nil, fmt.Errorf("submit expense: %w", shared.ErrForbidden)
	}

	expense.Status = authz.ExpenseSubmitted
	expense.RejectedBy = nil
	expense.RejectedAt = nil
	expense.RejectionReason = nil
	if err := s.repo.Update(ctx, *expense); err != nil {
		return nil, fmt.Errorf("submit expense: %w", err)
	}
	s.record(ctx, actor, expense.ID, approvals.ActionSubmit, "")
	return expense, nil
}

// Approve marks a submitted expense approved under the project's
// approval authority; the chargeable flag routes conditional modes.
func (s *Service) Approve(ctx context.Context, actor authz.Actor, id uuid.UUID, note string) (*Expense, error) {
	expense, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	settings := s.settings.Get(ctx, expense.ProjectID)
	if !authz.CanValidateExpense(actor, settings, expense.GuardState()) {
		return nil, fmt.Errorf("approve expense: %w", shared.ErrForbidden)
	}

	now := time.Now().UTC()
	expense.Status = authz.ExpenseApproved
	expense.ApprovedBy = &actor.UserID
	expense.ApprovedAt = &now
	if err := s.repo.Update(ctx, *expense); err != nil {
		return nil, fmt.Errorf("approve expense: %w", err)
	}
	s.record(ctx, actor, expense.ID, approvals.ActionApprove, note)
	return expense, nil
}

// Reject sends a submitted expense back to its owner with a reason.
func (s *Service) Reject(ctx context.Context, actor authz.Actor, id uuid.UUID, reason string) (*Expense, error) {
	expense, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	settings := s.settings.Get(ctx, expense.ProjectID)
	if !authz.CanValidateExpense(actor, settings, expense.GuardState()) {
		return nil, fmt.Errorf("reject expense: %w", shared.ErrForbidden)
	}

	now := time.Now().UTC()
	expense.Status = authz.ExpenseRejected
	expense.RejectedBy = &actor.UserID
	expense.RejectedAt = &now
	expense.RejectionReason = &reason
	if err := s.repo.Update(ctx, *expense); err != nil {
		return nil, fmt.Errorf("reject expense: %w", err)
	}
	s.record(ctx, actor, expense.ID, approvals.ActionReject, reason)
	return expense, nil
}

// PendingExpenses implements the approvals inbox source.
func (s *Service) PendingExpenses(ctx context.Context, projectID uuid.UUID) ([]approvals.ExpenseItem, error) {
	status := authz.ExpenseSubmitted
	expenses, _, err := s.repo.List(ctx, ListExpensesRequest{ProjectID: projectID, Status: &status, Limit: 200})
	if err != nil {
		return nil, err
	}
	items := make([]approvals.ExpenseItem, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, approvals.ExpenseItem{
			Item: approvals.Item{
				Entity:      string(authz.EntityExpense),
				ID:          e.ID,
				Title:       e.Description,
				SubmittedBy: e.CreatedBy,
				SubmittedAt: e.UpdatedAt,
			},
			State: e.GuardState(),
		})
	}
	return items, nil
}

// record writes approval history; failures are deliberately swallowed
// after the state change has committed, the transition wins.
func (s *Service) record(ctx context.Context, actor authz.Actor, id uuid.UUID, action approvals.Action, note string) {
	if s.recorder == nil {
		return
	}
	_ = s.recorder.Record(ctx, approvals.Entry{
		Entity:  string(authz.EntityExpense),
		RefID:   id,
		ActorID: actor.UserID,
		Action:  action,
		Note:    note,
	})
}
