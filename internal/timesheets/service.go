package timesheets

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/approvals"
	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

// SettingsSource yields the workflow settings for a project.
type SettingsSource interface {
	Get(ctx context.Context, projectID uuid.UUID) *authz.Settings
}

// Service wraps timesheet business rules. Guards are evaluated against
// the supplied actor on every call.
type Service struct {
	repo     Repository
	settings SettingsSource
	recorder approvals.Recorder
}

// NewService constructs a Service.
func NewService(repo Repository, settings SettingsSource, recorder approvals.Recorder) *Service {
	return &Service{repo: repo, settings: settings, recorder: recorder}
}

// Get fetches one timesheet.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Timesheet, error) {
	return s.repo.Get(ctx, id)
}

// List returns timesheet views for a project with per-record allowed
// actions evaluated for the actor.
func (s *Service) List(ctx context.Context, actor authz.Actor, req ListTimesheetsRequest) ([]TimesheetView, int, error) {
	if !authz.CanViewTimesheets(actor.EffectiveRole) {
		return nil, 0, fmt.Errorf("list timesheets: %w", shared.ErrForbidden)
	}
	timesheets, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	settings := s.settings.Get(ctx, req.ProjectID)
	views := make([]TimesheetView, 0, len(timesheets))
	for _, t := range timesheets {
		views = append(views, NewTimesheetView(actor, settings, t))
	}
	return views, total, nil
}

// Create records a new draft timesheet owned by the actor.
func (s *Service) Create(ctx context.Context, actor authz.Actor, req CreateTimesheetRequest) (*Timesheet, error) {
	if !authz.CanAddTimesheet(actor.EffectiveRole) {
		return nil, fmt.Errorf("create timesheet: %w", shared.ErrForbidden)
	}
	if !authz.IsFeatureEnabled(s.settings.Get(ctx, req.ProjectID), authz.FeatureTimesheets) {
		return nil, fmt.Errorf("create timesheet: feature disabled: %w", shared.ErrForbidden)
	}

	timesheet := Timesheet{
		ID:           uuid.New(),
		ProjectID:    req.ProjectID,
		ResourceID:   req.ResourceID,
		WeekStarting: req.WeekStarting,
		Hours:        req.Hours,
		Notes:        req.Notes,
		Status:       authz.TimesheetDraft,
		CreatedBy:    actor.UserID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, timesheet); err != nil {
		return nil, fmt.Errorf("create timesheet: %w", err)
	}
	return &timesheet, nil
}

// Update edits a draft or rejected timesheet, or corrects a closed one
// when the actor holds an elevated role.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateTimesheetRequest) (*Timesheet, error) {
	timesheet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditTimesheetRecord(actor, timesheet.GuardState()) {
		return nil, fmt.Errorf("update timesheet: %w", shared.ErrForbidden)
	}

	if req.WeekStarting != nil {
		timesheet.WeekStarting = *req.WeekStarting
	}
	if req.Hours != nil {
		timesheet.Hours = *req.Hours
	}
	if req.Notes != nil {
		timesheet.Notes = *req.Notes
	}
	if err := s.repo.Update(ctx, *timesheet); err != nil {
		return nil, fmt.Errorf("update timesheet: %w", err)
	}
	return timesheet, nil
}

// Delete removes a timesheet.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	timesheet, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanDeleteTimesheetRecord(actor, timesheet.GuardState()) {
		return fmt.Errorf("delete timesheet: %w", shared.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

// Submit moves a draft or rejected timesheet into the approval queue.
func (s *Service) Submit(ctx context.Context, actor authz.Actor, id uuid.UUID) (*Timesheet, error) {
	timesheet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanSubmitTimesheet(actor, timesheet.GuardState()) {
		return nil, fmt.Errorf("submit timesheet: %w", shared.ErrForbidden)
	}

	timesheet.Status = authz.TimesheetSubmitted
	timesheet.RejectedBy = nil
	timesheet.RejectedAt = nil
	timesheet.RejectionReason = nil
	if err := s.repo.Update(ctx, *timesheet); err != nil {
		return nil, fmt.Errorf("submit timesheet: %w", err)
	}
	s.record(ctx, actor, timesheet.ID, approvals.ActionSubmit, "")
	return timesheet, nil
}

// Approve marks a submitted timesheet approved under the project's
// approval authority.
func (s *Service) Approve(ctx context.Context, actor authz.Actor, id uuid.UUID, note string) (*Timesheet, error) {
	timesheet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	settings := s.settings.Get(ctx, timesheet.ProjectID)
	if !authz.CanValidateTimesheet(actor, settings, timesheet.GuardState()) {
		return nil, fmt.Errorf("approve timesheet: %w", shared.ErrForbidden)
	}

	now := time.Now().UTC()
	timesheet.Status = authz.TimesheetApproved
	timesheet.ApprovedBy = &actor.UserID
	timesheet.ApprovedAt = &now
	if err := s.repo.Update(ctx, *timesheet); err != nil {
		return nil, fmt.Errorf("approve timesheet: %w", err)
	}
	s.record(ctx, actor, timesheet.ID, approvals.ActionApprove, note)
	return timesheet, nil
}

// Reject sends a submitted timesheet back to its owner with a reason.
func (s *Service) Reject(ctx context.Context, actor authz.Actor, id uuid.UUID, reason string) (*Timesheet, error) {
	timesheet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	settings := s.settings.Get(ctx, timesheet.ProjectID)
	if !authz.CanValidateTimesheet(actor, settings, timesheet.GuardState()) {
		return nil, fmt.Errorf("reject timesheet: %w", shared.ErrForbidden)
	}

	now := time.Now().UTC()
	timesheet.Status = authz.TimesheetRejected
	timesheet.RejectedBy = &actor.UserID
	timesheet.RejectedAt = &now
	timesheet.RejectionReason = &reason
	if err := s.repo.Update(ctx, *timesheet); err != nil {
		return nil, fmt.Errorf("reject timesheet: %w", err)
	}
	s.record(ctx, actor, timesheet.ID, approvals.ActionReject, reason)
	return timesheet, nil
}

// PendingTimesheets implements the approvals inbox source.
func (s *Service) PendingTimesheets(ctx context.Context, projectID uuid.UUID) ([]approvals.TimesheetItem, error) {
	status := authz.TimesheetSubmitted
	timesheets, _, err := s.repo.List(ctx, ListTimesheetsRequest{ProjectID: projectID, Status: &status, Limit: 200})
	if err != nil {
		return nil, err
	}
	items := make([]approvals.TimesheetItem, 0, len(timesheets))
	for _, t := range timesheets {
		items = append(items, approvals.TimesheetItem{
			Item: approvals.Item{
				Entity:      string(authz.EntityTimesheet),
				ID:          t.ID,
				Title:       fmt.Sprintf("Week of %s", t.WeekStarting.Format("2006-01-02")),
				SubmittedBy: t.CreatedBy,
				SubmittedAt: t.UpdatedAt,
			},
			State: t.GuardState(),
		})
	}
	return items, nil
}

func (s *Service) record(ctx context.Context, actor authz.Actor, id uuid.UUID, action approvals.Action, note string) {
	if s.recorder == nil {
		return
	}
	_ = s.recorder.Record(ctx, approvals.Entry{
		Entity:  string(authz.EntityTimesheet),
		RefID:   id,
		ActorID: actor.UserID,
		Action:  action,
		Note:    note,
	})
}
