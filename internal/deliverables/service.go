package deliverables

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

// Service wraps deliverable business rules. The review cycle and the
// delivery gate both run through the engine's guards with the full
// assessment state loaded.
type Service struct {
	repo     Repository
	settings SettingsSource
	recorder approvals.Recorder
}

// NewService constructs a Service.
func NewService(repo Repository, settings SettingsSource, recorder approvals.Recorder) *Service {
	return &Service{repo: repo, settings: settings, recorder: recorder}
}

// Get fetches one deliverable with its assessments.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Deliverable, error) {
	return s.repo.Get(ctx, id)
}

// List returns deliverable views for a project with per-record allowed
// actions evaluated for the actor.
func (s *Service) List(ctx context.Context, actor authz.Actor, req ListDeliverablesRequest) ([]DeliverableView, int, error) {
	if !authz.CanViewDeliverables(actor.EffectiveRole) {
		return nil, 0, fmt.Errorf("list deliverables: %w", shared.ErrForbidden)
	}
	deliverables, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	settings := s.settings.Get(ctx, req.ProjectID)
	views := make([]DeliverableView, 0, len(deliverables))
	for _, d := range deliverables {
		views = append(views, NewDeliverableView(actor, settings, d))
	}
	return views, total, nil
}

// Create records a new deliverable owned by the actor.
func (s *Service) Create(ctx context.Context, actor authz.Actor, req CreateDeliverableRequest) (*Deliverable, error) {
	if !authz.CanAddDeliverable(actor.EffectiveRole) {
		return nil, fmt.Errorf("create deliverable: %w", shared.ErrForbidden)
	}
	if !authz.IsFeatureEnabled(s.settings.Get(ctx, req.ProjectID), authz.FeatureDeliverables) {
		return nil, fmt.Errorf("create deliverable: feature disabled: %w", shared.ErrForbidden)
	}

	deliverable := Deliverable{
		ID:          uuid.New(),
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		DueOn:       req.DueOn,
		Status:      authz.DeliverableNotStarted,
		CreatedBy:   actor.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, deliverable); err != nil {
		return nil, fmt.Errorf("create deliverable: %w", err)
	}
	return &deliverable, nil
}

// Update edits a deliverable record.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateDeliverableRequest) (*Deliverable, error) {
	deliverable, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditDeliverableRecord(actor, deliverable.GuardState()) {
		return nil, fmt.Errorf("update deliverable: %w", shared.ErrForbidden)
	}

	if req.Title != nil {
		deliverable.Title = *req.Title
	}
	if req.Description != nil {
		deliverable.Description = *req.Description
	}
	if req.DueOn != nil {
		deliverable.DueOn = req.DueOn
	}
	if err := s.repo.Update(ctx, *deliverable); err != nil {
		return nil, fmt.Errorf("update deliverable: %w", err)
	}
	return deliverable, nil
}

// Delete removes a deliverable.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	deliverable, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanDeleteDeliverableRecord(actor, deliverable.GuardState()) {
		return fmt.Errorf("delete deliverable: %w", shared.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

// Start moves a not-started deliverable into progress. Any actor who
// may edit the record may start it.
func (s *Service) Start(ctx context.Context, actor authz.Actor, id uuid.UUID) (*Deliverable, error) {
	deliverable, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if deliverable.Status != authz.DeliverableNotStarted {
		return nil, fmt.Errorf("start deliverable: %w", shared.ErrForbidden)
	}
	if !authz.CanEditDeliverableRecord(actor, deliverable.GuardState()) {
		return nil, fmt.Errorf("start deliverable: %w", shared.ErrForbidden)
	}

	deliverable.Status = authz.DeliverableInProgress
	if err := s.repo.Update(ctx, *deliverable); err != nil {
		return nil, fmt.Errorf("start deliverable: %w", err)
	}
	return deliverable, nil
}

// SubmitForReview moves in-progress or returned work into review.
func (s *Service) SubmitForReview(ctx context.Context, actor authz.Actor, id uuid.UUID) (*Deliverable, error) {
	deliverable, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanSubmitForReview(actor, deliverable.GuardState()) {
		return nil, fmt.Errorf("submit deliverable: %w", shared.ErrForbidden)
	}

	deliverable.Status = authz.DeliverableSubmittedForReview
	deliverable.ReturnReason = nil
	if err := s.repo.Update(ctx, *deliverable); err != nil {
		return nil, fmt.Errorf("submit deliverable: %w", err)
	}
	s.record(ctx, actor, deliverable.ID, approvals.ActionSubmit, "")
	return deliverable, nil
}

// CompleteReview accepts the deliverable's review under the project's
// approval authority.
func (s *Service) CompleteReview(ctx context.Context, actor authz.Actor, id uuid.UUID, note string) (*Deliverable, error) {
	deliverable, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	settings := s.settings.Get(ctx, deliverable.ProjectID)
	if !authz.CanReviewDeliverable(actor, settings, deliverable.GuardState()) {
		return nil, fmt.Errorf("review deliverable: %w", shared.ErrForbidden)
	}

	now := time.Now().UTC()
	deliverable.Status = authz.DeliverableReviewComplete
	deliverable.ReviewedBy = &actor.UserID
	deliverable.ReviewedAt = &now
	if err := s.repo.Update(ctx, *deliverable); err != nil {
		return nil, fmt.Errorf("review deliverable: %w", err)
	}
	s.record(ctx, actor, deliverable.ID, approvals.ActionApprove, note)
	return deliverable, nil
}

// Return sends the deliverable back for more work with a reason.
func (s *Service) Return(ctx context.Context, actor authz.Actor, id uuid.UUID, reason string) (*Deliverable, error) {
	deliverable, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	settings := s.settings.Get(ctx, deliverable.ProjectID)
	if !authz.CanReviewDeliverable(actor, settings, deliverable.GuardState()) {
		return nil, fmt.Errorf("return deliverable: %w", shared.ErrForbidden)
	}

	now := time.Now().UTC()
	deliverable.Status = authz.DeliverableReturned
	deliverable.ReviewedBy = &actor.UserID
	deliverable.ReviewedAt = &now
	deliverable.ReturnReason = &reason
	if err := s.repo.Update(ctx, *deliverable); err != nil {
		return nil, fmt.Errorf("return deliverable: %w", err)
	}
	s.record(ctx, actor, deliverable.ID, approvals.ActionReturn, reason)
	return deliverable, nil
}

// MarkDelivered closes out a review-complete deliverable. Delivery is
// refused while any linked KPI or quality standard has no recorded
// assessment.
func (s *Service) MarkDelivered(ctx context.Context, actor authz.Actor, id uuid.UUID) (*Deliverable, error) {
	deliverable, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanMarkDelivered(actor, deliverable.GuardState()) {
		return nil, fmt.Errorf("deliver deliverable: %w", shared.ErrForbidden)
	}

	now := time.Now().UTC()
	deliverable.Status = authz.DeliverableDelivered
	deliverable.DeliveredBy = &actor.UserID
	deliverable.DeliveredAt = &now
	if err := s.repo.Update(ctx, *deliverable); err != nil {
		return nil, fmt.Errorf("deliver deliverable: %w", err)
	}
	s.record(ctx, actor, deliverable.ID, approvals.ActionDeliver, "")
	return deliverable, nil
}

// LinkCriterion attaches a KPI or quality standard to a deliverable.
func (s *Service) LinkCriterion(ctx context.Context, actor authz.Actor, deliverableID uuid.UUID, req LinkCriterionRequest) (*Assessment, error) {
	deliverable, err := s.repo.Get(ctx, deliverableID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditDeliverableRecord(actor, deliverable.GuardState()) {
		return nil, fmt.Errorf("link criterion: %w", shared.ErrForbidden)
	}

	assessment := Assessment{
		ID:            uuid.New(),
		DeliverableID: deliverableID,
		Kind:          req.Kind,
		CriterionID:   req.CriterionID,
	}
	if err := s.repo.LinkCriterion(ctx, assessment); err != nil {
		return nil, fmt.Errorf("link criterion: %w", err)
	}
	return &assessment, nil
}

// Assess records the verdict for one linked criterion. The assess
// permission is per criterion kind.
func (s *Service) Assess(ctx context.Context, actor authz.Actor, assessmentID uuid.UUID, req AssessCriterionRequest) (*Assessment, error) {
	assessment, err := s.repo.GetAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	allowed := false
	switch assessment.Kind {
	case CriterionKPI:
		allowed = authz.CanAssessKPI(actor.EffectiveRole)
	case CriterionQualityStandard:
		allowed = authz.CanAssessQualityStandard(actor.EffectiveRole)
	}
	if !allowed {
		return nil, fmt.Errorf("assess criterion: %w", shared.ErrForbidden)
	}

	now := time.Now().UTC()
	assessment.CriteriaMet = &req.CriteriaMet
	assessment.Notes = req.Notes
	assessment.AssessedBy = &actor.UserID
	assessment.AssessedAt = &now
	if err := s.repo.RecordAssessment(ctx, *assessment); err != nil {
		return nil, fmt.Errorf("assess criterion: %w", err)
	}
	return assessment, nil
}

// PendingDeliverables implements the approvals inbox source.
func (s *Service) PendingDeliverables(ctx context.Context, projectID uuid.UUID) ([]approvals.DeliverableItem, error) {
	status := authz.DeliverableSubmittedForReview
	deliverables, _, err := s.repo.List(ctx, ListDeliverablesRequest{ProjectID: projectID, Status: &status, Limit: 200})
	if err != nil {
		return nil, err
	}
	items := make([]approvals.DeliverableItem, 0, len(deliverables))
	for _, d := range deliverables {
		items = append(items, approvals.DeliverableItem{
			Item: approvals.Item{
				Entity:      string(authz.EntityDeliverable),
				ID:          d.ID,
				Title:       d.Title,
				SubmittedBy: d.CreatedBy,
				SubmittedAt: d.UpdatedAt,
			},
			State: d.GuardState(),
		})
	}
	return items, nil
}

func (s *Service) record(ctx context.Context, actor authz.Actor, id uuid.UUID, action approvals.Action, note string) {
	if s.recorder == nil {
		return
	}
	_ = s.recorder.Record(ctx, approvals.Entry{
		Entity:  string(authz.EntityDeliverable),
		RefID:   id,
		ActorID: actor.UserID,
		Action:  action,
		Note:    note,
	})
}
