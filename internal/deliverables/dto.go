package deliverables

import (
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

type CreateDeliverableRequest struct {
	ProjectID   uuid.UUID  `json:"project_id" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

type UpdateDeliverableRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

type ReturnDeliverableRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type LinkCriterionRequest struct {
	Kind        CriterionKind `json:"kind" validate:"required,oneof=kpi quality_standard"`
	CriterionID uuid.UUID     `json:"criterion_id" validate:"required"`
}

type AssessCriterionRequest struct {
	CriteriaMet bool   `json:"criteria_met"`
	Notes       string `json:"notes" validate:"max=500"`
}

type ListDeliverablesRequest struct {
	ProjectID uuid.UUID
	Status    *authz.DeliverableStatus
	Limit     int
	Offset    int
}

// DeliverableView is a deliverable plus the actions the current actor
// may take on it.
type DeliverableView struct {
	Deliverable
	CanEdit            bool `json:"can_edit"`
	CanDelete          bool `json:"can_delete"`
	CanSubmitForReview bool `json:"can_submit_for_review"`
	CanReview          bool `json:"can_review"`
	CanMarkDelivered   bool `json:"can_mark_delivered"`
}

// NewDeliverableView evaluates the guards for one deliverable.
func NewDeliverableView(actor authz.Actor, settings *authz.Settings, d Deliverable) DeliverableView {
	state := d.GuardState()
	return DeliverableView{
		Deliverable:        d,
		CanEdit:            authz.CanEditDeliverableRecord(actor, state),
		CanDelete:          authz.CanDeleteDeliverableRecord(actor, state),
		CanSubmitForReview: authz.CanSubmitForReview(actor, state),
		CanReview:          authz.CanReviewDeliverable(actor, settings, state),
		CanMarkDelivered:   authz.CanMarkDelivered(actor, state),
	}
}
