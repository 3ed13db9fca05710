package deliverables

import (
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

// CriterionKind distinguishes the two assessable criteria a
// deliverable can be linked to.
type CriterionKind string

const (
	CriterionKPI             CriterionKind = "kpi"
	CriterionQualityStandard CriterionKind = "quality_standard"
)

// Deliverable is a unit of project output moving through review
// towards delivery.
type Deliverable struct {
	ID           uuid.UUID               `json:"id" db:"id"`
	ProjectID    uuid.UUID               `json:"project_id" db:"project_id"`
	Title        string                  `json:"title" db:"title"`
	Description  string                  `json:"description" db:"description"`
	DueOn        *time.Time              `json:"due_on,omitempty" db:"due_on"`
	Status       authz.DeliverableStatus `json:"status" db:"status"`
	CreatedBy    int64                   `json:"created_by" db:"created_by"`
	ReviewedBy   *int64                  `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt   *time.Time              `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReturnReason *string                 `json:"return_reason,omitempty" db:"return_reason"`
	DeliveredBy  *int64                  `json:"delivered_by,omitempty" db:"delivered_by"`
	DeliveredAt  *time.Time              `json:"delivered_at,omitempty" db:"delivered_at"`
	CreatedAt    time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at" db:"updated_at"`

	Assessments []Assessment `json:"assessments,omitempty" db:"-"`
}

// Assessment links a deliverable to one KPI or quality standard and
// carries the recorded verdict, if any. CriteriaMet stays nil until
// someone assesses the criterion; delivery waits on that, not on the
// verdict.
type Assessment struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	DeliverableID uuid.UUID     `json:"deliverable_id" db:"deliverable_id"`
	Kind          CriterionKind `json:"kind" db:"kind"`
	CriterionID   uuid.UUID     `json:"criterion_id" db:"criterion_id"`
	CriteriaMet   *bool         `json:"criteria_met,omitempty" db:"criteria_met"`
	Notes         string        `json:"notes" db:"notes"`
	AssessedBy    *int64        `json:"assessed_by,omitempty" db:"assessed_by"`
	AssessedAt    *time.Time    `json:"assessed_at,omitempty" db:"assessed_at"`
}

// GuardState projects the deliverable and its assessments onto the
// engine's guard input.
func (d *Deliverable) GuardState() authz.DeliverableState {
	assessments := make([]authz.AssessmentState, 0, len(d.Assessments))
	for _, a := range d.Assessments {
		assessments = append(assessments, authz.AssessmentState{CriteriaMet: a.CriteriaMet})
	}
	return authz.DeliverableState{
		Status:      d.Status,
		CreatedBy:   d.CreatedBy,
		Assessments: assessments,
	}
}
