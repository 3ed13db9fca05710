package timesheets

import (
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

// Timesheet is one week of recorded hours against a project.
type Timesheet struct {
	ID              uuid.UUID             `json:"id" db:"id"`
	ProjectID       uuid.UUID             `json:"project_id" db:"project_id"`
	ResourceID      *uuid.UUID            `json:"resource_id,omitempty" db:"resource_id"`
	WeekStarting    time.Time             `json:"week_starting" db:"week_starting"`
	Hours           float64               `json:"hours" db:"hours"`
	Notes           string                `json:"notes" db:"notes"`
	Status          authz.TimesheetStatus `json:"status" db:"status"`
	CreatedBy       int64                 `json:"created_by" db:"created_by"`
	ApprovedBy      *int64                `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt      *time.Time            `json:"approved_at,omitempty" db:"approved_at"`
	RejectedBy      *int64                `json:"rejected_by,omitempty" db:"rejected_by"`
	RejectedAt      *time.Time            `json:"rejected_at,omitempty" db:"rejected_at"`
	RejectionReason *string               `json:"rejection_reason,omitempty" db:"rejection_reason"`
	CreatedAt       time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at" db:"updated_at"`
}

// GuardState projects the timesheet onto the engine's guard input.
func (t *Timesheet) GuardState() authz.TimesheetState {
	return authz.TimesheetState{
		Status:    t.Status,
		CreatedBy: t.CreatedBy,
	}
}
