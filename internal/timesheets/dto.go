package timesheets

import (
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

type CreateTimesheetRequest struct {
	ProjectID    uuid.UUID  `json:"project_id" validate:"required"`
	ResourceID   *uuid.UUID `json:"resource_id,omitempty"`
	WeekStarting time.Time  `json:"week_starting" validate:"required"`
	Hours        float64    `json:"hours" validate:"required,gt=0,lte=168"`
	Notes        string     `json:"notes" validate:"max=500"`
}

type UpdateTimesheetRequest struct {
	WeekStarting *time.Time `json:"week_starting,omitempty"`
	Hours        *float64   `json:"hours,omitempty" validate:"omitempty,gt=0,lte=168"`
	Notes        *string    `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type RejectTimesheetRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type ListTimesheetsRequest struct {
	ProjectID uuid.UUID
	Status    *authz.TimesheetStatus
	CreatedBy *int64
	Limit     int
	Offset    int
}

// TimesheetView is a timesheet plus the actions the current actor may
// take on it.
type TimesheetView struct {
	Timesheet
	CanEdit     bool `json:"can_edit"`
	CanDelete   bool `json:"can_delete"`
	CanSubmit   bool `json:"can_submit"`
	CanValidate bool `json:"can_validate"`
}

// NewTimesheetView evaluates the guards for one timesheet.
func NewTimesheetView(actor authz.Actor, settings *authz.Settings, t Timesheet) TimesheetView {
	state := t.GuardState()
	return TimesheetView{
		Timesheet:   t,
		CanEdit:     authz.CanEditTimesheetRecord(actor, state),
		CanDelete:   authz.CanDeleteTimesheetRecord(actor, state),
		CanSubmit:   authz.CanSubmitTimesheet(actor, state),
		CanValidate: authz.CanValidateTimesheet(actor, settings, state),
	}
}
