package authz

// TimesheetStatus is the timesheet lifecycle state; it mirrors the
// expense lifecycle without the chargeable branch.
type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "DRAFT"
	TimesheetSubmitted TimesheetStatus = "SUBMITTED"
	TimesheetApproved  TimesheetStatus = "APPROVED"
	TimesheetRejected  TimesheetStatus = "REJECTED"
	TimesheetPaid      TimesheetStatus = "PAID"
)

func (s TimesheetStatus) known() bool {
	switch s {
	case TimesheetDraft, TimesheetSubmitted, TimesheetApproved, TimesheetRejected, TimesheetPaid:
		return true
	}
	return false
}

// Locked reports whether the timesheet has passed the point where
// ordinary owners may touch it.
func (s TimesheetStatus) Locked() bool {
	return s == TimesheetApproved || s == TimesheetPaid
}

// TimesheetState is the slice of a timesheet record the guards
// evaluate.
type TimesheetState struct {
	Status    TimesheetStatus
	CreatedBy int64
}

// CanSubmitTimesheet reports whether the actor may submit the
// timesheet for approval.
func CanSubmitTimesheet(actor Actor, t TimesheetState) bool {
	if t.Status != TimesheetDraft && t.Status != TimesheetRejected {
		return false
	}
	if actor.IsElevatedProjectRole() {
		return true
	}
	return actor.Owns(t.CreatedBy) && CanAddTimesheet(actor.EffectiveRole)
}

// CanValidateTimesheet reports whether the actor may approve or reject
// the timesheet. Timesheet authority is role-only; there is no
// conditional branch.
func CanValidateTimesheet(actor Actor, settings *Settings, t TimesheetState) bool {
	if t.Status != TimesheetSubmitted {
		return false
	}
	return CanApprove(settings, EntityTimesheet, actor.EffectiveRole, ApprovalContext{})
}

// CanEditTimesheetRecord reports whether this specific timesheet may
// be edited now.
func CanEditTimesheetRecord(actor Actor, t TimesheetState) bool {
	if !t.Status.known() {
		return false
	}
	if !CanEditTimesheet(actor.EffectiveRole) {
		return false
	}
	if t.Status.Locked() {
		return actor.IsElevatedProjectRole()
	}
	return actor.IsElevatedProjectRole() || actor.Owns(t.CreatedBy)
}

// CanDeleteTimesheetRecord mirrors CanEditTimesheetRecord over the
// delete permission.
func CanDeleteTimesheetRecord(actor Actor, t TimesheetState) bool {
	if !t.Status.known() {
		return false
	}
	if !CanDeleteTimesheet(actor.EffectiveRole) {
		return false
	}
	if t.Status.Locked() {
		return actor.IsElevatedProjectRole()
	}
	return actor.IsElevatedProjectRole() || actor.Owns(t.CreatedBy)
}
