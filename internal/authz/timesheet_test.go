package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanSubmitTimesheet(t *testing.T) {
	owner := actorWithRole(10, RoleContributor)
	pm := actorWithRole(20, RoleSupplierPM)

	assert.True(t, CanSubmitTimesheet(owner, TimesheetState{Status: TimesheetDraft, CreatedBy: 10}))
	assert.True(t, CanSubmitTimesheet(owner, TimesheetState{Status: TimesheetRejected, CreatedBy: 10}))
	assert.False(t, CanSubmitTimesheet(owner, TimesheetState{Status: TimesheetDraft, CreatedBy: 99}))
	assert.True(t, CanSubmitTimesheet(pm, TimesheetState{Status: TimesheetDraft, CreatedBy: 99}))
	assert.False(t, CanSubmitTimesheet(pm, TimesheetState{Status: TimesheetApproved, CreatedBy: 99}))
}

func TestCanValidateTimesheet(t *testing.T) {
	submitted := TimesheetState{Status: TimesheetSubmitted, CreatedBy: 10}

	assert.True(t, CanValidateTimesheet(actorWithRole(1, RoleCustomerPM), nil, submitted))
	assert.True(t, CanValidateTimesheet(actorWithRole(1, RoleSupplierFinance), nil, submitted))
	assert.False(t, CanValidateTimesheet(actorWithRole(1, RoleContributor), nil, submitted))

	supplierOnly := &Settings{Approvals: map[Entity]AuthorityMode{EntityTimesheet: AuthoritySupplierOnly}}
	assert.False(t, CanValidateTimesheet(actorWithRole(1, RoleCustomerPM), supplierOnly, submitted))
	assert.True(t, CanValidateTimesheet(actorWithRole(1, RoleSupplierPM), supplierOnly, submitted))

	draft := TimesheetState{Status: TimesheetDraft, CreatedBy: 10}
	assert.False(t, CanValidateTimesheet(actorWithRole(1, RoleSupplierPM), supplierOnly, draft))
}

func TestTimesheetRecordGuards(t *testing.T) {
	owner := actorWithRole(10, RoleContributor)
	pm := actorWithRole(20, RoleSupplierPM)

	assert.True(t, CanEditTimesheetRecord(owner, TimesheetState{Status: TimesheetDraft, CreatedBy: 10}))
	assert.False(t, CanEditTimesheetRecord(owner, TimesheetState{Status: TimesheetApproved, CreatedBy: 10}))
	assert.True(t, CanEditTimesheetRecord(pm, TimesheetState{Status: TimesheetApproved, CreatedBy: 10}))

	assert.False(t, CanDeleteTimesheetRecord(owner, TimesheetState{Status: TimesheetPaid, CreatedBy: 10}))
	assert.False(t, CanEditTimesheetRecord(pm, TimesheetState{Status: TimesheetStatus("ARCHIVED"), CreatedBy: 10}))
}
