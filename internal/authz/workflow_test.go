package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsDefaults(t *testing.T) {
	assert.Equal(t, AuthorityBoth, ApprovalAuthorityFor(nil, EntityExpense))
	assert.True(t, IsFeatureEnabled(nil, FeatureRaid))

	empty := &Settings{}
	assert.Equal(t, AuthorityBoth, ApprovalAuthorityFor(empty, EntityTimesheet))
	assert.True(t, IsFeatureEnabled(empty, FeatureExpenses))

	// Unknown entity types resolve to both, never to none.
	configured := &Settings{Approvals: map[Entity]AuthorityMode{
		EntityExpense: AuthorityNone,
	}}
	assert.Equal(t, AuthorityBoth, ApprovalAuthorityFor(configured, Entity("milestone")))

	// Unrecognized stored values resolve to both.
	corrupt := &Settings{Approvals: map[Entity]AuthorityMode{
		EntityExpense: AuthorityMode("supplier_veto"),
	}}
	assert.Equal(t, AuthorityBoth, ApprovalAuthorityFor(corrupt, EntityExpense))
}

func TestFeatureFlags(t *testing.T) {
	settings := &Settings{Features: map[Feature]bool{
		FeatureRaid:       false,
		FeatureTimesheets: true,
	}}
	assert.False(t, IsFeatureEnabled(settings, FeatureRaid))
	assert.True(t, IsFeatureEnabled(settings, FeatureTimesheets))
	assert.True(t, IsFeatureEnabled(settings, FeatureInvoicing)) // unset stays on
	assert.True(t, IsFeatureEnabled(settings, Feature("gantt")))
}

func TestCanApproveModes(t *testing.T) {
	cases := []struct {
		mode    AuthorityMode
		role    Role
		ctx     ApprovalContext
		allowed bool
	}{
		{AuthorityBoth, RoleSupplierPM, ApprovalContext{}, true},
		{AuthorityBoth, RoleCustomerFinance, ApprovalContext{}, true},
		{AuthorityBoth, RoleContributor, ApprovalContext{}, false},
		{AuthorityBoth, RoleViewer, ApprovalContext{}, false},

		{AuthoritySupplierOnly, RoleSupplierFinance, ApprovalContext{}, true},
		{AuthoritySupplierOnly, RoleAdmin, ApprovalContext{}, true},
		{AuthoritySupplierOnly, RoleCustomerPM, ApprovalContext{}, false},

		{AuthorityCustomerOnly, RoleCustomerPM, ApprovalContext{}, true},
		{AuthorityCustomerOnly, RoleAdmin, ApprovalContext{}, false},

		{AuthorityEither, RoleCustomerFinance, ApprovalContext{}, true},
		{AuthorityEither, RoleSupplierPM, ApprovalContext{}, true},
		{AuthorityEither, RoleContributor, ApprovalContext{}, false},

		{AuthorityConditional, RoleCustomerPM, ApprovalContext{Chargeable: true}, true},
		{AuthorityConditional, RoleSupplierPM, ApprovalContext{Chargeable: true}, false},
		{AuthorityConditional, RoleSupplierPM, ApprovalContext{Chargeable: false}, true},
		{AuthorityConditional, RoleCustomerFinance, ApprovalContext{Chargeable: false}, false},
		{AuthorityConditional, RoleViewer, ApprovalContext{Chargeable: true}, false},
	}
	for _, tc := range cases {
		settings := &Settings{Approvals: map[Entity]AuthorityMode{EntityExpense: tc.mode}}
		got := CanApprove(settings, EntityExpense, tc.role, tc.ctx)
		assert.Equal(t, tc.allowed, got, "mode=%s role=%s chargeable=%v", tc.mode, tc.role, tc.ctx.Chargeable)
	}
}

func TestCanApproveNoneFallsBackToBasePermission(t *testing.T) {
	settings := &Settings{Approvals: map[Entity]AuthorityMode{EntityExpense: AuthorityNone}}
	// Contributors hold base edit permission on expenses, so the open
	// gate lets them complete.
	assert.True(t, CanApprove(settings, EntityExpense, RoleContributor, ApprovalContext{}))
	assert.False(t, CanApprove(settings, EntityExpense, RoleViewer, ApprovalContext{}))
}

func TestRequiresDualSignature(t *testing.T) {
	assert.True(t, RequiresDualSignature(nil, EntityDeliverable))

	both := &Settings{Approvals: map[Entity]AuthorityMode{EntityDeliverable: AuthorityBoth}}
	assert.True(t, RequiresDualSignature(both, EntityDeliverable))

	either := &Settings{Approvals: map[Entity]AuthorityMode{EntityDeliverable: AuthorityEither}}
	assert.False(t, RequiresDualSignature(either, EntityDeliverable))

	none := &Settings{Approvals: map[Entity]AuthorityMode{EntityDeliverable: AuthorityNone}}
	assert.False(t, RequiresDualSignature(none, EntityDeliverable))
}
