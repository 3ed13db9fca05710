package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRaidEditDeleteAsymmetry(t *testing.T) {
	customerPM := actorWithRole(10, RoleCustomerPM)
	item := RaidItemState{OwnerUserID: 99} // owned by someone else

	assert.True(t, CanEditRaidItem(customerPM, item))
	assert.False(t, CanDeleteRaidItem(customerPM, item))

	supplierPM := actorWithRole(20, RoleSupplierPM)
	assert.True(t, CanEditRaidItem(supplierPM, item))
	assert.True(t, CanDeleteRaidItem(supplierPM, item))
}

func TestRaidDeleteIgnoresOwnership(t *testing.T) {
	customerPM := actorWithRole(10, RoleCustomerPM)
	own := RaidItemState{OwnerUserID: 10}
	assert.False(t, CanDeleteRaidItem(customerPM, own), "owning an item never grants delete")

	admin := actorWithRole(1, RoleAdmin)
	assert.True(t, CanDeleteRaidItem(admin, RaidItemState{OwnerUserID: 99}))
}

func TestRaidReadOnlyRoles(t *testing.T) {
	viewer := actorWithRole(10, RoleViewer)
	contributor := actorWithRole(11, RoleContributor)
	item := RaidItemState{OwnerUserID: 11}

	assert.False(t, CanEditRaidItem(viewer, item))
	assert.False(t, CanEditRaidItem(contributor, item))
	assert.False(t, CanDeleteRaidItem(contributor, item))
	assert.True(t, CanViewRaid(RoleViewer))
}
