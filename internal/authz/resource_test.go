package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResourceFinancialVisibility(t *testing.T) {
	assert.True(t, CanViewResourceFinancials(RoleAdmin))
	assert.True(t, CanViewResourceFinancials(RoleSupplierPM))
	assert.False(t, CanViewResourceFinancials(RoleSupplierFinance))
	assert.False(t, CanViewResourceFinancials(RoleCustomerPM))
	assert.False(t, CanViewResourceFinancials(RoleViewer))

	for _, role := range AllRoles {
		assert.True(t, CanViewResourceSellPrice(role), "sell price is visible to %s", role)
	}
	assert.False(t, CanViewResourceSellPrice(Role("root")))
}

func TestIsOwnResource(t *testing.T) {
	resID := uuid.New()
	actor := ResolveActor(&Identity{UserID: 5, LinkedResourceID: resID}, nil, nil, nil)

	assert.True(t, IsOwnResource(actor, ResourceRef{ID: resID}))
	assert.True(t, IsOwnResource(actor, ResourceRef{ID: uuid.New(), UserID: 5}))
	assert.False(t, IsOwnResource(actor, ResourceRef{ID: uuid.New(), UserID: 9}))

	unlinked := ResolveActor(&Identity{UserID: 5}, nil, nil, nil)
	assert.False(t, IsOwnResource(unlinked, ResourceRef{ID: uuid.Nil, UserID: 9}))
}

func TestOwnershipNeverBypassesRestrictions(t *testing.T) {
	resID := uuid.New()
	contributor := ResolveActor(
		&Identity{UserID: 5, LinkedResourceID: resID},
		nil,
		&ProjectAssignment{Role: RoleContributor},
		nil,
	)
	assert.True(t, IsOwnResource(contributor, ResourceRef{ID: resID}))
	assert.False(t, CanEditResource(contributor.EffectiveRole))
	assert.False(t, CanDeleteResource(contributor.EffectiveRole))
	assert.False(t, CanViewResourceFinancials(contributor.EffectiveRole))
}
