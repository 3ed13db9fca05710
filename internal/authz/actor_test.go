package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveActorChain(t *testing.T) {
	t.Run("system admin wins", func(t *testing.T) {
		actor := ResolveActor(
			&Identity{UserID: 7, IsSystemAdmin: true},
			&OrgMembership{IsOrgAdmin: false},
			&ProjectAssignment{Role: RoleContributor},
			nil,
		)
		assert.Equal(t, RoleAdmin, actor.ActualRole)
		assert.Equal(t, RoleAdmin, actor.EffectiveRole)
	})

	t.Run("org admin wins over assignment", func(t *testing.T) {
		actor := ResolveActor(
			&Identity{UserID: 7},
			&OrgMembership{IsOrgAdmin: true},
			&ProjectAssignment{Role: RoleViewer},
			nil,
		)
		assert.Equal(t, RoleAdmin, actor.ActualRole)
	})

	t.Run("project assignment", func(t *testing.T) {
		actor := ResolveActor(
			&Identity{UserID: 7},
			&OrgMembership{},
			&ProjectAssignment{Role: RoleSupplierFinance},
			nil,
		)
		assert.Equal(t, RoleSupplierFinance, actor.ActualRole)
	})

	t.Run("no match falls to viewer", func(t *testing.T) {
		actor := ResolveActor(&Identity{UserID: 7}, &OrgMembership{}, nil, nil)
		assert.Equal(t, RoleViewer, actor.ActualRole)
		assert.Equal(t, RoleViewer, actor.EffectiveRole)
	})

	t.Run("unknown stored role degrades to viewer", func(t *testing.T) {
		actor := ResolveActor(
			&Identity{UserID: 7},
			nil,
			&ProjectAssignment{Role: Role("superuser")},
			nil,
		)
		assert.Equal(t, RoleViewer, actor.ActualRole)
	})
}

func TestResolveActorMissingContext(t *testing.T) {
	actor := ResolveActor(nil, nil, nil, nil)
	assert.Equal(t, int64(0), actor.UserID)
	assert.Equal(t, RoleViewer, actor.ActualRole)
	assert.Equal(t, RoleViewer, actor.EffectiveRole)
	assert.False(t, actor.IsImpersonating)
	assert.False(t, actor.IsOrgLevelAdmin())
}

func TestResolveActorIdempotent(t *testing.T) {
	identity := &Identity{UserID: 11, LinkedResourceID: uuid.New()}
	org := &OrgMembership{IsOrgAdmin: false}
	assignment := &ProjectAssignment{Role: RoleCustomerPM}
	imp := &Impersonation{Active: true, Role: RoleContributor, Authorized: true}

	first := ResolveActor(identity, org, assignment, imp)
	second := ResolveActor(identity, org, assignment, imp)
	assert.Equal(t, first, second)
}

func TestImpersonation(t *testing.T) {
	identity := &Identity{UserID: 42}
	assignment := &ProjectAssignment{Role: RoleSupplierPM}

	t.Run("authorized substitutes effective role only", func(t *testing.T) {
		actor := ResolveActor(identity, nil, assignment, &Impersonation{
			Active: true, Role: RoleViewer, Authorized: true,
		})
		assert.Equal(t, int64(42), actor.UserID)
		assert.Equal(t, RoleSupplierPM, actor.ActualRole)
		assert.Equal(t, RoleViewer, actor.EffectiveRole)
		assert.True(t, actor.IsImpersonating)
	})

	t.Run("unauthorized override ignored", func(t *testing.T) {
		actor := ResolveActor(identity, nil, assignment, &Impersonation{
			Active: true, Role: RoleAdmin, Authorized: false,
		})
		assert.Equal(t, RoleSupplierPM, actor.EffectiveRole)
		assert.False(t, actor.IsImpersonating)
	})

	t.Run("invalid impersonated role ignored", func(t *testing.T) {
		actor := ResolveActor(identity, nil, assignment, &Impersonation{
			Active: true, Role: Role("root"), Authorized: true,
		})
		assert.Equal(t, RoleSupplierPM, actor.EffectiveRole)
		assert.False(t, actor.IsImpersonating)
	})
}

func TestOrgLevelAdminDistinctFromElevatedRole(t *testing.T) {
	orgAdmin := ResolveActor(&Identity{UserID: 1}, &OrgMembership{IsOrgAdmin: true}, nil, nil)
	assert.True(t, orgAdmin.IsOrgLevelAdmin())
	assert.True(t, orgAdmin.IsElevatedProjectRole()) // resolves to admin role

	supplierPM := ResolveActor(&Identity{UserID: 2}, nil, &ProjectAssignment{Role: RoleSupplierPM}, nil)
	assert.False(t, supplierPM.IsOrgLevelAdmin())
	assert.True(t, supplierPM.IsElevatedProjectRole())
}

func TestActorOwns(t *testing.T) {
	actor := ResolveActor(&Identity{UserID: 5}, nil, &ProjectAssignment{Role: RoleContributor}, nil)
	assert.True(t, actor.Owns(5))
	assert.False(t, actor.Owns(6))

	anonymous := ResolveActor(nil, nil, nil, nil)
	assert.False(t, anonymous.Owns(0))
}
