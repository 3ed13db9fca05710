package authz

import "github.com/google/uuid"

// Resource facade. Cost price, margin and resource type are supplier
// commercials and stay hidden from every other role; sell price is
// part of the agreed rate card and visible to all. Owning a resource
// record grants no extra visibility or edit rights, it only drives
// default selection in pickers.

// resourceFinancialRoles may see cost price, margin and resource type.
var resourceFinancialRoles = NewRoleSet(RoleAdmin, RoleSupplierPM)

// CanViewResourceFinancials reports whether the role may see the
// supplier-commercial fields of a resource.
func CanViewResourceFinancials(r Role) bool {
	return resourceFinancialRoles.Contains(r)
}

// CanViewResourceSellPrice reports whether the role may see the sell
// price. Always true for valid roles; the rate card is shared.
func CanViewResourceSellPrice(r Role) bool {
	return r.Valid()
}

// ResourceRef identifies a resource record for own-resource matching.
type ResourceRef struct {
	ID     uuid.UUID
	UserID int64
}

// IsOwnResource reports whether the resource is the actor's own,
// matched by linked resource id or by user linkage. Used only for
// default-selection helpers, never to bypass edit or delete
// restrictions.
func IsOwnResource(actor Actor, res ResourceRef) bool {
	if actor.LinkedResourceID != uuid.Nil && actor.LinkedResourceID == res.ID {
		return true
	}
	return actor.UserID != 0 && actor.UserID == res.UserID
}
