package authz

// Role is a project-scoped role. The set is closed: all behavioural
// variation is expressed through matrix lookups and role-group
// membership, never by adding roles.
type Role string

const (
	RoleViewer          Role = "viewer"
	RoleContributor     Role = "contributor"
	RoleCustomerPM      Role = "customer_pm"
	RoleCustomerFinance Role = "customer_finance"
	RoleSupplierPM      Role = "supplier_pm"
	RoleSupplierFinance Role = "supplier_finance"
	RoleAdmin           Role = "admin"
)

// AllRoles lists every valid role. Order matters for settings screens.
var AllRoles = []Role{
	RoleViewer,
	RoleContributor,
	RoleCustomerPM,
	RoleCustomerFinance,
	RoleSupplierPM,
	RoleSupplierFinance,
	RoleAdmin,
}

// ParseRole maps a stored string to a Role. Unknown values report
// ok=false; callers must fall back to RoleViewer, never to an
// elevated role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleViewer, RoleContributor, RoleCustomerPM, RoleCustomerFinance,
		RoleSupplierPM, RoleSupplierFinance, RoleAdmin:
		return Role(s), true
	}
	return RoleViewer, false
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok && Role(string(r)) == r
}

// RoleSet is an immutable membership set over roles.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports membership of r in the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Named role groups. Side-of-house is the axis approval authority is
// expressed in: supplier side delivers the project, customer side
// receives it.
var (
	// SupplierSide may act for the delivering organisation.
	SupplierSide = NewRoleSet(RoleAdmin, RoleSupplierPM, RoleSupplierFinance)
	// CustomerSide may act for the receiving organisation.
	CustomerSide = NewRoleSet(RoleCustomerPM, RoleCustomerFinance)
	// ManagerRoles may steer project content (plans, RAID, deliverables).
	ManagerRoles = NewRoleSet(RoleAdmin, RoleSupplierPM, RoleCustomerPM)
	// FinanceRoles see money fields end to end.
	FinanceRoles = NewRoleSet(RoleAdmin, RoleSupplierFinance, RoleCustomerFinance)
	// ElevatedRoles may correct records owned by other users.
	ElevatedRoles = NewRoleSet(RoleAdmin, RoleSupplierPM)
)

// IsSupplierSide reports whether r belongs to the delivering side.
func (r Role) IsSupplierSide() bool { return SupplierSide.Contains(r) }

// IsCustomerSide reports whether r belongs to the receiving side.
func (r Role) IsCustomerSide() bool { return CustomerSide.Contains(r) }

// IsManager reports whether r may steer project content.
func (r Role) IsManager() bool { return ManagerRoles.Contains(r) }

// IsElevated reports whether r may act on records it does not own.
func (r Role) IsElevated() bool { return ElevatedRoles.Contains(r) }
