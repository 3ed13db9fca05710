package authz

// AuthorityMode configures which side of the project relationship may
// approve a governed entity type.
type AuthorityMode string

const (
	// AuthorityBoth requires each side to sign its own part.
	AuthorityBoth AuthorityMode = "both"
	// AuthoritySupplierOnly restricts approval to the supplier side.
	AuthoritySupplierOnly AuthorityMode = "supplier_only"
	// AuthorityCustomerOnly restricts approval to the customer side.
	AuthorityCustomerOnly AuthorityMode = "customer_only"
	// AuthorityEither lets one side alone complete the approval.
	AuthorityEither AuthorityMode = "either"
	// AuthorityConditional branches on object attributes; for expenses
	// the chargeable flag picks the side.
	AuthorityConditional AuthorityMode = "conditional"
	// AuthorityNone removes the approval gate entirely.
	AuthorityNone AuthorityMode = "none"
)

// ParseAuthorityMode maps a stored string to a mode. Unknown values
// report ok=false and must be treated as AuthorityBoth by callers.
func ParseAuthorityMode(s string) (AuthorityMode, bool) {
	switch AuthorityMode(s) {
	case AuthorityBoth, AuthoritySupplierOnly, AuthorityCustomerOnly,
		AuthorityEither, AuthorityConditional, AuthorityNone:
		return AuthorityMode(s), true
	}
	return AuthorityBoth, false
}

// Feature names a per-project toggleable capability.
type Feature string

const (
	FeatureTimesheets   Feature = "timesheets"
	FeatureExpenses     Feature = "expenses"
	FeatureDeliverables Feature = "deliverables"
	FeatureRaid         Feature = "raid"
	FeatureVariations   Feature = "variations"
	FeatureCertificates Feature = "certificates"
	FeatureInvoicing    Feature = "invoicing"
)

// Settings is a project's workflow configuration as loaded by the
// settings store. A nil *Settings, a nil map, or an absent key all
// mean "not configured" and resolve to the safe default: features stay
// enabled and approval authority stays at both. Governance is never
// silently disabled by a missing row.
type Settings struct {
	Features  map[Feature]bool
	Approvals map[Entity]AuthorityMode
}

// IsFeatureEnabled reports whether the feature is switched on for the
// project. Only an explicit false disables a feature.
func IsFeatureEnabled(s *Settings, f Feature) bool {
	if s == nil || s.Features == nil {
		return true
	}
	enabled, ok := s.Features[f]
	if !ok {
		return true
	}
	return enabled
}

// ApprovalAuthorityFor returns the configured mode for the entity
// type, defaulting to AuthorityBoth for missing settings, unknown
// entity types, and unrecognized stored values.
func ApprovalAuthorityFor(s *Settings, entity Entity) AuthorityMode {
	if s == nil || s.Approvals == nil {
		return AuthorityBoth
	}
	mode, ok := s.Approvals[entity]
	if !ok {
		return AuthorityBoth
	}
	if parsed, valid := ParseAuthorityMode(string(mode)); valid {
		return parsed
	}
	return AuthorityBoth
}

// ApprovalContext carries the object attributes conditional modes
// branch on.
type ApprovalContext struct {
	// Chargeable is the expense chargeable-to-customer flag.
	Chargeable bool
}

// CanApprove reports whether the role satisfies the project's approval
// authority for the entity type. Under AuthorityNone the gate is open
// to any role holding base validate permission for the entity; the
// caller's edit/submit guards still apply.
func CanApprove(s *Settings, entity Entity, role Role, ctx ApprovalContext) bool {
	switch ApprovalAuthorityFor(s, entity) {
	case AuthoritySupplierOnly:
		return role.IsSupplierSide()
	case AuthorityCustomerOnly:
		return role.IsCustomerSide()
	case AuthorityEither, AuthorityBoth:
		return role.IsSupplierSide() || role.IsCustomerSide()
	case AuthorityConditional:
		if ctx.Chargeable {
			return role.IsCustomerSide()
		}
		return role.IsSupplierSide()
	case AuthorityNone:
		return HasPermission(role, entity, ActionValidate) ||
			HasPermission(role, entity, ActionEdit)
	}
	return false
}

// RequiresDualSignature reports whether both sides must approve
// independently before the entity counts as accepted. True only under
// AuthorityBoth.
func RequiresDualSignature(s *Settings, entity Entity) bool {
	return ApprovalAuthorityFor(s, entity) == AuthorityBoth
}
