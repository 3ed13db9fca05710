package authz

// Entity names a governed record type in the permission matrix.
type Entity string

const (
	EntityProject         Entity = "project"
	EntityTimesheet       Entity = "timesheet"
	EntityExpense         Entity = "expense"
	EntityDeliverable     Entity = "deliverable"
	EntityKPI             Entity = "kpi"
	EntityQualityStandard Entity = "quality_standard"
	EntityRaid            Entity = "raid"
	EntityResource        Entity = "resource"
	EntityPartner         Entity = "partner"
	EntityVariation       Entity = "variation"
	EntityCertificate     Entity = "certificate"
	EntityInvoice         Entity = "invoice"
	EntitySettings        Entity = "settings"
	EntityMember          Entity = "member"
)

// Action names an operation on an entity.
type Action string

const (
	ActionView     Action = "view"
	ActionAdd      Action = "add"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionSubmit   Action = "submit"
	ActionValidate Action = "validate"
	ActionReview   Action = "review"
	ActionAssess   Action = "assess"
	ActionDeliver  Action = "deliver"
	ActionIssue    Action = "issue"
	ActionManage   Action = "manage"
)

// everyone is the full role set, used where viewing is unrestricted.
var everyone = NewRoleSet(AllRoles...)

// matrix is the static capability table. It is built once at package
// init and must never be mutated afterwards; evaluation is read-only.
//
// Ownership and object state are deliberately absent here: the matrix
// answers "could this role ever do this", the per-entity guards answer
// "may it be done to this record now".
var matrix = map[Entity]map[Action]RoleSet{
	EntityProject: {
		ActionView:   everyone,
		ActionAdd:    NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionEdit:   NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionDelete: NewRoleSet(RoleAdmin),
	},
	EntityTimesheet: {
		ActionView:     everyone,
		ActionAdd:      NewRoleSet(RoleAdmin, RoleSupplierPM, RoleSupplierFinance, RoleContributor),
		ActionEdit:     NewRoleSet(RoleAdmin, RoleSupplierPM, RoleSupplierFinance, RoleContributor),
		ActionDelete:   NewRoleSet(RoleAdmin, RoleSupplierPM, RoleContributor),
		ActionSubmit:   NewRoleSet(RoleAdmin, RoleSupplierPM, RoleSupplierFinance, RoleContributor),
		ActionValidate: NewRoleSet(RoleAdmin, RoleSupplierPM, RoleSupplierFinance, RoleCustomerPM, RoleCustomerFinance),
	},
	EntityExpense: {
		ActionView:     everyone,
		ActionAdd:      NewRoleSet(RoleAdmin, RoleSupplierPM, RoleSupplierFinance, RoleContributor),
		ActionEdit:     NewRoleSet(RoleAdmin, RoleSupplierPM, RoleSupplierFinance, RoleContributor),
		ActionDelete:   NewRoleSet(RoleAdmin, RoleSupplierPM, RoleContributor),
		ActionSubmit:   NewRoleSet(RoleAdmin, RoleSupplierPM, RoleSupplierFinance, RoleContributor),
		ActionValidate: NewRoleSet(RoleAdmin, RoleSupplierPM, RoleSupplierFinance, RoleCustomerPM, RoleCustomerFinance),
	},
	EntityDeliverable: {
		ActionView:    everyone,
		ActionAdd:     NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionEdit:    NewRoleSet(RoleAdmin, RoleSupplierPM, RoleContributor),
		ActionDelete:  NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionSubmit:  NewRoleSet(RoleAdmin, RoleSupplierPM, RoleContributor),
		ActionReview:  NewRoleSet(RoleAdmin, RoleSupplierPM, RoleCustomerPM),
		ActionDeliver: NewRoleSet(RoleAdmin, RoleSupplierPM),
	},
	EntityKPI: {
		ActionView:   everyone,
		ActionAdd:    NewRoleSet(RoleAdmin, RoleSupplierPM, RoleCustomerPM),
		ActionEdit:   NewRoleSet(RoleAdmin, RoleSupplierPM, RoleCustomerPM),
		ActionDelete: NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionAssess: NewRoleSet(RoleAdmin, RoleSupplierPM, RoleCustomerPM),
	},
	EntityQualityStandard: {
		ActionView:   everyone,
		ActionAdd:    NewRoleSet(RoleAdmin, RoleSupplierPM, RoleCustomerPM),
		ActionEdit:   NewRoleSet(RoleAdmin, RoleSupplierPM, RoleCustomerPM),
		ActionDelete: NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionAssess: NewRoleSet(RoleAdmin, RoleSupplierPM, RoleCustomerPM),
	},
	EntityRaid: {
		ActionView:   everyone,
		ActionAdd:    ManagerRoles,
		ActionEdit:   ManagerRoles,
		ActionManage: ManagerRoles,
		// Delete is a side-of-house privilege: customer managers may
		// edit any item but never remove one from the log.
		ActionDelete: NewRoleSet(RoleAdmin, RoleSupplierPM),
	},
	EntityResource: {
		ActionView:   everyone,
		ActionAdd:    NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionEdit:   NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionDelete: NewRoleSet(RoleAdmin, RoleSupplierPM),
	},
	EntityPartner: {
		ActionView:   everyone,
		ActionAdd:    NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionEdit:   NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionDelete: NewRoleSet(RoleAdmin, RoleSupplierPM),
	},
	EntityVariation: {
		ActionView:   everyone,
		ActionAdd:    NewRoleSet(RoleAdmin, RoleSupplierPM, RoleCustomerPM),
		ActionEdit:   NewRoleSet(RoleAdmin, RoleSupplierPM, RoleCustomerPM),
		ActionDelete: NewRoleSet(RoleAdmin, RoleSupplierPM),
	},
	EntityCertificate: {
		ActionView:  everyone,
		ActionIssue: NewRoleSet(RoleAdmin, RoleSupplierPM),
	},
	EntityInvoice: {
		ActionView: NewRoleSet(RoleAdmin, RoleSupplierPM, RoleSupplierFinance, RoleCustomerPM, RoleCustomerFinance),
		ActionAdd:  NewRoleSet(RoleAdmin, RoleSupplierFinance),
		ActionEdit: NewRoleSet(RoleAdmin, RoleSupplierFinance),
	},
	EntitySettings: {
		ActionView:   NewRoleSet(RoleAdmin, RoleSupplierPM, RoleCustomerPM),
		ActionManage: NewRoleSet(RoleAdmin, RoleSupplierPM),
	},
	EntityMember: {
		ActionView:   everyone,
		ActionAdd:    NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionEdit:   NewRoleSet(RoleAdmin, RoleSupplierPM),
		ActionDelete: NewRoleSet(RoleAdmin, RoleSupplierPM),
	},
}

// HasPermission reports whether role may ever perform action on
// entity. Unknown entities, unknown actions, and invalid roles all
// answer false.
func HasPermission(role Role, entity Entity, action Action) bool {
	actions, ok := matrix[entity]
	if !ok {
		return false
	}
	allowed, ok := actions[action]
	if !ok {
		return false
	}
	return allowed.Contains(role)
}
