package authz

// Role-only convenience predicates over the matrix, grouped by domain.
// Each is a pure function of the role, evaluated per render from the
// current effective role; object- and settings-dependent rules live in
// the per-entity guards, not here.

// Projects

func CanViewProject(r Role) bool   { return HasPermission(r, EntityProject, ActionView) }
func CanAddProject(r Role) bool    { return HasPermission(r, EntityProject, ActionAdd) }
func CanEditProject(r Role) bool   { return HasPermission(r, EntityProject, ActionEdit) }
func CanDeleteProject(r Role) bool { return HasPermission(r, EntityProject, ActionDelete) }

// Members

func CanViewMembers(r Role) bool    { return HasPermission(r, EntityMember, ActionView) }
func CanAddMember(r Role) bool      { return HasPermission(r, EntityMember, ActionAdd) }
func CanEditMember(r Role) bool     { return HasPermission(r, EntityMember, ActionEdit) }
func CanRemoveMember(r Role) bool   { return HasPermission(r, EntityMember, ActionDelete) }

// Timesheets

func CanViewTimesheets(r Role) bool    { return HasPermission(r, EntityTimesheet, ActionView) }
func CanAddTimesheet(r Role) bool      { return HasPermission(r, EntityTimesheet, ActionAdd) }
func CanEditTimesheet(r Role) bool     { return HasPermission(r, EntityTimesheet, ActionEdit) }
func CanDeleteTimesheet(r Role) bool   { return HasPermission(r, EntityTimesheet, ActionDelete) }
func CanSubmitTimesheets(r Role) bool  { return HasPermission(r, EntityTimesheet, ActionSubmit) }
func CanValidateTimesheets(r Role) bool {
	return HasPermission(r, EntityTimesheet, ActionValidate)
}

// Expenses

func CanViewExpenses(r Role) bool    { return HasPermission(r, EntityExpense, ActionView) }
func CanAddExpense(r Role) bool      { return HasPermission(r, EntityExpense, ActionAdd) }
func CanEditExpenses(r Role) bool    { return HasPermission(r, EntityExpense, ActionEdit) }
func CanDeleteExpenses(r Role) bool  { return HasPermission(r, EntityExpense, ActionDelete) }
func CanSubmitExpenses(r Role) bool  { return HasPermission(r, EntityExpense, ActionSubmit) }
func CanValidateExpenses(r Role) bool {
	return HasPermission(r, EntityExpense, ActionValidate)
}

// Deliverables

func CanViewDeliverables(r Role) bool  { return HasPermission(r, EntityDeliverable, ActionView) }
func CanAddDeliverable(r Role) bool    { return HasPermission(r, EntityDeliverable, ActionAdd) }
func CanEditDeliverable(r Role) bool   { return HasPermission(r, EntityDeliverable, ActionEdit) }
func CanDeleteDeliverable(r Role) bool { return HasPermission(r, EntityDeliverable, ActionDelete) }
func CanSubmitDeliverable(r Role) bool { return HasPermission(r, EntityDeliverable, ActionSubmit) }
func CanReviewDeliverables(r Role) bool {
	return HasPermission(r, EntityDeliverable, ActionReview)
}
func CanDeliverDeliverables(r Role) bool {
	return HasPermission(r, EntityDeliverable, ActionDeliver)
}

// KPIs

func CanViewKPIs(r Role) bool   { return HasPermission(r, EntityKPI, ActionView) }
func CanAddKPI(r Role) bool     { return HasPermission(r, EntityKPI, ActionAdd) }
func CanEditKPI(r Role) bool    { return HasPermission(r, EntityKPI, ActionEdit) }
func CanDeleteKPI(r Role) bool  { return HasPermission(r, EntityKPI, ActionDelete) }
func CanAssessKPI(r Role) bool  { return HasPermission(r, EntityKPI, ActionAssess) }

// Quality standards

func CanViewQualityStandards(r Role) bool {
	return HasPermission(r, EntityQualityStandard, ActionView)
}
func CanAddQualityStandard(r Role) bool {
	return HasPermission(r, EntityQualityStandard, ActionAdd)
}
func CanEditQualityStandard(r Role) bool {
	return HasPermission(r, EntityQualityStandard, ActionEdit)
}
func CanDeleteQualityStandard(r Role) bool {
	return HasPermission(r, EntityQualityStandard, ActionDelete)
}
func CanAssessQualityStandard(r Role) bool {
	return HasPermission(r, EntityQualityStandard, ActionAssess)
}

// RAID log

func CanViewRaid(r Role) bool   { return HasPermission(r, EntityRaid, ActionView) }
func CanAddRaid(r Role) bool    { return HasPermission(r, EntityRaid, ActionAdd) }
func CanEditRaid(r Role) bool   { return HasPermission(r, EntityRaid, ActionEdit) }
func CanManageRaid(r Role) bool { return HasPermission(r, EntityRaid, ActionManage) }
func CanDeleteRaid(r Role) bool { return HasPermission(r, EntityRaid, ActionDelete) }

// Resources

func CanViewResources(r Role) bool   { return HasPermission(r, EntityResource, ActionView) }
func CanAddResource(r Role) bool     { return HasPermission(r, EntityResource, ActionAdd) }
func CanEditResource(r Role) bool    { return HasPermission(r, EntityResource, ActionEdit) }
func CanDeleteResource(r Role) bool  { return HasPermission(r, EntityResource, ActionDelete) }

// Partners

func CanViewPartners(r Role) bool   { return HasPermission(r, EntityPartner, ActionView) }
func CanAddPartner(r Role) bool     { return HasPermission(r, EntityPartner, ActionAdd) }
func CanEditPartner(r Role) bool    { return HasPermission(r, EntityPartner, ActionEdit) }
func CanDeletePartner(r Role) bool  { return HasPermission(r, EntityPartner, ActionDelete) }

// Variations

func CanViewVariations(r Role) bool  { return HasPermission(r, EntityVariation, ActionView) }
func CanAddVariation(r Role) bool    { return HasPermission(r, EntityVariation, ActionAdd) }
func CanEditVariation(r Role) bool   { return HasPermission(r, EntityVariation, ActionEdit) }
func CanDeleteVariation(r Role) bool { return HasPermission(r, EntityVariation, ActionDelete) }

// Certificates

func CanViewCertificates(r Role) bool { return HasPermission(r, EntityCertificate, ActionView) }
func CanIssueCertificate(r Role) bool { return HasPermission(r, EntityCertificate, ActionIssue) }

// Invoices

func CanViewInvoices(r Role) bool { return HasPermission(r, EntityInvoice, ActionView) }
func CanAddInvoice(r Role) bool   { return HasPermission(r, EntityInvoice, ActionAdd) }
func CanEditInvoice(r Role) bool  { return HasPermission(r, EntityInvoice, ActionEdit) }

// Project settings

func CanViewProjectSettings(r Role) bool {
	return HasPermission(r, EntitySettings, ActionView)
}
func CanManageProjectSettings(r Role) bool {
	return HasPermission(r, EntitySettings, ActionManage)
}
