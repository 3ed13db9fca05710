package authz

// RAID facade. The RAID log (risks, assumptions, issues, dependencies)
// is manager-maintained content with one deliberate asymmetry: any
// manager may edit any item, but removal from the log is a
// supplier-side privilege regardless of who owns the item.

// RaidItemState is the slice of a RAID item the facade evaluates.
type RaidItemState struct {
	OwnerUserID int64
}

// CanEditRaidItem reports whether the actor may edit the item.
// Manager standing suffices; ownership additionally lets the item's
// owner maintain it.
func CanEditRaidItem(actor Actor, item RaidItemState) bool {
	if CanEditRaid(actor.EffectiveRole) {
		return true
	}
	return actor.Owns(item.OwnerUserID) && CanAddRaid(actor.EffectiveRole)
}

// CanDeleteRaidItem reports whether the actor may remove the item
// from the log. Deletion never follows ownership: customer-side
// managers edit, only the supplier side deletes.
func CanDeleteRaidItem(actor Actor, item RaidItemState) bool {
	_ = item
	return CanDeleteRaid(actor.EffectiveRole)
}
