package settings

// UpdateSettingsRequest carries a full replacement of a project's
// workflow configuration. Keys absent from the request fall back to
// resolver defaults, so a partial body loosens nothing silently.
type UpdateSettingsRequest struct {
	Features  map[string]bool   `json:"features" validate:"dive,keys,required,endkeys"`
	Approvals map[string]string `json:"approvals" validate:"dive,keys,required,endkeys,required,oneof=both supplier_only customer_only either conditional none"`
}

// SettingsResponse is the settings screen payload: the stored
// configuration plus the resolved view the engine will actually apply.
type SettingsResponse struct {
	Features  map[string]bool          `json:"features"`
	Approvals map[string]AuthorityView `json:"approvals"`
}

// AuthorityView pairs the resolved mode with its dual-signature
// consequence so the UI does not re-implement resolver rules.
type AuthorityView struct {
	Mode                   string `json:"mode"`
	RequiresDualSignature  bool   `json:"requires_dual_signature"`
}
