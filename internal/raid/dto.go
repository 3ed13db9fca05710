package raid

import (
	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

type CreateItemRequest struct {
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	Category    Category  `json:"category" validate:"required,oneof=risk assumption issue dependency"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	Severity    int       `json:"severity" validate:"min=1,max=5"`
	OwnerUserID int64     `json:"owner_user_id"`
}

type UpdateItemRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Severity    *int    `json:"severity,omitempty" validate:"omitempty,min=1,max=5"`
	Open        *bool   `json:"open,omitempty"`
	OwnerUserID *int64  `json:"owner_user_id,omitempty"`
}

type ListItemsRequest struct {
	ProjectID uuid.UUID
	Category  *Category
	OpenOnly  bool
	Limit     int
	Offset    int
}

// ItemView is a RAID item plus the actions the current actor may take
// on it.
type ItemView struct {
	Item
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// NewItemView evaluates the facade for one item.
func NewItemView(actor authz.Actor, i Item) ItemView {
	state := i.GuardState()
	return ItemView{
		Item:      i,
		CanEdit:   authz.CanEditRaidItem(actor, state),
		CanDelete: authz.CanDeleteRaidItem(actor, state),
	}
}
