package resources

import (
	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

type CreateResourceRequest struct {
	ProjectID    uuid.UUID `json:"project_id" validate:"required"`
	Name         string    `json:"name" validate:"required,max=200"`
	UserID       int64     `json:"user_id"`
	ResourceType string    `json:"resource_type" validate:"required,max=100"`
	SellPrice    float64   `json:"sell_price" validate:"gte=0"`
	CostPrice    float64   `json:"cost_price" validate:"gte=0"`
}

type UpdateResourceRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	UserID       *int64   `json:"user_id,omitempty"`
	ResourceType *string  `json:"resource_type,omitempty" validate:"omitempty,max=100"`
	SellPrice    *float64 `json:"sell_price,omitempty" validate:"omitempty,gte=0"`
	CostPrice    *float64 `json:"cost_price,omitempty" validate:"omitempty,gte=0"`
	Active       *bool    `json:"active,omitempty"`
}

type ListResourcesRequest struct {
	ProjectID  uuid.UUID
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ResourceView is the role-filtered projection of a resource. The
// commercial fields are pointers so JSON omits them entirely for roles
// that may not see them, rather than leaking zero values.
type ResourceView struct {
	ID           uuid.UUID `json:"id"`
	ProjectID    uuid.UUID `json:"project_id"`
	Name         string    `json:"name"`
	UserID       int64     `json:"user_id"`
	SellPrice    float64   `json:"sell_price"`
	Active       bool      `json:"active"`
	IsOwn        bool      `json:"is_own"`
	ResourceType *string   `json:"resource_type,omitempty"`
	CostPrice    *float64  `json:"cost_price,omitempty"`
	Margin       *float64  `json:"margin,omitempty"`
}

// NewResourceView projects a resource for the actor, redacting the
// supplier-commercial fields unless the role may see them. IsOwn only
// drives default selection in pickers.
func NewResourceView(actor authz.Actor, res Resource) ResourceView {
	view := ResourceView{
		ID:        res.ID,
		ProjectID: res.ProjectID,
		Name:      res.Name,
		UserID:    res.UserID,
		SellPrice: res.SellPrice,
		Active:    res.Active,
		IsOwn:     authz.IsOwnResource(actor, res.Ref()),
	}
	if authz.CanViewResourceFinancials(actor.EffectiveRole) {
		view.ResourceType = &res.ResourceType
		view.CostPrice = &res.CostPrice
		view.Margin = &res.Margin
	}
	return view
}
