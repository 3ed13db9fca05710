package resources

import (
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

// Resource is a person or role on the supplier's rate card. Cost
// price, margin and resource type are supplier commercials; sell price
// is the agreed rate visible to everyone on the project.
type Resource struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ProjectID    uuid.UUID `json:"project_id" db:"project_id"`
	Name         string    `json:"name" db:"name"`
	UserID       int64     `json:"user_id" db:"user_id"`
	ResourceType string    `json:"resource_type" db:"resource_type"`
	SellPrice    float64   `json:"sell_price" db:"sell_price"`
	CostPrice    float64   `json:"cost_price" db:"cost_price"`
	Margin       float64   `json:"margin" db:"margin"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Ref adapts the resource for own-resource matching.
func (r *Resource) Ref() authz.ResourceRef {
	return authz.ResourceRef{ID: r.ID, UserID: r.UserID}
}
