package users

import (
	"time"

	"github.com/google/uuid"
)

// User is a managed account. IsSystemAdmin is a global flag that
// short-circuits role resolution; LinkedResourceID ties the account to
// a rate-card resource for default selection.
type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	IsActive         bool       `json:"is_active"`
	IsSystemAdmin    bool       `json:"is_system_admin"`
	LinkedResourceID *uuid.UUID `json:"linked_resource_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
