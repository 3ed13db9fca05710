package projects

import (
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

// Project is a customer engagement tracked by the platform.
type Project struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrgID     uuid.UUID `json:"org_id" db:"org_id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"`
	Active    bool      `json:"active" db:"active"`
	CreatedBy int64     `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Assignment binds a user to a project under one role. A user holds at
// most one role per project.
type Assignment struct {
	ProjectID uuid.UUID  `json:"project_id" db:"project_id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Role      authz.Role `json:"role" db:"role"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
