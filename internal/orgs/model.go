package orgs

import (
	"time"

	"github.com/google/uuid"
)

// Org is a tenant organisation.
type Org struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Member is one user's membership of an organisation. IsOrgAdmin
// grants admin standing across every project in the org and the right
// to impersonate roles.
type Member struct {
	OrgID      uuid.UUID `json:"org_id" db:"org_id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	IsOrgAdmin bool      `json:"is_org_admin" db:"is_org_admin"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
