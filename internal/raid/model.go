package raid

import (
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
)

// Category distinguishes the four RAID log entry types.
type Category string

const (
	CategoryRisk       Category = "risk"
	CategoryAssumption Category = "assumption"
	CategoryIssue      Category = "issue"
	CategoryDependency Category = "dependency"
)

// Valid reports whether the category is one of the four log types.
func (c Category) Valid() bool {
	switch c {
	case CategoryRisk, CategoryAssumption, CategoryIssue, CategoryDependency:
		return true
	}
	return false
}

// Item is one entry in a project's RAID log.
type Item struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ProjectID   uuid.UUID  `json:"project_id" db:"project_id"`
	Category    Category   `json:"category" db:"category"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Severity    int        `json:"severity" db:"severity"`
	Open        bool       `json:"open" db:"open"`
	OwnerUserID int64      `json:"owner_user_id" db:"owner_user_id"`
	CreatedBy   int64      `json:"created_by" db:"created_by"`
	ClosedAt    *time.Time `json:"closed_at,omitempty" db:"closed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// GuardState projects the item onto the engine's guard input.
func (i *Item) GuardState() authz.RaidItemState {
	return authz.RaidItemState{OwnerUserID: i.OwnerUserID}
}
