package users

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

// Service handles user account logic and feeds the identity side of
// role resolution.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches one user.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// SetSystemAdmin toggles the global admin flag.
func (s *Service) SetSystemAdmin(ctx context.Context, id int64, isAdmin bool) error {
	return s.repo.SetSystemAdmin(ctx, id, isAdmin)
}

// LinkResource ties the user to a rate-card resource.
func (s *Service) LinkResource(ctx context.Context, id int64, resourceID *uuid.UUID) error {
	var raw *string
	if resourceID != nil {
		v := resourceID.String()
		raw = &v
	}
	return s.repo.LinkResource(ctx, id, raw)
}

// Identity implements the identity provider used in role resolution.
// A deleted user is not an error; the resolver degrades to viewer.
func (s *Service) Identity(ctx context.Context, userID int64) (*authz.Identity, error) {
	user, err := s.repo.Get(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	identity := &authz.Identity{
		UserID:        user.ID,
		IsSystemAdmin: user.IsSystemAdmin,
	}
	if user.LinkedResourceID != nil {
		identity.LinkedResourceID = *user.LinkedResourceID
	}
	return identity, nil
}
