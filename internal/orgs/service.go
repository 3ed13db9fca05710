package orgs

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

// Service handles organisation logic and feeds the org side of role
// resolution.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches one organisation.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Org, error) {
	return s.repo.Get(ctx, id)
}

// ListForUser returns the organisations the user belongs to.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]Org, error) {
	return s.repo.ListForUser(ctx, userID)
}

// SetMember grants or updates a membership. Only org-level admins may
// manage membership.
func (s *Service) SetMember(ctx context.Context, actor authz.Actor, m Member) error {
	if !actor.IsOrgLevelAdmin() {
		return fmt.Errorf("set org member: %w", shared.ErrForbidden)
	}
	return s.repo.UpsertMember(ctx, m)
}

// RemoveMember revokes a membership.
func (s *Service) RemoveMember(ctx context.Context, actor authz.Actor, orgID uuid.UUID, userID int64) error {
	if !actor.IsOrgLevelAdmin() {
		return fmt.Errorf("remove org member: %w", shared.ErrForbidden)
	}
	return s.repo.RemoveMember(ctx, orgID, userID)
}

// Membership implements the org membership provider used in role
// resolution. A user outside the org resolves to no membership, not an
// error.
func (s *Service) Membership(ctx context.Context, orgID uuid.UUID, userID int64) (*authz.OrgMembership, error) {
	member, err := s.repo.GetMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &authz.OrgMembership{IsOrgAdmin: member.IsOrgAdmin}, nil
}
