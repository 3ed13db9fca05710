package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

// Service handles project logic and feeds the project side of role
// resolution.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches one project.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.Get(ctx, id)
}

// ListForUser returns the projects in the org the user is assigned to.
func (s *Service) ListForUser(ctx context.Context, orgID uuid.UUID, userID int64) ([]Project, error) {
	return s.repo.ListForUser(ctx, orgID, userID)
}

// Create adds a project and assigns the creator as supplier PM so the
// project is never orphaned.
func (s *Service) Create(ctx context.Context, actor authz.Actor, orgID uuid.UUID, name, code string) (*Project, error) {
	if !actor.IsOrgLevelAdmin() && !authz.CanAddProject(actor.EffectiveRole) {
		return nil, fmt.Errorf("create project: %w", shared.ErrForbidden)
	}

	project := Project{
		ID:        uuid.New(),
		OrgID:     orgID,
		Name:      name,
		Code:      code,
		Active:    true,
		CreatedBy: actor.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	assignment := Assignment{ProjectID: project.ID, UserID: actor.UserID, Role: authz.RoleSupplierPM}
	if err := s.repo.UpsertAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("assign project creator: %w", err)
	}
	return &project, nil
}

// Update edits a project.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, name, code *string, active *bool) (*Project, error) {
	if !actor.IsOrgLevelAdmin() && !authz.CanEditProject(actor.EffectiveRole) {
		return nil, fmt.Errorf("update project: %w", shared.ErrForbidden)
	}
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		project.Name = *name
	}
	if code != nil {
		project.Code = *code
	}
	if active != nil {
		project.Active = *active
	}
	if err := s.repo.Update(ctx, *project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Members returns the project's role assignments.
func (s *Service) Members(ctx context.Context, actor authz.Actor, projectID uuid.UUID) ([]Assignment, error) {
	if !authz.CanViewMembers(actor.EffectiveRole) {
		return nil, fmt.Errorf("list members: %w", shared.ErrForbidden)
	}
	return s.repo.ListAssignments(ctx, projectID)
}

// AssignRole sets the user's role on a project. Unknown role names are
// rejected rather than silently downgraded.
func (s *Service) AssignRole(ctx context.Context, actor authz.Actor, projectID uuid.UUID, userID int64, role string) (*Assignment, error) {
	if !actor.IsOrgLevelAdmin() && !authz.CanEditMember(actor.EffectiveRole) {
		return nil, fmt.Errorf("assign role: %w", shared.ErrForbidden)
	}
	parsed, ok := authz.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("assign role: unknown role %q", role)
	}

	assignment := Assignment{ProjectID: projectID, UserID: userID, Role: parsed}
	if err := s.repo.UpsertAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("assign role: %w", err)
	}
	return &assignment, nil
}

// RemoveMember revokes the user's assignment.
func (s *Service) RemoveMember(ctx context.Context, actor authz.Actor, projectID uuid.UUID, userID int64) error {
	if !actor.IsOrgLevelAdmin() && !authz.CanRemoveMember(actor.EffectiveRole) {
		return fmt.Errorf("remove member: %w", shared.ErrForbidden)
	}
	return s.repo.RemoveAssignment(ctx, projectID, userID)
}

// Assignment implements the assignment provider used in role
// resolution. No assignment resolves to nil, which the chain reads as
// viewer.
func (s *Service) Assignment(ctx context.Context, projectID uuid.UUID, userID int64) (*authz.ProjectAssignment, error) {
	assignment, err := s.repo.GetAssignment(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &authz.ProjectAssignment{Role: assignment.Role}, nil
}
