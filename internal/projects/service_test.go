package projects

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

type assignmentKey struct {
	project uuid.UUID
	user    int64
}

type mockRepository struct {
	projects    map[uuid.UUID]*Project
	assignments map[assignmentKey]*Assignment
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		projects:    make(map[uuid.UUID]*Project),
		assignments: make(map[assignmentKey]*Assignment),
	}
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockRepository) ListForUser(ctx context.Context, orgID uuid.UUID, userID int64) ([]Project, error) {
	var out []Project
	for key, a := range m.assignments {
		if a.UserID != userID {
			continue
		}
		if p, ok := m.projects[key.project]; ok && p.OrgID == orgID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockRepository) Create(ctx context.Context, p Project) error {
	m.projects[p.ID] = &p
	return nil
}

func (m *mockRepository) Update(ctx context.Context, p Project) error {
	if _, ok := m.projects[p.ID]; !ok {
		return shared.ErrNotFound
	}
	m.projects[p.ID] = &p
	return nil
}

func (m *mockRepository) GetAssignment(ctx context.Context, projectID uuid.UUID, userID int64) (*Assignment, error) {
	a, ok := m.assignments[assignmentKey{projectID, userID}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

func (m *mockRepository) ListAssignments(ctx context.Context, projectID uuid.UUID) ([]Assignment, error) {
	var out []Assignment
	for key, a := range m.assignments {
		if key.project == projectID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockRepository) UpsertAssignment(ctx context.Context, a Assignment) error {
	m.assignments[assignmentKey{a.ProjectID, a.UserID}] = &a
	return nil
}

func (m *mockRepository) RemoveAssignment(ctx context.Context, projectID uuid.UUID, userID int64) error {
	key := assignmentKey{projectID, userID}
	if _, ok := m.assignments[key]; !ok {
		return shared.ErrNotFound
	}
	delete(m.assignments, key)
	return nil
}

func assignedActor(userID int64, role authz.Role) authz.Actor {
	return authz.ResolveActor(&authz.Identity{UserID: userID}, nil, &authz.ProjectAssignment{Role: role}, nil)
}

func orgAdminActor(userID int64) authz.Actor {
	return authz.ResolveActor(&authz.Identity{UserID: userID}, &authz.OrgMembership{IsOrgAdmin: true}, nil, nil)
}

func TestCreateAssignsCreatorAsSupplierPM(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	orgID := uuid.New()

	project, err := service.Create(context.Background(), orgAdminActor(1), orgID, "Platform Rebuild", "PLT-01")
	require.NoError(t, err)

	a, err := repo.GetAssignment(context.Background(), project.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleSupplierPM, a.Role)

	resolved, err := service.Assignment(context.Background(), project.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, authz.RoleSupplierPM, resolved.Role)
}

func TestCreateDeniedForContributor(t *testing.T) {
	service := NewService(newMockRepository())

	_, err := service.Create(context.Background(), assignedActor(2, authz.RoleContributor), uuid.New(), "Side Quest", "SQ-01")
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestAssignRoleRejectsUnknownRole(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	projectID := uuid.New()

	_, err := service.AssignRole(context.Background(), orgAdminActor(1), projectID, 7, "superuser")
	require.Error(t, err)
	assert.False(t, errors.Is(err, shared.ErrForbidden))
	assert.Empty(t, repo.assignments)
}

func TestAssignRoleReplacesExisting(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	projectID := uuid.New()

	_, err := service.AssignRole(context.Background(), orgAdminActor(1), projectID, 7, "contributor")
	require.NoError(t, err)
	_, err = service.AssignRole(context.Background(), orgAdminActor(1), projectID, 7, "customer_pm")
	require.NoError(t, err)

	a, err := repo.GetAssignment(context.Background(), projectID, 7)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleCustomerPM, a.Role)
}

func TestMembershipMutationsDeniedForNonAdmins(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	projectID := uuid.New()
	repo.assignments[assignmentKey{projectID, 7}] = &Assignment{ProjectID: projectID, UserID: 7, Role: authz.RoleContributor}

	actor := assignedActor(3, authz.RoleCustomerPM)

	_, err := service.AssignRole(context.Background(), actor, projectID, 7, "viewer")
	assert.ErrorIs(t, err, shared.ErrForbidden)

	err = service.RemoveMember(context.Background(), actor, projectID, 7)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestRemoveMemberDropsAssignment(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	projectID := uuid.New()
	repo.assignments[assignmentKey{projectID, 7}] = &Assignment{ProjectID: projectID, UserID: 7, Role: authz.RoleContributor}

	require.NoError(t, service.RemoveMember(context.Background(), orgAdminActor(1), projectID, 7))

	resolved, err := service.Assignment(context.Background(), projectID, 7)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestUpdateTogglesActive(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)

	project, err := service.Create(context.Background(), orgAdminActor(1), uuid.New(), "Platform Rebuild", "PLT-01")
	require.NoError(t, err)

	inactive := false
	updated, err := service.Update(context.Background(), orgAdminActor(1), project.ID, nil, nil, &inactive)
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, "Platform Rebuild", updated.Name)
}
