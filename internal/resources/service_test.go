package resources

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

type mockRepository struct {
	resources map[uuid.UUID]*Resource
}

func newMockRepository() *mockRepository {
	return &mockRepository{resources: make(map[uuid.UUID]*Resource)}
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (*Resource, error) {
	res, ok := m.resources[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *res
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context, req ListResourcesRequest) ([]Resource, int, error) {
	var out []Resource
	for _, res := range m.resources {
		if res.ProjectID != req.ProjectID {
			continue
		}
		if req.ActiveOnly && !res.Active {
			continue
		}
		out = append(out, *res)
	}
	return out, len(out), nil
}

func (m *mockRepository) Create(ctx context.Context, res Resource) error {
	m.resources[res.ID] = &res
	return nil
}

func (m *mockRepository) Update(ctx context.Context, res Resource) error {
	if _, ok := m.resources[res.ID]; !ok {
		return ErrNotFound
	}
	m.resources[res.ID] = &res
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.resources[id]; !ok {
		return ErrNotFound
	}
	delete(m.resources, id)
	return nil
}

func testActor(userID int64, role authz.Role) authz.Actor {
	return authz.ResolveActor(&authz.Identity{UserID: userID}, nil, &authz.ProjectAssignment{Role: role}, nil)
}

func seedResource(repo *mockRepository, projectID uuid.UUID, userID int64) uuid.UUID {
	id := uuid.New()
	repo.resources[id] = &Resource{
		ID:           id,
		ProjectID:    projectID,
		Name:         "Senior Engineer",
		UserID:       userID,
		ResourceType: "permanent",
		SellPrice:    950,
		CostPrice:    600,
		Margin:       350,
		Active:       true,
	}
	return id
}

func TestFinancialFieldsRedactedByRole(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	projectID := uuid.New()
	id := seedResource(repo, projectID, 44)

	view, err := svc.Get(context.Background(), testActor(20, authz.RoleSupplierPM), id)
	require.NoError(t, err)
	require.NotNil(t, view.CostPrice)
	assert.Equal(t, 600.0, *view.CostPrice)
	require.NotNil(t, view.Margin)
	require.NotNil(t, view.ResourceType)

	// Sell price stays visible to everyone; the commercials do not.
	for _, role := range []authz.Role{authz.RoleCustomerPM, authz.RoleCustomerFinance, authz.RoleSupplierFinance, authz.RoleContributor, authz.RoleViewer} {
		view, err := svc.Get(context.Background(), testActor(10, role), id)
		require.NoError(t, err)
		assert.Equal(t, 950.0, view.SellPrice, role)
		assert.Nil(t, view.CostPrice, role)
		assert.Nil(t, view.Margin, role)
		assert.Nil(t, view.ResourceType, role)
	}
}

func TestOwnResourceDrivesDefaultSelection(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	projectID := uuid.New()
	seedResource(repo, projectID, 99)
	own := seedResource(repo, projectID, 10)

	_, defaultID, total, err := svc.List(context.Background(), testActor(10, authz.RoleContributor), ListResourcesRequest{ProjectID: projectID})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.NotNil(t, defaultID)
	assert.Equal(t, own, *defaultID)
}

func TestLinkedResourceMatchesById(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	projectID := uuid.New()
	id := seedResource(repo, projectID, 0)

	actor := authz.ResolveActor(
		&authz.Identity{UserID: 10, LinkedResourceID: id},
		nil,
		&authz.ProjectAssignment{Role: authz.RoleContributor},
		nil,
	)
	view, err := svc.Get(context.Background(), actor, id)
	require.NoError(t, err)
	assert.True(t, view.IsOwn)
	// Ownership never reveals the commercials.
	assert.Nil(t, view.CostPrice)
}

func TestOnlySupplierSideMutates(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	projectID := uuid.New()
	id := seedResource(repo, projectID, 10)

	price := 1000.0
	_, err := svc.Update(context.Background(), testActor(10, authz.RoleContributor), id, UpdateResourceRequest{SellPrice: &price})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	view, err := svc.Update(context.Background(), testActor(20, authz.RoleSupplierPM), id, UpdateResourceRequest{SellPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, view.SellPrice)
	require.NotNil(t, view.Margin)
	assert.Equal(t, 400.0, *view.Margin)

	err = svc.Delete(context.Background(), testActor(30, authz.RoleCustomerPM), id)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	err = svc.Delete(context.Background(), testActor(1, authz.RoleAdmin), id)
	require.NoError(t, err)
}

func TestCreateComputesMargin(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	view, err := svc.Create(context.Background(), testActor(20, authz.RoleSupplierPM), CreateResourceRequest{
		ProjectID:    uuid.New(),
		Name:         "Designer",
		ResourceType: "contract",
		SellPrice:    800,
		CostPrice:    550,
	})
	require.NoError(t, err)
	require.NotNil(t, view.Margin)
	assert.Equal(t, 250.0, *view.Margin)

	_, err = svc.Create(context.Background(), testActor(10, authz.RoleContributor), CreateResourceRequest{
		ProjectID: uuid.New(), Name: "x", ResourceType: "contract",
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}
