package raid

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
	items map[uuid.UUID]*Item
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: make(map[uuid.UUID]*Item)}
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	i, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *i
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	var out []Item
	for _, i := range m.items {
		if i.ProjectID != req.ProjectID {
			continue
		}
		if req.Category != nil && i.Category != *req.Category {
			continue
		}
		if req.OpenOnly && !i.Open {
			continue
		}
		out = append(out, *i)
	}
	return out, len(out), nil
}

func (m *mockRepository) Create(ctx context.Context, i Item) error {
	m.items[i.ID] = &i
	return nil
}

func (m *mockRepository) Update(ctx context.Context, i Item) error {
	if _, ok := m.items[i.ID]; !ok {
		return ErrNotFound
	}
	m.items[i.ID] = &i
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type mockSettings struct {
	settings *authz.Settings
}

func (m mockSettings) Get(ctx context.Context, projectID uuid.UUID) *authz.Settings {
	return m.settings
}

func testActor(userID int64, role authz.Role) authz.Actor {
	return authz.ResolveActor(&authz.Identity{UserID: userID}, nil, &authz.ProjectAssignment{Role: role}, nil)
}

func seedItem(repo *mockRepository, projectID uuid.UUID, owner int64) uuid.UUID {
	id := uuid.New()
	repo.items[id] = &Item{
		ID:          id,
		ProjectID:   projectID,
		Category:    CategoryRisk,
		Title:       "Key dependency slipping",
		Severity:    4,
		Open:        true,
		OwnerUserID: owner,
		CreatedBy:   owner,
	}
	return id
}

func TestCreateRaidItem(t *testing.T) {
	svc := NewService(newMockRepository(), mockSettings{})
	repo := svc.repo.(*mockRepository)
	projectID := uuid.New()

	item, err := svc.Create(context.Background(), testActor(30, authz.RoleCustomerPM), CreateItemRequest{
		ProjectID: projectID,
		Category:  CategoryIssue,
		Title:     "Environment access blocked",
		Severity:  3,
	})
	require.NoError(t, err)
	assert.True(t, item.Open)
	assert.Equal(t, int64(30), item.OwnerUserID)
	assert.Len(t, repo.items, 1)

	_, err = svc.Create(context.Background(), testActor(10, authz.RoleContributor), CreateItemRequest{
		ProjectID: projectID, Category: CategoryRisk, Title: "x", Severity: 1,
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestCreateRaidFeatureDisabled(t *testing.T) {
	svc := NewService(newMockRepository(), mockSettings{settings: &authz.Settings{
		Features: map[authz.Feature]bool{authz.FeatureRaid: false},
	}})
	_, err := svc.Create(context.Background(), testActor(30, authz.RoleCustomerPM), CreateItemRequest{
		ProjectID: uuid.New(), Category: CategoryRisk, Title: "x", Severity: 1,
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestCustomerManagerEditsAnyItem(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, mockSettings{})
	projectID := uuid.New()
	id := seedItem(repo, projectID, 20)

	title := "reworded"
	item, err := svc.Update(context.Background(), testActor(30, authz.RoleCustomerPM), id, UpdateItemRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "reworded", item.Title)

	_, err = svc.Update(context.Background(), testActor(10, authz.RoleContributor), id, UpdateItemRequest{Title: &title})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestDeleteStaysSupplierSide(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, mockSettings{})
	projectID := uuid.New()
	id := seedItem(repo, projectID, 30)

	// The customer PM owns this item yet still may not remove it.
	err := svc.Delete(context.Background(), testActor(30, authz.RoleCustomerPM), id)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	err = svc.Delete(context.Background(), testActor(20, authz.RoleSupplierPM), id)
	require.NoError(t, err)
	assert.Empty(t, repo.items)
}

func TestCloseAndReopenItem(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, mockSettings{})
	projectID := uuid.New()
	id := seedItem(repo, projectID, 20)

	open := false
	item, err := svc.Update(context.Background(), testActor(20, authz.RoleSupplierPM), id, UpdateItemRequest{Open: &open})
	require.NoError(t, err)
	assert.False(t, item.Open)
	assert.NotNil(t, item.ClosedAt)

	open = true
	item, err = svc.Update(context.Background(), testActor(20, authz.RoleSupplierPM), id, UpdateItemRequest{Open: &open})
	require.NoError(t, err)
	assert.True(t, item.Open)
	assert.Nil(t, item.ClosedAt)
}

func TestListViews(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, mockSettings{})
	projectID := uuid.New()
	seedItem(repo, projectID, 20)

	views, total, err := svc.List(context.Background(), testActor(30, authz.RoleCustomerPM), ListItemsRequest{ProjectID: projectID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, views, 1)
	assert.True(t, views[0].CanEdit)
	assert.False(t, views[0].CanDelete)
}
