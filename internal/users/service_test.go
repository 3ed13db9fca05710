package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklane/tracklane/internal/shared"
)

type mockRepository struct {
	users map[int64]*User
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockRepository) SetSystemAdmin(ctx context.Context, id int64, isAdmin bool) error {
	u, ok := m.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.IsSystemAdmin = isAdmin
	return nil
}

func (m *mockRepository) LinkResource(ctx context.Context, id int64, resourceID *string) error {
	u, ok := m.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	if resourceID == nil {
		u.LinkedResourceID = nil
		return nil
	}
	parsed, err := uuid.Parse(*resourceID)
	if err != nil {
		return err
	}
	u.LinkedResourceID = &parsed
	return nil
}

func TestIdentityCarriesFlags(t *testing.T) {
	resourceID := uuid.New()
	repo := &mockRepository{users: map[int64]*User{
		7: {ID: 7, Email: "admin@example.com", IsActive: true, IsSystemAdmin: true, LinkedResourceID: &resourceID},
		8: {ID: 8, Email: "dev@example.com", IsActive: true},
	}}
	svc := NewService(repo)

	identity, err := svc.Identity(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, identity.IsSystemAdmin)
	assert.Equal(t, resourceID, identity.LinkedResourceID)

	identity, err = svc.Identity(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, identity.IsSystemAdmin)
	assert.Equal(t, uuid.Nil, identity.LinkedResourceID)

	identity, err = svc.Identity(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestLinkResource(t *testing.T) {
	repo := &mockRepository{users: map[int64]*User{8: {ID: 8}}}
	svc := NewService(repo)

	resourceID := uuid.New()
	require.NoError(t, svc.LinkResource(context.Background(), 8, &resourceID))
	user, err := svc.Get(context.Background(), 8)
	require.NoError(t, err)
	require.NotNil(t, user.LinkedResourceID)
	assert.Equal(t, resourceID, *user.LinkedResourceID)

	require.NoError(t, svc.LinkResource(context.Background(), 8, nil))
	user, err = svc.Get(context.Background(), 8)
	require.NoError(t, err)
	assert.Nil(t, user.LinkedResourceID)
}
