package orgs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

type memberKey struct {
	org  uuid.UUID
	user int64
}

type mockRepository struct {
	members map[memberKey]*Member
}

func newMockRepository() *mockRepository {
	return &mockRepository{members: make(map[memberKey]*Member)}
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (*Org, error) {
	return &Org{ID: id, Name: "Acme"}, nil
}

func (m *mockRepository) ListForUser(ctx context.Context, userID int64) ([]Org, error) {
	return nil, nil
}

func (m *mockRepository) GetMember(ctx context.Context, orgID uuid.UUID, userID int64) (*Member, error) {
	member, ok := m.members[memberKey{orgID, userID}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return member, nil
}

func (m *mockRepository) UpsertMember(ctx context.Context, member Member) error {
	m.members[memberKey{member.OrgID, member.UserID}] = &member
	return nil
}

func (m *mockRepository) RemoveMember(ctx context.Context, orgID uuid.UUID, userID int64) error {
	key := memberKey{orgID, userID}
	if _, ok := m.members[key]; !ok {
		return shared.ErrNotFound
	}
	delete(m.members, key)
	return nil
}

func orgAdminActor(userID int64) authz.Actor {
	return authz.ResolveActor(&authz.Identity{UserID: userID}, &authz.OrgMembership{IsOrgAdmin: true}, nil, nil)
}

func TestMembershipResolution(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	orgID := uuid.New()
	repo.members[memberKey{orgID, 7}] = &Member{OrgID: orgID, UserID: 7, IsOrgAdmin: true}
	repo.members[memberKey{orgID, 8}] = &Member{OrgID: orgID, UserID: 8}

	membership, err := svc.Membership(context.Background(), orgID, 7)
	require.NoError(t, err)
	require.NotNil(t, membership)
	assert.True(t, membership.IsOrgAdmin)

	membership, err = svc.Membership(context.Background(), orgID, 8)
	require.NoError(t, err)
	require.NotNil(t, membership)
	assert.False(t, membership.IsOrgAdmin)

	// Outsiders resolve to no membership, not an error.
	membership, err = svc.Membership(context.Background(), orgID, 99)
	require.NoError(t, err)
	assert.Nil(t, membership)
}

func TestOnlyOrgAdminsManageMembers(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	orgID := uuid.New()

	member := Member{OrgID: orgID, UserID: 8}
	plain := authz.ResolveActor(&authz.Identity{UserID: 10}, &authz.OrgMembership{}, &authz.ProjectAssignment{Role: authz.RoleSupplierPM}, nil)
	err := svc.SetMember(context.Background(), plain, member)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	require.NoError(t, svc.SetMember(context.Background(), orgAdminActor(7), member))
	assert.Len(t, repo.members, 1)

	err = svc.RemoveMember(context.Background(), plain, orgID, 8)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	require.NoError(t, svc.RemoveMember(context.Background(), orgAdminActor(7), orgID, 8))
	assert.Empty(t, repo.members)
}
