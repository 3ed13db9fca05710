package identity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

type stubIdentities struct {
	identity *authz.Identity
	err      error
}

func (s stubIdentities) Identity(ctx context.Context, userID int64) (*authz.Identity, error) {
	return s.identity, s.err
}

type stubMemberships struct {
	membership *authz.OrgMembership
	err        error
}

func (s stubMemberships) Membership(ctx context.Context, orgID uuid.UUID, userID int64) (*authz.OrgMembership, error) {
	return s.membership, s.err
}

type stubAssignments struct {
	assignment *authz.ProjectAssignment
	err        error
}

func (s stubAssignments) Assignment(ctx context.Context, projectID uuid.UUID, userID int64) (*authz.ProjectAssignment, error) {
	return s.assignment, s.err
}

func sessionContext(t *testing.T, configure func(*shared.Session)) context.Context {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	manager := shared.NewSessionManager(client, "tracklane_session", "secret", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := manager.Load(context.Background(), req)
	require.NoError(t, err)
	configure(sess)
	return shared.ContextWithSession(context.Background(), sess)
}

func TestResolveSignedInUser(t *testing.T) {
	projectID := uuid.New()
	ctx := sessionContext(t, func(sess *shared.Session) {
		sess.SetUser("7")
		sess.SetActiveProject(projectID)
	})

	resolver := Resolver{
		Identities:  stubIdentities{identity: &authz.Identity{UserID: 7}},
		Assignments: stubAssignments{assignment: &authz.ProjectAssignment{Role: authz.RoleCustomerPM}},
		Logger:      slog.Default(),
	}
	actor := resolver.Resolve(ctx)
	assert.Equal(t, int64(7), actor.UserID)
	assert.Equal(t, authz.RoleCustomerPM, actor.EffectiveRole)
}

func TestResolveProviderFailureDegradesToViewer(t *testing.T) {
	projectID := uuid.New()
	ctx := sessionContext(t, func(sess *shared.Session) {
		sess.SetUser("7")
		sess.SetActiveProject(projectID)
	})

	resolver := Resolver{
		Identities:  stubIdentities{err: errors.New("store down")},
		Assignments: stubAssignments{err: errors.New("store down")},
	}
	actor := resolver.Resolve(ctx)
	assert.Equal(t, authz.RoleViewer, actor.EffectiveRole)
	assert.False(t, actor.IsOrgLevelAdmin())
}

func TestResolveNoSession(t *testing.T) {
	resolver := Resolver{}
	actor := resolver.Resolve(context.Background())
	assert.Equal(t, int64(0), actor.UserID)
	assert.Equal(t, authz.RoleViewer, actor.EffectiveRole)
}

func TestResolveImpersonationRequiresOrgLevelAdmin(t *testing.T) {
	projectID := uuid.New()
	orgID := uuid.New()

	makeCtx := func() context.Context {
		return sessionContext(t, func(sess *shared.Session) {
			sess.SetUser("7")
			sess.SetActiveOrg(orgID)
			sess.SetActiveProject(projectID)
			sess.SetImpersonatedRole(string(authz.RoleContributor))
		})
	}

	// An org admin's override takes effect, identity stays theirs.
	admin := Resolver{
		Identities:  stubIdentities{identity: &authz.Identity{UserID: 7}},
		Memberships: stubMemberships{membership: &authz.OrgMembership{IsOrgAdmin: true}},
		Assignments: stubAssignments{},
	}
	actor := admin.Resolve(makeCtx())
	assert.Equal(t, int64(7), actor.UserID)
	assert.Equal(t, authz.RoleAdmin, actor.ActualRole)
	assert.Equal(t, authz.RoleContributor, actor.EffectiveRole)
	assert.True(t, actor.IsImpersonating)

	// A plain project member's override is ignored.
	member := Resolver{
		Identities:  stubIdentities{identity: &authz.Identity{UserID: 7}},
		Assignments: stubAssignments{assignment: &authz.ProjectAssignment{Role: authz.RoleSupplierPM}},
	}
	actor = member.Resolve(makeCtx())
	assert.Equal(t, authz.RoleSupplierPM, actor.EffectiveRole)
	assert.False(t, actor.IsImpersonating)
}

func TestRequireMiddleware(t *testing.T) {
	handler := Require(authz.EntityRaid, authz.ActionDelete)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(actor authz.Actor) int {
		req := httptest.NewRequest(http.MethodDelete, "/raid/1", nil)
		req = req.WithContext(shared.ContextWithActor(req.Context(), actor))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	supplierPM := authz.ResolveActor(&authz.Identity{UserID: 1}, nil, &authz.ProjectAssignment{Role: authz.RoleSupplierPM}, nil)
	customerPM := authz.ResolveActor(&authz.Identity{UserID: 2}, nil, &authz.ProjectAssignment{Role: authz.RoleCustomerPM}, nil)

	assert.Equal(t, http.StatusNoContent, serve(supplierPM))
	assert.Equal(t, http.StatusForbidden, serve(customerPM))
	assert.Equal(t, http.StatusUnauthorized, serve(authz.ResolveActor(nil, nil, nil, nil)))
}
