package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

// IdentityProvider yields the session user's identity flags.
type IdentityProvider interface {
	Identity(ctx context.Context, userID int64) (*authz.Identity, error)
}

// OrgMembershipProvider yields the user's membership flags for the
// active organisation.
type OrgMembershipProvider interface {
	Membership(ctx context.Context, orgID uuid.UUID, userID int64) (*authz.OrgMembership, error)
}

// AssignmentProvider yields the project-scoped role assignment for
// (user, project).
type AssignmentProvider interface {
	Assignment(ctx context.Context, projectID uuid.UUID, userID int64) (*authz.ProjectAssignment, error)
}

// Resolver builds the request actor from the session and the upstream
// stores, then runs the role resolution chain. Provider failures are
// logged and treated as absent context so the chain degrades to
// viewer; a broken store must never take the UI down or grant access.
type Resolver struct {
	Identities  IdentityProvider
	Memberships OrgMembershipProvider
	Assignments AssignmentProvider
	Logger      *slog.Logger
}

// Middleware resolves the actor for every request and stores it in the
// context. Requests without a signed-in user still pass through,
// carrying the zero actor.
func (rs Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		actor := rs.Resolve(ctx)
		next.ServeHTTP(w, r.WithContext(shared.ContextWithActor(ctx, actor)))
	})
}

// Resolve computes the actor for the current request context. The
// session supplies the user id, active org/project, and any
// impersonation override; the providers supply the rest.
func (rs Resolver) Resolve(ctx context.Context) authz.Actor {
	sess := shared.SessionFromContext(ctx)
	if sess == nil {
		return authz.ResolveActor(nil, nil, nil, nil)
	}
	userID, ok := parseUserID(sess.User())
	if !ok {
		return authz.ResolveActor(nil, nil, nil, nil)
	}

	identity := rs.identity(ctx, userID)
	membership := rs.membership(ctx, sess.ActiveOrg(), userID)
	assignment := rs.assignment(ctx, sess.ActiveProject(), userID)

	// Impersonation authority is decided against the real role, before
	// any substitution takes place.
	actual := authz.ResolveActor(identity, membership, assignment, nil)

	var imp *authz.Impersonation
	if role := sess.ImpersonatedRole(); role != "" {
		imp = &authz.Impersonation{
			Active:     true,
			Role:       authz.Role(role),
			Authorized: actual.IsOrgLevelAdmin(),
		}
	}
	return authz.ResolveActor(identity, membership, assignment, imp)
}

func (rs Resolver) identity(ctx context.Context, userID int64) *authz.Identity {
	if rs.Identities == nil {
		return nil
	}
	identity, err := rs.Identities.Identity(ctx, userID)
	if err != nil {
		rs.warn("resolve identity", err)
		return nil
	}
	return identity
}

func (rs Resolver) membership(ctx context.Context, orgID uuid.UUID, userID int64) *authz.OrgMembership {
	if rs.Memberships == nil || orgID == uuid.Nil {
		return nil
	}
	membership, err := rs.Memberships.Membership(ctx, orgID, userID)
	if err != nil {
		rs.warn("resolve org membership", err)
		return nil
	}
	return membership
}

func (rs Resolver) assignment(ctx context.Context, projectID uuid.UUID, userID int64) *authz.ProjectAssignment {
	if rs.Assignments == nil || projectID == uuid.Nil {
		return nil
	}
	assignment, err := rs.Assignments.Assignment(ctx, projectID, userID)
	if err != nil {
		rs.warn("resolve project assignment", err)
		return nil
	}
	return assignment
}

func (rs Resolver) warn(op string, err error) {
	if rs.Logger != nil {
		rs.Logger.Warn(op, slog.Any("error", err))
	}
}

func parseUserID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
