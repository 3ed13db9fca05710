package authz

import "github.com/google/uuid"

// Identity is the session-provider view of a user: who they are plus
// the one capability that is global rather than project-scoped.
type Identity struct {
	UserID           int64
	IsSystemAdmin    bool
	LinkedResourceID uuid.UUID // zero when the user has no resource record
}

// OrgMembership carries the organisation-level flags for the active
// organisation, supplied by the org membership provider.
type OrgMembership struct {
	IsOrgAdmin bool
}

// ProjectAssignment is the project role store's answer for
// (user, project). Role is the raw stored value; unknown strings
// degrade to viewer during resolution.
type ProjectAssignment struct {
	Role Role
}

// Impersonation describes an active impersonation override. Authorized
// reflects the separate "may impersonate" capability; an unauthorized
// override is ignored entirely.
type Impersonation struct {
	Active     bool
	Role       Role
	Authorized bool
}

// Actor is the resolved (user, role) pair a single permission
// evaluation runs against. It is request-scoped and never persisted or
// cached across requests.
type Actor struct {
	UserID           int64
	ActualRole       Role
	EffectiveRole    Role
	IsImpersonating  bool
	IsSystemAdmin    bool
	IsOrgAdmin       bool
	LinkedResourceID uuid.UUID
}

// ResolveActor computes the actor for a project from the upstream
// contexts. Every input is optional: a nil pointer means the provider
// had nothing, and the chain degrades towards viewer, never towards
// admin.
//
// Resolution order for the actual role, first match wins:
//  1. system admin flag
//  2. org admin flag for the active organisation
//  3. project-scoped role assignment
//  4. viewer
//
// Impersonation substitutes only the effective role. The user id, and
// with it ownership and any audit attribution done by callers, always
// stays the real user's.
func ResolveActor(identity *Identity, org *OrgMembership, assignment *ProjectAssignment, imp *Impersonation) Actor {
	actor := Actor{ActualRole: RoleViewer, EffectiveRole: RoleViewer}

	if identity != nil {
		actor.UserID = identity.UserID
		actor.IsSystemAdmin = identity.IsSystemAdmin
		actor.LinkedResourceID = identity.LinkedResourceID
	}
	if org != nil {
		actor.IsOrgAdmin = org.IsOrgAdmin
	}

	switch {
	case actor.IsSystemAdmin:
		actor.ActualRole = RoleAdmin
	case actor.IsOrgAdmin:
		actor.ActualRole = RoleAdmin
	case assignment != nil:
		if role, ok := ParseRole(string(assignment.Role)); ok {
			actor.ActualRole = role
		}
	}

	actor.EffectiveRole = actor.ActualRole
	if imp != nil && imp.Active && imp.Authorized {
		if role, ok := ParseRole(string(imp.Role)); ok {
			actor.EffectiveRole = role
			actor.IsImpersonating = true
		}
	}
	return actor
}

// IsOrgLevelAdmin reports administrative authority granted above the
// project: the system admin flag or org admin membership. Deliberately
// distinct from IsElevatedProjectRole, which is a project-level
// standing; the two must not be merged.
func (a Actor) IsOrgLevelAdmin() bool {
	return a.IsSystemAdmin || a.IsOrgAdmin
}

// IsElevatedProjectRole reports whether the effective role may act on
// project records it does not own.
func (a Actor) IsElevatedProjectRole() bool {
	return a.EffectiveRole.IsElevated()
}

// Owns reports whether the real user created the record. Impersonation
// never transfers ownership.
func (a Actor) Owns(createdBy int64) bool {
	return a.UserID != 0 && a.UserID == createdBy
}
