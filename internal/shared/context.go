package shared

import (
	"context"

	"github.com/tracklane/tracklane/internal/authz"
)

type sessionContextKey struct{}
type actorContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// ContextWithActor stores the resolved actor for the request.
func ContextWithActor(ctx context.Context, actor authz.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the resolved actor. When no resolution ran
// the zero Actor comes back: no user and the viewer role, so every
// downstream check fails closed.
func ActorFromContext(ctx context.Context) authz.Actor {
	if actor, ok := ctx.Value(actorContextKey{}).(authz.Actor); ok {
		return actor
	}
	return authz.ResolveActor(nil, nil, nil, nil)
}
