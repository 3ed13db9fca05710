package identity

import (
	"net/http"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/shared"
)

// DenialHook, when set, observes matrix permission denials. Set once
// during wiring, before the router serves traffic.
var DenialHook func(entity, action string)

// RequireUser rejects requests without a signed-in user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shared.ActorFromContext(r.Context()).UserID == 0 {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Require gates a route on a matrix permission evaluated against the
// request actor's effective role.
func Require(entity authz.Entity, action authz.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := shared.ActorFromContext(r.Context())
			if actor.UserID == 0 {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			if !authz.HasPermission(actor.EffectiveRole, entity, action) {
				if DenialHook != nil {
					DenialHook(string(entity), string(action))
				}
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireFeature gates a route on a project workflow feature flag. The
// settings loader is injected so the flag reflects the request's
// active project.
func RequireFeature(load func(r *http.Request) *authz.Settings, feature authz.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authz.IsFeatureEnabled(load(r), feature) {
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
