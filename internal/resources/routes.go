package resources

import (
	"github.com/go-chi/chi/v5"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/identity"
)

// MountRoutes registers the resource endpoints. Field-level redaction
// of the supplier commercials happens in the view, not here.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityResource, authz.ActionView))
		r.Get("/projects/{projectID}/resources", h.List)
		r.Get("/resources/{id}", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityResource, authz.ActionAdd))
		r.Post("/resources", h.Create)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityResource, authz.ActionEdit))
		r.Put("/resources/{id}", h.Update)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityResource, authz.ActionDelete))
		r.Delete("/resources/{id}", h.Delete)
	})
}
