package raid

import (
	"github.com/go-chi/chi/v5"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/identity"
)

// MountRoutes registers the RAID log endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityRaid, authz.ActionView))
		r.Get("/projects/{projectID}/raid", h.List)
		r.Get("/raid/{id}", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityRaid, authz.ActionAdd))
		r.Post("/raid", h.Create)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityRaid, authz.ActionEdit))
		r.Put("/raid/{id}", h.Update)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityRaid, authz.ActionDelete))
		r.Delete("/raid/{id}", h.Delete)
	})
}
