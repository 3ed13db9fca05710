package projects

import (
	"github.com/go-chi/chi/v5"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/identity"
)

// MountRoutes registers the project and membership endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.RequireUser)
		r.Get("/projects", h.List)
		r.Post("/projects", h.Create)
		r.Post("/projects/{id}/select", h.Select)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityProject, authz.ActionView))
		r.Get("/projects/{id}", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.RequireUser)
		r.Put("/projects/{id}", h.Update)
		r.Get("/projects/{id}/members", h.Members)
		r.Post("/projects/{id}/members", h.AssignRole)
		r.Delete("/projects/{id}/members/{userID}", h.RemoveMember)
	})
}
