package impersonation

import (
	"github.com/go-chi/chi/v5"

	"github.com/tracklane/tracklane/internal/identity"
)

// MountRoutes registers the impersonation endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.RequireUser)
		r.Get("/impersonation", h.Status)
		r.Post("/impersonation", h.Start)
		r.Delete("/impersonation", h.Stop)
	})
}
