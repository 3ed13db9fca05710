package expenses

import (
	"github.com/go-chi/chi/v5"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/identity"
)

// MountRoutes registers the expense endpoints. Route-level gates check
// the matrix only; the object-state guards run inside the service
// where the record is at hand.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityExpense, authz.ActionView))
		r.Get("/projects/{projectID}/expenses", h.List)
		r.Get("/expenses/{id}", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityExpense, authz.ActionAdd))
		r.Post("/expenses", h.Create)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityExpense, authz.ActionEdit))
		r.Put("/expenses/{id}", h.Update)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityExpense, authz.ActionDelete))
		r.Delete("/expenses/{id}", h.Delete)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityExpense, authz.ActionSubmit))
		r.Post("/expenses/{id}/submit", h.Submit)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityExpense, authz.ActionValidate))
		r.Post("/expenses/{id}/approve", h.Approve)
		r.Post("/expenses/{id}/reject", h.Reject)
	})
}
