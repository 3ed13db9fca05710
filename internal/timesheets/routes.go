package timesheets

import (
	"github.com/go-chi/chi/v5"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/identity"
)

// MountRoutes registers the timesheet endpoints. Route-level gates
// check the matrix only; object-state guards run in the service.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityTimesheet, authz.ActionView))
		r.Get("/projects/{projectID}/timesheets", h.List)
		r.Get("/timesheets/{id}", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityTimesheet, authz.ActionAdd))
		r.Post("/timesheets", h.Create)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityTimesheet, authz.ActionEdit))
		r.Put("/timesheets/{id}", h.Update)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityTimesheet, authz.ActionDelete))
		r.Delete("/timesheets/{id}", h.Delete)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityTimesheet, authz.ActionSubmit))
		r.Post("/timesheets/{id}/submit", h.Submit)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityTimesheet, authz.ActionValidate))
		r.Post("/timesheets/{id}/approve", h.Approve)
		r.Post("/timesheets/{id}/reject", h.Reject)
	})
}
