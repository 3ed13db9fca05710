package deliverables

import (
	"github.com/go-chi/chi/v5"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/identity"
)

// MountRoutes registers the deliverable endpoints. Route-level gates
// check the matrix only; object-state guards, including the assessment
// gate on delivery, run in the service.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityDeliverable, authz.ActionView))
		r.Get("/projects/{projectID}/deliverables", h.List)
		r.Get("/deliverables/{id}", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityDeliverable, authz.ActionAdd))
		r.Post("/deliverables", h.Create)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityDeliverable, authz.ActionEdit))
		r.Put("/deliverables/{id}", h.Update)
		r.Post("/deliverables/{id}/start", h.Start)
		r.Post("/deliverables/{id}/criteria", h.LinkCriterion)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityDeliverable, authz.ActionDelete))
		r.Delete("/deliverables/{id}", h.Delete)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityDeliverable, authz.ActionSubmit))
		r.Post("/deliverables/{id}/submit", h.SubmitForReview)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityDeliverable, authz.ActionReview))
		r.Post("/deliverables/{id}/review/complete", h.CompleteReview)
		r.Post("/deliverables/{id}/review/return", h.Return)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntityDeliverable, authz.ActionDeliver))
		r.Post("/deliverables/{id}/deliver", h.MarkDelivered)
	})

	// Assessment verdicts carry their own per-kind permission check in
	// the service.
	r.Group(func(r chi.Router) {
		r.Use(identity.RequireUser)
		r.Post("/assessments/{assessmentID}", h.Assess)
	})
}
