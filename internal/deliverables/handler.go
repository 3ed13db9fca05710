package deliverables

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/platform/httpx"
	"github.com/tracklane/tracklane/internal/shared"
)

// Handler serves the deliverable endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	settings SettingsSource
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, settings SettingsSource) *Handler {
	return &Handler{logger: logger, service: service, settings: settings, validate: validator.New()}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Project", "project id must be a UUID")
		return
	}

	req := ListDeliverablesRequest{ProjectID: projectID}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := authz.DeliverableStatus(raw)
		req.Status = &status
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		req.Limit, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		req.Offset, _ = strconv.Atoi(raw)
	}

	actor := shared.ActorFromContext(r.Context())
	views, total, err := h.service.List(r.Context(), actor, req)
	if err != nil {
		h.respondError(w, "list deliverables", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deliverables": views, "total": total})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deliverableID(w, r)
	if !ok {
		return
	}
	deliverable, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get deliverable", err)
		return
	}
	actor := shared.ActorFromContext(r.Context())
	settings := h.settings.Get(r.Context(), deliverable.ProjectID)
	httpx.JSON(w, http.StatusOK, NewDeliverableView(actor, settings, *deliverable))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDeliverableRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	deliverable, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		h.respondError(w, "create deliverable", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, deliverable)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deliverableID(w, r)
	if !ok {
		return
	}
	var req UpdateDeliverableRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	deliverable, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		h.respondError(w, "update deliverable", err)
		return
	}
	httpx.JSON(w, http.StatusOK, deliverable)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deliverableID(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, "delete deliverable", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "start deliverable", h.service.Start)
}

func (h *Handler) SubmitForReview(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "submit deliverable", h.service.SubmitForReview)
}

func (h *Handler) CompleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deliverableID(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	deliverable, err := h.service.CompleteReview(r.Context(), actor, id, "")
	if err != nil {
		h.respondError(w, "complete review", err)
		return
	}
	httpx.JSON(w, http.StatusOK, deliverable)
}

func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deliverableID(w, r)
	if !ok {
		return
	}
	var req ReturnDeliverableRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	deliverable, err := h.service.Return(r.Context(), actor, id, req.Reason)
	if err != nil {
		h.respondError(w, "return deliverable", err)
		return
	}
	httpx.JSON(w, http.StatusOK, deliverable)
}

func (h *Handler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "mark delivered", h.service.MarkDelivered)
}

func (h *Handler) LinkCriterion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deliverableID(w, r)
	if !ok {
		return
	}
	var req LinkCriterionRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	assessment, err := h.service.LinkCriterion(r.Context(), actor, id, req)
	if err != nil {
		h.respondError(w, "link criterion", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, assessment)
}

func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	assessmentID, err := uuid.Parse(chi.URLParam(r, "assessmentID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Assessment", "assessment id must be a UUID")
		return
	}
	var req AssessCriterionRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	assessment, err := h.service.Assess(r.Context(), actor, assessmentID, req)
	if err != nil {
		h.respondError(w, "assess criterion", err)
		return
	}
	httpx.JSON(w, http.StatusOK, assessment)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, actor authz.Actor, id uuid.UUID) (*Deliverable, error)) {
	id, ok := h.deliverableID(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	deliverable, err := fn(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, op, err)
		return
	}
	httpx.JSON(w, http.StatusOK, deliverable)
}

func (h *Handler) deliverableID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Deliverable", "deliverable id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return false
	}
	if err := h.validate.Struct(target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "deliverable not found")
	case errors.Is(err, shared.ErrForbidden):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "not permitted")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
