package timesheets

import (
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

// Handler serves the timesheet endpoints.
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

	req := ListTimesheetsRequest{ProjectID: projectID}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := authz.TimesheetStatus(raw)
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
		h.respondError(w, "list timesheets", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"timesheets": views, "total": total})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.timesheetID(w, r)
	if !ok {
		return
	}
	timesheet, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get timesheet", err)
		return
	}
	actor := shared.ActorFromContext(r.Context())
	settings := h.settings.Get(r.Context(), timesheet.ProjectID)
	httpx.JSON(w, http.StatusOK, NewTimesheetView(actor, settings, *timesheet))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTimesheetRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	timesheet, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		h.respondError(w, "create timesheet", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, timesheet)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.timesheetID(w, r)
	if !ok {
		return
	}
	var req UpdateTimesheetRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	timesheet, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		h.respondError(w, "update timesheet", err)
		return
	}
	httpx.JSON(w, http.StatusOK, timesheet)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.timesheetID(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, "delete timesheet", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.timesheetID(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	timesheet, err := h.service.Submit(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, "submit timesheet", err)
		return
	}
	httpx.JSON(w, http.StatusOK, timesheet)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.timesheetID(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	timesheet, err := h.service.Approve(r.Context(), actor, id, "")
	if err != nil {
		h.respondError(w, "approve timesheet", err)
		return
	}
	httpx.JSON(w, http.StatusOK, timesheet)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.timesheetID(w, r)
	if !ok {
		return
	}
	var req RejectTimesheetRequest
	if !h.decode(w, r, &req) {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	timesheet, err := h.service.Reject(r.Context(), actor, id, req.Reason)
	if err != nil {
		h.respondError(w, "reject timesheet", err)
		return
	}
	httpx.JSON(w, http.StatusOK, timesheet)
}

func (h *Handler) timesheetID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Timesheet", "timesheet id must be a UUID")
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
		httpx.Problem(w, http.StatusNotFound, "Not Found", "timesheet not found")
	case errors.Is(err, shared.ErrForbidden):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "not permitted")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
