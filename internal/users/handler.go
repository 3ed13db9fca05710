package users

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/identity"
	"github.com/tracklane/tracklane/internal/platform/httpx"
	"github.com/tracklane/tracklane/internal/shared"
)

// Handler serves the user administration endpoints. Mutations are
// system-admin only; the system admin flag and resource links feed
// directly into role resolution.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the user endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.RequireUser)
		r.Get("/users", h.List)
		r.Get("/users/{id}", h.Show)
		r.Put("/users/{id}/system-admin", h.SetSystemAdmin)
		r.Put("/users/{id}/resource", h.LinkResource)
	})
}

type systemAdminRequest struct {
	IsSystemAdmin bool `json:"is_system_admin"`
}

type linkResourceRequest struct {
	ResourceID *uuid.UUID `json:"resource_id"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	if !actor.IsOrgLevelAdmin() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "not permitted")
		return
	}
	users, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "list users", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	if !actor.IsOrgLevelAdmin() && actor.UserID != id {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "not permitted")
		return
	}
	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get user", err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) SetSystemAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	if !actor.IsSystemAdmin {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "system admin only")
		return
	}
	var req systemAdminRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.service.SetSystemAdmin(r.Context(), id, req.IsSystemAdmin); err != nil {
		h.respondError(w, "set system admin", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) LinkResource(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	actor := shared.ActorFromContext(r.Context())
	if !actor.IsOrgLevelAdmin() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "not permitted")
		return
	}
	var req linkResourceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.service.LinkResource(r.Context(), id, req.ResourceID); err != nil {
		h.respondError(w, "link resource", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid User", "user id must be numeric")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "user not found")
	case errors.Is(err, shared.ErrForbidden):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "not permitted")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
