package orgs

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/identity"
	"github.com/tracklane/tracklane/internal/platform/httpx"
	"github.com/tracklane/tracklane/internal/shared"
)

// Handler serves the organisation endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers the organisation endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.RequireUser)
		r.Get("/orgs", h.List)
		r.Get("/orgs/{id}", h.Show)
		r.Post("/orgs/{id}/select", h.Select)
		r.Put("/orgs/{id}/members", h.SetMember)
		r.Delete("/orgs/{id}/members/{userID}", h.RemoveMember)
	})
}

type setMemberRequest struct {
	UserID     int64 `json:"user_id" validate:"required"`
	IsOrgAdmin bool  `json:"is_org_admin"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	orgs, err := h.service.ListForUser(r.Context(), actor.UserID)
	if err != nil {
		h.respondError(w, "list orgs", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orgs": orgs})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orgID(w, r)
	if !ok {
		return
	}
	org, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get org", err)
		return
	}
	httpx.JSON(w, http.StatusOK, org)
}

// Select makes the organisation the session's active one. Org admin
// resolution on later requests runs against this org.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orgID(w, r)
	if !ok {
		return
	}
	if _, err := h.service.Get(r.Context(), id); err != nil {
		h.respondError(w, "select org", err)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	sess.SetActiveOrg(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orgID(w, r)
	if !ok {
		return
	}
	var req setMemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	actor := shared.ActorFromContext(r.Context())
	member := Member{OrgID: id, UserID: req.UserID, IsOrgAdmin: req.IsOrgAdmin}
	if err := h.service.SetMember(r.Context(), actor, member); err != nil {
		h.respondError(w, "set org member", err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orgID(w, r)
	if !ok {
		return
	}
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid User", "user id must be numeric")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	if err := h.service.RemoveMember(r.Context(), actor, id, userID); err != nil {
		h.respondError(w, "remove org member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) orgID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Org", "org id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "organisation not found")
	case errors.Is(err, shared.ErrForbidden):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "not permitted")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
