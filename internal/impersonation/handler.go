package impersonation

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/platform/httpx"
	"github.com/tracklane/tracklane/internal/shared"
)

// Handler serves the role impersonation endpoints. Impersonation is a
// session override on the effective role only; the real user id keeps
// flowing into ownership checks and audit records.
type Handler struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger, validate: validator.New()}
}

type startRequest struct {
	Role string `json:"role" validate:"required"`
}

type statusResponse struct {
	Active        bool   `json:"active"`
	Role          string `json:"role,omitempty"`
	ActualRole    string `json:"actual_role"`
	EffectiveRole string `json:"effective_role"`
}

// Start begins impersonating the given role. Only org-level admins may
// impersonate, judged on their real authority so an active
// impersonation cannot lock them in.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	if !actor.IsOrgLevelAdmin() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "impersonation requires org-level admin")
		return
	}

	var req startRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	role, ok := authz.ParseRole(req.Role)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Role", "unknown role "+req.Role)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	sess.SetImpersonatedRole(string(role))
	h.logger.Info("impersonation started",
		slog.Int64("user_id", actor.UserID),
		slog.String("role", string(role)))

	httpx.JSON(w, http.StatusOK, statusResponse{
		Active:        true,
		Role:          string(role),
		ActualRole:    string(actor.ActualRole),
		EffectiveRole: string(role),
	})
}

// Stop ends impersonation. Ending is always allowed for the session
// owner, even if their admin flags were revoked mid-session.
func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	sess.ClearImpersonatedRole()
	h.logger.Info("impersonation stopped", slog.Int64("user_id", actor.UserID))
	w.WriteHeader(http.StatusNoContent)
}

// Status reports whether the session is impersonating and as what.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	httpx.JSON(w, http.StatusOK, statusResponse{
		Active:        actor.IsImpersonating,
		Role:          sess.ImpersonatedRole(),
		ActualRole:    string(actor.ActualRole),
		EffectiveRole: string(actor.EffectiveRole),
	})
}
