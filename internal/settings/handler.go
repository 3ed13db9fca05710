package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tracklane/tracklane/internal/authz"
	"github.com/tracklane/tracklane/internal/identity"
	"github.com/tracklane/tracklane/internal/platform/httpx"
)

// governedEntities are the entity types the settings screen exposes
// approval authority for.
var governedEntities = []authz.Entity{
	authz.EntityTimesheet,
	authz.EntityExpense,
	authz.EntityDeliverable,
}

// governedFeatures are the per-project feature toggles.
var governedFeatures = []authz.Feature{
	authz.FeatureTimesheets,
	authz.FeatureExpenses,
	authz.FeatureDeliverables,
	authz.FeatureRaid,
	authz.FeatureVariations,
	authz.FeatureCertificates,
	authz.FeatureInvoicing,
}

// Handler serves the project workflow settings endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers settings routes under a project.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntitySettings, authz.ActionView))
		r.Get("/projects/{projectID}/settings", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(identity.Require(authz.EntitySettings, authz.ActionManage))
		r.Put("/projects/{projectID}/settings", h.Update)
	})
}

// Show returns the stored configuration with resolved defaults filled
// in, so the screen shows what the engine will actually enforce.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Project", "project id must be a UUID")
		return
	}

	settings := h.service.Get(r.Context(), projectID)

	resp := SettingsResponse{
		Features:  make(map[string]bool, len(governedFeatures)),
		Approvals: make(map[string]AuthorityView, len(governedEntities)),
	}
	for _, feature := range governedFeatures {
		resp.Features[string(feature)] = authz.IsFeatureEnabled(settings, feature)
	}
	for _, entity := range governedEntities {
		resp.Approvals[string(entity)] = AuthorityView{
			Mode:                  string(authz.ApprovalAuthorityFor(settings, entity)),
			RequiresDualSignature: authz.RequiresDualSignature(settings, entity),
		}
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Update replaces the project's workflow configuration.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Project", "project id must be a UUID")
		return
	}

	var req UpdateSettingsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	settings := &authz.Settings{
		Features:  make(map[authz.Feature]bool, len(req.Features)),
		Approvals: make(map[authz.Entity]authz.AuthorityMode, len(req.Approvals)),
	}
	for feature, enabled := range req.Features {
		settings.Features[authz.Feature(feature)] = enabled
	}
	for entity, mode := range req.Approvals {
		settings.Approvals[authz.Entity(entity)] = authz.AuthorityMode(mode)
	}

	if err := h.service.Update(r.Context(), projectID, settings); err != nil {
		h.logger.Error("update project settings", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Update Failed", err.Error())
		return
	}
	h.Show(w, r)
}
