package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tracklane/tracklane/internal/approvals"
	"github.com/tracklane/tracklane/internal/auth"
	"github.com/tracklane/tracklane/internal/deliverables"
	"github.com/tracklane/tracklane/internal/expenses"
	"github.com/tracklane/tracklane/internal/identity"
	"github.com/tracklane/tracklane/internal/impersonation"
	"github.com/tracklane/tracklane/internal/observability"
	"github.com/tracklane/tracklane/internal/orgs"
	"github.com/tracklane/tracklane/internal/platform/httpx"
	"github.com/tracklane/tracklane/internal/projects"
	"github.com/tracklane/tracklane/internal/raid"
	"github.com/tracklane/tracklane/internal/resources"
	"github.com/tracklane/tracklane/internal/settings"
	"github.com/tracklane/tracklane/internal/shared"
	"github.com/tracklane/tracklane/internal/timesheets"
	"github.com/tracklane/tracklane/internal/users"
	"github.com/tracklane/tracklane/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Resolver       identity.Resolver

	AuthHandler          *auth.Handler
	UsersHandler         *users.Handler
	OrgsHandler          *orgs.Handler
	ProjectsHandler      *projects.Handler
	SettingsHandler      *settings.Handler
	ExpensesHandler      *expenses.Handler
	TimesheetsHandler    *timesheets.Handler
	DeliverablesHandler  *deliverables.Handler
	RaidHandler          *raid.Handler
	ResourcesHandler     *resources.Handler
	ApprovalsHandler     *approvals.Handler
	ImpersonationHandler *impersonation.Handler
	JobHandler           *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router for the API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	if params.Metrics != nil {
		identity.DenialHook = params.Metrics.RecordDenial
	}

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Resolver:       params.Resolver,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Clients fetch a token here before their first mutating request.
	r.Get("/auth/csrf", func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		token, err := params.CSRFManager.EnsureToken(r.Context(), sess)
		if err != nil {
			params.Logger.Error("issue csrf token", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"token": token})
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/api", func(r chi.Router) {
		params.UsersHandler.MountRoutes(r)
		params.OrgsHandler.MountRoutes(r)
		params.ProjectsHandler.MountRoutes(r)
		params.SettingsHandler.MountRoutes(r)
		params.ExpensesHandler.MountRoutes(r)
		params.TimesheetsHandler.MountRoutes(r)
		params.DeliverablesHandler.MountRoutes(r)
		params.RaidHandler.MountRoutes(r)
		params.ResourcesHandler.MountRoutes(r)
		params.ApprovalsHandler.MountRoutes(r)
		params.ImpersonationHandler.MountRoutes(r)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
