package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/tracklane/tracklane/internal/app"
	"github.com/tracklane/tracklane/internal/approvals"
	"github.com/tracklane/tracklane/internal/auth"
	"github.com/tracklane/tracklane/internal/deliverables"
	"github.com/tracklane/tracklane/internal/expenses"
	"github.com/tracklane/tracklane/internal/identity"
	"github.com/tracklane/tracklane/internal/impersonation"
	"github.com/tracklane/tracklane/internal/observability"
	"github.com/tracklane/tracklane/internal/orgs"
	"github.com/tracklane/tracklane/internal/platform/cache"
	"github.com/tracklane/tracklane/internal/platform/db"
	"github.com/tracklane/tracklane/internal/projects"
	"github.com/tracklane/tracklane/internal/raid"
	"github.com/tracklane/tracklane/internal/resources"
	"github.com/tracklane/tracklane/internal/settings"
	"github.com/tracklane/tracklane/internal/shared"
	"github.com/tracklane/tracklane/internal/timesheets"
	"github.com/tracklane/tracklane/internal/users"
	"github.com/tracklane/tracklane/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "tracklane_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	metrics := observability.NewMetrics()

	usersService := users.NewService(users.NewRepository(dbpool))
	orgsService := orgs.NewService(orgs.NewRepository(dbpool))
	projectsService := projects.NewService(projects.NewRepository(dbpool))

	resolver := identity.Resolver{
		Identities:  usersService,
		Memberships: orgsService,
		Assignments: projectsService,
		Logger:      logger,
	}

	settingsCache := settings.NewCache(redisClient, cfg.SettingsCacheTTL)
	settingsService := settings.NewService(settings.NewRepository(dbpool), settingsCache, logger)

	recorder := approvals.NewRecorder(dbpool, logger)

	expensesService := expenses.NewService(expenses.NewRepository(dbpool), settingsService, recorder)
	timesheetsService := timesheets.NewService(timesheets.NewRepository(dbpool), settingsService, recorder)
	deliverablesService := deliverables.NewService(deliverables.NewRepository(dbpool), settingsService, recorder)
	raidService := raid.NewService(raid.NewRepository(dbpool), settingsService)
	resourcesService := resources.NewService(resources.NewRepository(dbpool))

	authService := auth.NewService(auth.NewRepository(dbpool))

	inbox := approvals.Inbox{
		Expenses:     expensesService,
		Timesheets:   timesheetsService,
		Deliverables: deliverablesService,
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		Resolver:       resolver,

		AuthHandler:          auth.NewHandler(logger, authService, sessionManager),
		UsersHandler:         users.NewHandler(logger, usersService),
		OrgsHandler:          orgs.NewHandler(logger, orgsService),
		ProjectsHandler:      projects.NewHandler(logger, projectsService),
		SettingsHandler:      settings.NewHandler(logger, settingsService),
		ExpensesHandler:      expenses.NewHandler(logger, expensesService, settingsService),
		TimesheetsHandler:    timesheets.NewHandler(logger, timesheetsService, settingsService),
		DeliverablesHandler:  deliverables.NewHandler(logger, deliverablesService, settingsService),
		RaidHandler:          raid.NewHandler(logger, raidService),
		ResourcesHandler:     resources.NewHandler(logger, resourcesService),
		ApprovalsHandler:     approvals.NewHandler(logger, inbox, settingsService, recorder),
		ImpersonationHandler: impersonation.NewHandler(logger),
		JobHandler:           jobs.NewHandler(inspector, logger),

		Metrics: metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
