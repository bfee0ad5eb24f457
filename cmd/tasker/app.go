package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	apiMiddleware "github.com/phrazzld/tasker-api/internal/api/middleware"
	"github.com/phrazzld/tasker-api/internal/config"
	"github.com/phrazzld/tasker-api/internal/metrics"
	"github.com/phrazzld/tasker-api/internal/platform/postgres"
	"github.com/phrazzld/tasker-api/internal/service"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// tokenSweepInterval is how often expired revocations are dropped.
const tokenSweepInterval = time.Minute

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	// Metrics
	registry  *prometheus.Registry
	collector *metrics.Collector

	// Authentication
	tokenStatuses *auth.MemoryTokenStatusStore
	gate          apiMiddleware.Authenticator
	rateLimiter   *apiMiddleware.RateLimiter

	// Services
	userService service.UserService
	taskService service.TaskService

	// location interprets the date filter on task listings
	location *time.Location
}

// newApplication creates a new application instance with all dependencies
// initialized. The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sqlx.DB) (*application, error) {
	loc, err := time.LoadLocation(cfg.Query.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load query timezone %q: %w", cfg.Query.Timezone, err)
	}

	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		location: loc,
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.collector = metrics.NewCollector(app.registry)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.tokenStatuses = auth.NewMemoryTokenStatusStore(tokenSweepInterval)
	gate := auth.NewGate(jwtService, app.tokenStatuses, app.collector, logger)
	app.gate = gate
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	userStore := postgres.NewPostgresUserStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	app.userService, err = service.NewUserService(service.UserServiceDeps{
		Users:    userStore,
		DB:       db,
		Hasher:   hasher,
		Verifier: hasher,
		Tokens:   jwtService,
		Revoker:  gate,
		Failures: app.collector,
		Logger:   logger,
	})
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(taskStore, db, app.collector, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.rateLimiter = apiMiddleware.NewRateLimiter(apiMiddleware.PerMinute(
		cfg.RateLimit.AuthRequestsPerMinute,
		cfg.RateLimit.AuthBurst,
	))

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns when ctx is cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.rateLimiter != nil {
		app.rateLimiter.Stop()
	}
	if app.tokenStatuses != nil {
		app.tokenStatuses.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
}
