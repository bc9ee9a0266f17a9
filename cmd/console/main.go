// Package main is the entrypoint for the user console server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/penshort/userconsole/internal/api"
	"github.com/penshort/userconsole/internal/config"
	"github.com/penshort/userconsole/internal/console"
	"github.com/penshort/userconsole/internal/credentials"
	"github.com/penshort/userconsole/internal/handler"
	"github.com/penshort/userconsole/internal/metrics"
	"github.com/penshort/userconsole/internal/middleware"
	"github.com/penshort/userconsole/internal/server"
	"github.com/penshort/userconsole/internal/storage"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize browser storage
	backend, err := storage.Open(ctx, cfg.StorageBackend, cfg.RedisURL, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to open storage backend",
			slog.String("backend", cfg.StorageBackend),
			slog.String("error", sanitizeError(err, cfg.RedisURL, cfg.DatabaseURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("storage backend ready", slog.String("backend", cfg.StorageBackend))

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	client := api.New(cfg.APIBaseURL,
		api.WithMetrics(metricsRecorder),
		api.WithLogger(logger),
	)
	provider := credentials.NewProvider(backend, cfg.DurableTTL, cfg.SessionTTL)
	flows := console.New(logger, metricsRecorder, cfg.CreateRedirectDelay)

	// Initialize handlers
	pages, err := handler.NewPages()
	if err != nil {
		logger.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := setupRouter(routerDeps{
		console:     handler.NewConsoleHandler(flows, client, provider, pages, logger),
		health:      handler.NewHealthHandler(map[string]handler.HealthChecker{"storage": backend}),
		metrics:     handler.NewMetricsHandler(metricsRecorder),
		credentials: provider,
		recorder:    metricsRecorder,
		cfg:         cfg,
		logger:      logger,
	})

	// Create and run server
	srv := server.New(r, server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("storage", func(ctx context.Context) error {
		return backend.Close()
	})

	// Hooks run in reverse, so the sweeper stops before storage closes.
	if purger, ok := backend.(storage.Purger); ok {
		sweeper := storage.NewSweeper(purger, cfg.StorageSweepInterval, logger)
		go func() {
			if err := sweeper.Run(ctx); err != nil {
				logger.Error("storage sweeper error", "error", err)
			}
		}()
		srv.OnShutdown("storage-sweeper", sweeper.Shutdown)
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"api_base_url", redactURL(cfg.APIBaseURL),
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps groups what setupRouter wires together.
type routerDeps struct {
	console     *handler.ConsoleHandler
	health      *handler.HealthHandler
	metrics     *handler.MetricsHandler
	credentials *credentials.Provider
	recorder    metrics.Recorder
	cfg         *config.Config
	logger      *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger, d.cfg.IsDevelopment()))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: d.cfg.IsDevelopment()}))
	r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))

	// Operational endpoints (no browser scope, no auth)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/metrics", d.metrics.Metrics)
	r.Method(http.MethodGet, "/static/*", handler.Static())

	// Screens
	r.Group(func(r chi.Router) {
		r.Use(middleware.BrowserScopes(middleware.BrowserConfig{
			DurableTTL: d.cfg.DurableTTL,
			Secure:     !d.cfg.IsDevelopment(),
		}))

		r.Get(console.RouteLogin, d.console.LoginPage)
		r.Post(console.RouteLogin, d.console.Login)

		// Everything else requires a stored token
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireToken(middleware.GateConfig{
				Logger:      d.logger,
				Credentials: d.credentials,
				Metrics:     d.recorder,
				LoginPath:   console.RouteLogin,
			}))

			r.Get(console.RouteListing, d.console.Listing)
			r.Post("/logout", d.console.Logout)

			r.Get(console.RouteCreate, d.console.CreatePage)
			r.Post(console.RouteCreate, d.console.Create)

			r.Get("/edit-user/{id}", d.console.EditPage)
			r.Post("/edit-user/{id}", d.console.Edit)

			r.Get("/users/{id}/delete", d.console.ConfirmDelete)
			r.Post("/users/{id}/delete", d.console.Delete)
		})
	})

	// 404 and 405 handlers
	r.NotFound(d.console.NotFound)
	r.MethodNotAllowed(d.console.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
