// Package server wires the note server-of-record: SQLite storage, HTTP API and event hub.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/zennotes/internal/config"
	"github.com/iudanet/zennotes/internal/logging"
	"github.com/iudanet/zennotes/internal/server/handlers"
	"github.com/iudanet/zennotes/internal/server/middleware"
	"github.com/iudanet/zennotes/internal/server/storage"
	"github.com/iudanet/zennotes/internal/server/storage/sqlite"
)

const (
	healthPath      = "/api/v1/health"
	shutdownTimeout = 10 * time.Second
)

type application struct {
	config   *config.ServerConfig
	logger   *slog.Logger
	listener net.Listener
	version  string
}

// Option configures Run
type Option func(*application)

// WithConfig sets the server configuration (required)
func WithConfig(cfg *config.ServerConfig) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithVersion sets the version reported by the health endpoint
func WithVersion(version string) Option {
	return func(a *application) {
		a.version = version
	}
}

// WithLogger overrides the logger built from the configuration
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithListener serves on an already bound listener instead of cfg.App.HTTP
func WithListener(ln net.Listener) Option {
	return func(a *application) {
		a.listener = ln
	}
}

// RouterDeps holds the collaborators of the HTTP API
type RouterDeps struct {
	Logger  *slog.Logger
	Notes   storage.NoteStorage
	DB      handlers.Pinger
	Hub     *handlers.EventHub
	Limiter *middleware.RateLimiter
	Token   string
	Version string
}

// NewRouter builds the chi router of the note API.
// Health check доступен без токена.
func NewRouter(deps RouterDeps) chi.Router {
	var publisher handlers.Publisher
	if deps.Hub != nil {
		publisher = deps.Hub
	}
	notes := handlers.NewNotesHandler(deps.Logger, deps.Notes, publisher)
	health := handlers.NewHealthHandler(deps.Logger, deps.DB, deps.Version)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RecoveryMiddleware(deps.Logger))
	r.Use(middleware.LoggingWithSkip(deps.Logger, []string{healthPath}))
	if deps.Limiter != nil {
		r.Use(deps.Limiter.Middleware())
	}

	r.Get(healthPath, health.Health)

	r.Route("/api/v1/notes", func(r chi.Router) {
		r.Use(middleware.BearerTokenMiddleware(deps.Logger, deps.Token))

		r.Get("/", notes.List)
		r.Post("/", notes.Create)
		if deps.Hub != nil {
			r.Get("/events", deps.Hub.ServeHTTP)
		}
		r.Get("/{id}", notes.Get)
		r.Patch("/{id}", notes.Update)
		r.Delete("/{id}", notes.Delete)
	})

	return r
}

// Run starts the server and blocks until ctx is cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{version: "dev"}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := app.logger
	if logger == nil {
		var closer io.Closer
		logger, closer = logging.New(cfg.App.Log, os.Stdout)
		defer func() {
			_ = closer.Close()
		}()
	}

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.Bool("auth_enabled", cfg.Auth.Enabled()),
		slog.String("log_level", cfg.App.Log.Level.String()))

	store, err := sqlite.New(ctx, cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	hub := handlers.NewEventHub(logger)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	defer limiter.Stop()

	router := NewRouter(RouterDeps{
		Logger:  logger,
		Notes:   store,
		DB:      store.DB(),
		Hub:     hub,
		Limiter: limiter,
		Token:   cfg.Auth.Token,
		Version: app.version,
	})

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	// Event hub закрывает websocket подписки при остановке
	g.Go(func() error {
		return hub.Run(gCtx)
	})

	// Start HTTP server.
	g.Go(func() error {
		var err error
		if app.listener != nil {
			logger.Info("Starting HTTP server", slog.String("address", app.listener.Addr().String()))
			err = httpServer.Serve(app.listener)
		} else {
			logger.Info("Starting HTTP server", slog.String("address", httpServer.Addr))
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown.
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.Any("error", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.Any("error", err))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
