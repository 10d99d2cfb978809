// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/doxnav/internal/api"
	"github.com/starford/doxnav/internal/docsite"
	"github.com/starford/doxnav/internal/index"
	"github.com/starford/doxnav/internal/sse"
	"github.com/starford/doxnav/internal/storage"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.logOutput == nil {
		app.logOutput = os.Stdout
	}
	if app.output == nil {
		app.output = os.Stdout
	}
	return app, nil
}

// newLogger builds the structured JSON logger and installs it as default.
func (a *application) newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// openSite loads the navigation tree from the configured docs directory.
func (a *application) openSite(ctx context.Context, logger *slog.Logger) (*docsite.Site, error) {
	cfg := a.config.Docs
	store, err := storage.NewFS(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	site, err := docsite.Open(ctx, store, docsite.Options{
		TreeFile:    cfg.TreeFile,
		TreeVar:     cfg.TreeVar,
		IndexVar:    cfg.IndexVar,
		EvalTimeout: cfg.EvalTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("load navigation: %w", err)
	}
	return site, nil
}

// openIndex opens the SQLite entry index and brings it up to date with site.
// A failed sync is logged; search then serves the previous entries.
func (a *application) openIndex(ctx context.Context, site *docsite.Site, logger *slog.Logger) (*index.DB, error) {
	db, err := index.Open(a.config.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}
	if err := index.Sync(ctx, db, site, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}
	return db, nil
}

func writeStatus(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// readyHandler reports ready once the entry index matches the live snapshot.
func readyHandler(site *docsite.Site, db index.EntryIndex) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		rev, err := db.Revision()
		if err != nil || rev != site.Current().Revision {
			writeStatus(w, http.StatusServiceUnavailable, `{"status":"syncing"}`)
			return
		}
		writeStatus(w, http.StatusOK, `{"status":"ok"}`)
	}
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.newLogger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("docs_path", cfg.Docs.Path),
		slog.String("tree_file", cfg.Docs.TreeFile),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.Bool("watch", cfg.Docs.Watch),
		slog.String("log_level", cfg.App.LogLevel.String()))

	site, err := app.openSite(ctx, logger)
	if err != nil {
		return err
	}
	db, err := app.openIndex(ctx, site, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	broker := sse.NewBroker(cfg.Events.Throttle)
	defer broker.Close()

	apiRouter := api.NewRouter(site, db, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusOK, `{"status":"ok"}`)
	})
	r.Get("/health/ready", readyHandler(site, db))

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Docs.Watch {
		g.Go(func() error {
			if err := index.Watch(gCtx, db, site, logger, broker.PublishSiteEvent); err != nil {
				logger.Error("watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops with the server.
var errShutdown = errors.New("shutdown")
