// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/mcpserver"
	"github.com/starford/folio/internal/portfolio"
	"github.com/starford/folio/internal/sse"
	"github.com/starford/folio/internal/storage"
	"github.com/starford/folio/internal/store"
)

// EventContentSynced is published on the admin feed after a watcher sync.
const EventContentSynced = "content.synced"

// core holds the components shared by every command.
type core struct {
	cfg    *Config
	logger *slog.Logger
	handle *store.Handle
	syncer *content.Syncer
}

func setup(opts []Option) (*core, error) {
	app := &application{logOutput: os.Stdout}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("store_path", cfg.Store.Path),
		slog.String("content_path", cfg.Content.Path),
		slog.String("image_policy", string(cfg.Catalog.ImagePolicy)),
		slog.String("log_level", cfg.App.LogLevel.String()))

	if err := os.MkdirAll(cfg.Content.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create content dir: %w", err)
	}
	files, err := storage.NewFS(cfg.Content.Path)
	if err != nil {
		return nil, fmt.Errorf("init content storage: %w", err)
	}

	handle := store.NewHandle(openStore(cfg.Store))

	return &core{
		cfg:    cfg,
		logger: logger,
		handle: handle,
		syncer: content.NewSyncer(handle, files, logger),
	}, nil
}

// openStore returns an Opener bounded by the configured connect timeout.
func openStore(cfg StoreConfig) store.Opener {
	open := store.OpenPath(cfg.Path)
	return func(ctx context.Context) (*store.Store, error) {
		if cfg.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
			defer cancel()
		}
		return open(ctx)
	}
}

func (c *core) service(opts ...portfolio.Option) *portfolio.Service {
	opts = append([]portfolio.Option{portfolio.WithImagePolicy(c.cfg.Catalog.ImagePolicy)}, opts...)
	return portfolio.NewService(c.handle, c.cfg.Auth.TokenService(), opts...)
}

func (c *core) initialSync(ctx context.Context) {
	st, err := c.syncer.Sync(ctx)
	if err != nil {
		c.logger.Warn("initial content sync failed", slog.String("error", err.Error()))
		return
	}
	c.logger.Info("content synced",
		slog.Int("files", st.Files),
		slog.Int("projects", st.Projects),
		slog.Int("certificates", st.Certificates),
		slog.Int("failed", st.Failed))
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	c, err := setup(opts)
	if err != nil {
		return err
	}
	cfg, logger := c.cfg, c.logger
	defer c.handle.Close()

	// SSE broker for the admin inbox feed.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	svc := c.service(portfolio.WithMessageHook(broker.PublishMessage))

	// The store may be down at startup; requests fall back to the catalog and
	// the handle reconnects on demand.
	c.initialSync(ctx)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	api.HealthRoutes(r, svc)

	// Mount API routes under /api.
	r.Mount("/api", api.NewRouter(svc, broker))

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start content watcher with SSE callback.
	if cfg.Content.Watch {
		g.Go(func() error {
			err := c.syncer.Watch(gCtx, cfg.Content.Path, func(st content.Stats) {
				broker.Publish(sse.Event{Type: EventContentSynced, Data: st})
			})
			if err != nil {
				logger.Error("content watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
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

// errShutdown cancels the group so the watcher stops along with the server.
var errShutdown = errors.New("shutdown")

// RunSeed creates the admin user if absent and imports the content directory.
func RunSeed(ctx context.Context, opts ...Option) error {
	c, err := setup(opts)
	if err != nil {
		return err
	}
	defer c.handle.Close()

	if err := c.cfg.Auth.ValidateAdmin(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	svc := c.service()
	created, err := svc.EnsureAdmin(ctx, c.cfg.Auth.AdminEmail, c.cfg.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	c.logger.Info("admin user", slog.String("email", c.cfg.Auth.AdminEmail), slog.Bool("created", created))

	st, err := c.syncer.Sync(ctx)
	if err != nil {
		return fmt.Errorf("seed content: %w", err)
	}
	c.logger.Info("Database seeded successfully",
		slog.Int("files", st.Files),
		slog.Int("projects", st.Projects),
		slog.Int("certificates", st.Certificates),
		slog.Int("created", st.Created),
		slog.Int("failed", st.Failed))
	return nil
}

// RunMCP serves the MCP tools over stdio. Logs must not go to stdout.
func RunMCP(ctx context.Context, opts ...Option) error {
	opts = append([]Option{WithLogOutput(os.Stderr)}, opts...)
	c, err := setup(opts)
	if err != nil {
		return err
	}
	defer c.handle.Close()

	c.initialSync(ctx)

	srv := mcpserver.New(c.service(), c.syncer)
	c.logger.Info("MCP server starting on stdio")
	return srv.ServeStdio()
}
