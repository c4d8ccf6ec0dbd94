package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/config"
	"ecommerce-api/internal/database"
	"ecommerce-api/internal/handlers"
	"ecommerce-api/internal/payments"
	"ecommerce-api/internal/realtime"
	"ecommerce-api/internal/routes"
	"ecommerce-api/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		return err
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	logger.Info("starting ecommerce-api",
		"version", version.Version,
		"commit", version.Commit,
		"addr", cfg.Server.Addr,
	)
	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("using the built-in JWT secret; set SECRET_KEY in production")
	}

	// Init database
	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	if _, err := database.EnsureAdmin(db, cfg.Admin, logger); err != nil {
		return err
	}
	logger.Info("database ready", "postgres", database.IsPostgres(cfg.Database.DSN))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := realtime.NewManager(logger)
	dispatcher := realtime.NewDispatcher(registry, cfg.Realtime.Workers, cfg.Realtime.QueueSize, logger)
	dispatcher.Start(ctx)

	tokens := auth.NewTokenManager(cfg.Auth)
	h := handlers.New(handlers.Deps{
		DB:       db,
		Tokens:   tokens,
		Registry: registry,
		Notifier: dispatcher,
		Payments: payments.NewLocalProvider(),
		Config:   cfg,
		Logger:   logger,
	})

	// Setup the routes (public, protected and admin routes)
	gin.SetMode(cfg.Server.Mode)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: routes.SetupRoutes(h, tokens, logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		// Hijacked websocket connections are not tracked by Shutdown.
		dispatcher.Stop()
		registry.CloseAll()
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
