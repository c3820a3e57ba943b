package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lalith-99/worktrack/internal/api"
	"github.com/lalith-99/worktrack/internal/config"
	"github.com/lalith-99/worktrack/internal/db"
	"github.com/lalith-99/worktrack/internal/events"
	"github.com/lalith-99/worktrack/internal/observ"
	"github.com/lalith-99/worktrack/internal/repository/postgres"
	"github.com/lalith-99/worktrack/internal/workspace"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ---------------------------------------------------------------
	// 1. Load config
	// ---------------------------------------------------------------
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// ---------------------------------------------------------------
	// 2. Create logger
	// ---------------------------------------------------------------
	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registryCfg := workspace.RegistryConfig{
		Options:  workspace.Options{CascadeJobs: cfg.CascadeJobDelete},
		SeedDemo: cfg.SeedDemo,
		Logger:   logger,
	}
	healthChecks := map[string]func(context.Context) error{}

	// ---------------------------------------------------------------
	// 3. Postgres (optional): workspaces survive restarts
	// ---------------------------------------------------------------
	if cfg.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer database.Close()

		snapshots := postgres.NewSnapshotStore(database.Pool())
		if err := snapshots.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("prepare schema: %w", err)
		}
		registryCfg.Repo = snapshots
		healthChecks["database"] = database.Health
	} else {
		logger.Warn("DATABASE_URL not set, workspaces are kept in memory only")
	}

	// ---------------------------------------------------------------
	// 4. Change events: Redis fan-out when configured, else in-process
	// ---------------------------------------------------------------
	hub := events.NewHub(logger)
	if cfg.RedisURL != "" {
		client, err := events.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer client.Close()

		broker := events.NewRedisBroker(client, hub, logger)
		go func() {
			if err := broker.Run(ctx); err != nil {
				logger.Error("redis event relay stopped", zap.Error(err))
			}
		}()
		registryCfg.Publisher = broker
		healthChecks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	} else {
		registryCfg.Publisher = events.NewLocalBroker(hub)
	}

	registry := workspace.NewRegistry(registryCfg)

	// ---------------------------------------------------------------
	// 5. HTTP server
	// ---------------------------------------------------------------
	router := api.NewRouter(api.RouterConfig{
		Workspaces:   registry,
		Hub:          hub,
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   cfg.SessionTTL,
		Logger:       logger,
		HealthChecks: healthChecks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting WorkTrack",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.Bool("persistent", registryCfg.Repo != nil),
		zap.Bool("cascade_job_delete", cfg.CascadeJobDelete),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	// Shutdown does not track hijacked connections; close the event
	// streams ourselves.
	hub.Close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
