package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/OmerAlfiel/Shahen-website/api/middleware"
	"github.com/OmerAlfiel/Shahen-website/api/routes"
	"github.com/OmerAlfiel/Shahen-website/internal/contacts"
	"github.com/OmerAlfiel/Shahen-website/internal/quote"
	"github.com/OmerAlfiel/Shahen-website/pkg/config"
	"github.com/OmerAlfiel/Shahen-website/pkg/db"
	"github.com/OmerAlfiel/Shahen-website/pkg/instance"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
	"github.com/OmerAlfiel/Shahen-website/pkg/metrics"
	"github.com/OmerAlfiel/Shahen-website/pkg/migrate"
	"github.com/OmerAlfiel/Shahen-website/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Version:     cfg.App.Version,
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logDatabaseTarget(ctx, logg, cfg)

	manager := db.NewManager(
		func(ctx context.Context) (*db.Client, error) {
			return db.New(ctx, db.Options{
				DB:         cfg.DB,
				UseSQLite:  cfg.FeatureFlags.UseSQLite,
				SQLitePath: cfg.FeatureFlags.SQLitePath,
				Verbose:    cfg.App.IsDev(),
			}, logg)
		},
		db.ManagerOptions{
			Attempts: cfg.DB.ConnectAttempts,
			Backoff:  cfg.DB.ConnectBackoff,
			OnConnect: func(ctx context.Context, conn *gorm.DB) error {
				return migrate.Apply(ctx, cfg, logg, conn)
			},
		},
		logg,
	)
	defer func() {
		if err := manager.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	var limiter middleware.RateLimitStore
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "redis unavailable, rate limiting disabled", err)
		} else {
			limiter = redisClient
			defer func() {
				if err := redisClient.Close(); err != nil {
					logg.Error(context.Background(), "error closing redis", err)
				}
			}()
		}
	} else {
		logg.Warn(ctx, "redis not configured, rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	contactService, err := contacts.NewService(contacts.ServiceParams{
		Repository: contacts.NewRepository(manager),
		Logger:     logg,
		Metrics:    metrics.NewContactMetrics(registry),
	})
	if err != nil {
		logg.Error(ctx, "failed to create contacts service", err)
		os.Exit(1)
	}

	addr := ":" + cfg.App.Port
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"instance":     instance.GetID(),
		"frontend_url": cfg.HTTP.FrontendURL,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, manager, limiter, quote.NewService(), contactService, registry),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(serverCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// The server is already accepting requests; a database that is down
	// here is retried on the first contact request.
	go func() {
		if _, err := manager.Ensure(ctx); err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "database connection failed, server keeps running")
		}
	}()

	select {
	case err, ok := <-serveErr:
		if ok && err != nil {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	logg.Info(serverCtx, "shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(serverCtx, "graceful shutdown failed", err)
	}
}

func logDatabaseTarget(ctx context.Context, logg *logger.Logger, cfg *config.Config) {
	if cfg.FeatureFlags.UseSQLite {
		logg.Info(logg.WithField(ctx, "sqlite_path", cfg.FeatureFlags.SQLitePath), "database target resolved")
		return
	}
	target := cfg.DB.Target
	logg.Info(logg.WithFields(ctx, target.LogFields()), "database target resolved")
	if len(target.Placeholders) > 0 {
		logg.Warn(logg.WithField(ctx, "placeholders", target.Placeholders), "database variables hold unresolved placeholders, falling back")
	}
}
