package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"panelbom_backend/internal/catalog"
	catalogservice "panelbom_backend/internal/catalog/service"
	"panelbom_backend/internal/catalog/source"
	"panelbom_backend/internal/email"
	apphttp "panelbom_backend/internal/http"
	"panelbom_backend/internal/http/router"
	"panelbom_backend/internal/notification"
	"panelbom_backend/internal/quotation"
	"panelbom_backend/platform/config"
	"panelbom_backend/platform/db"
	"panelbom_backend/platform/events"
	"panelbom_backend/platform/logger"
	"panelbom_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	catalogSource, err := newCatalogSource(cfg, log)
	if err != nil {
		log.Error("failed to initialize catalog source", "error", err)
		panic("failed to initialize catalog source: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	catalogModule := catalog.NewModule(catalogSource, eventBus, val, log)
	if err := withRetry(ctx, log, "initial catalog load", 5, 2*time.Second, func() error {
		return catalogModule.Load(ctx)
	}); err != nil {
		log.Error("failed to load catalog", "error", err)
		panic("failed to load catalog: " + err.Error())
	}
	log.Info("catalog loaded")

	quotationModule := quotation.NewModule(pool, catalogModule.Service(), eventBus, val, log)

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, quotationModule.Service(), log)
	notificationModule.RegisterHandlers(eventBus)

	// Periodic refresh keeps long-running processes aligned with catalog edits
	if interval := cfg.GetCatalogRefreshInterval(); interval > 0 {
		go refreshLoop(ctx, log, catalogModule.Service(), interval)
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		Catalog:  catalogModule.Service(),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			catalogModule,
			quotationModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func newCatalogSource(cfg *config.Config, log *logger.Logger) (source.Source, error) {
	if cfg.IsMinIOEnabled() {
		log.Info("catalog source: minio",
			"bucket", cfg.GetCatalogBucket(), "key", cfg.GetCatalogObjectKey())
		return source.NewMinIOSource(cfg, cfg.GetCatalogBucket(), cfg.GetCatalogObjectKey())
	}
	log.Info("catalog source: file", "path", cfg.GetCatalogSourcePath())
	return source.NewFileSource(cfg.GetCatalogSourcePath()), nil
}

func refreshLoop(ctx context.Context, log *logger.Logger, svc *catalogservice.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := svc.Refresh(ctx); err != nil {
				log.Error("periodic catalog refresh failed", "error", err)
			}
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
