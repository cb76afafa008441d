package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"panelbom_backend/internal/catalog/repository"
	catalogservice "panelbom_backend/internal/catalog/service"
	"panelbom_backend/internal/catalog/source"
	"panelbom_backend/internal/scheduler"
	"panelbom_backend/platform/config"
	"panelbom_backend/platform/events"
	"panelbom_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewInMemoryBus(log)

	catalogSource, err := newCatalogSource(cfg, log)
	if err != nil {
		log.Error("failed to initialize catalog source", "error", err)
		panic("failed to initialize catalog source: " + err.Error())
	}

	catalogRepo := repository.New(catalogSource, log)
	catalogSvc := catalogservice.New(catalogRepo, eventBus, log)

	if err := withRetry(ctx, log, "initial catalog load", 5, 2*time.Second, func() error {
		return catalogSvc.Load(ctx)
	}); err != nil {
		log.Error("failed to load catalog", "error", err)
		panic("failed to load catalog: " + err.Error())
	}
	log.Info("catalog loaded")

	worker, err := scheduler.NewWorker(cfg, catalogSvc, cfg.GetCatalogRefreshInterval(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
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

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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
