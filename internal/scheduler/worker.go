package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"panelbom_backend/internal/catalog/domain"
	"panelbom_backend/platform/config"
	"panelbom_backend/platform/logger"
)

// CatalogRefresher re-fingerprints the catalog source and reloads on change.
type CatalogRefresher interface {
	Refresh(ctx context.Context) (*domain.CatalogSnapshot, bool, error)
}

// Worker consumes refresh tasks and also enqueues them on a poll interval.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	client   *Client
	catalog  CatalogRefresher
	interval time.Duration
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, catalog CatalogRefresher, interval time.Duration, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	client, err := NewClient(cfg)
	if err != nil {
		server.Shutdown()
		return nil, err
	}

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		client:   client,
		catalog:  catalog,
		interval: interval,
		log:      log,
	}

	mux.HandleFunc(TaskCatalogRefresh, w.handleCatalogRefresh)

	return w, nil
}

func (w *Worker) handleCatalogRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCatalogRefreshPayload(task)
	if err != nil {
		return err
	}

	snap, changed, err := w.catalog.Refresh(ctx)
	if err != nil {
		w.log.Error("catalog refresh failed", "reason", payload.Reason, "error", err)
		return err
	}

	if changed {
		w.log.Info("catalog refreshed",
			"reason", payload.Reason, "version", snap.Version,
			"products", len(snap.Products), "accessories", len(snap.Accessories))
	}
	return nil
}

// Run starts the task server and the poll ticker, and blocks until the
// context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	if w.interval > 0 {
		go w.poll(ctx)
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
		_ = w.client.Close()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) poll(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.client.SignalCatalogRefresh(ctx, "poll"); err != nil {
				w.log.Error("failed to enqueue catalog refresh", "error", err)
			}
		}
	}
}
