package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type testConfig struct {
	redisURL string
	queue    string
}

func (c testConfig) GetRedisURL() string       { return c.redisURL }
func (c testConfig) GetRedisTLSInsecure() bool { return false }
func (c testConfig) GetAsynqQueueName() string { return c.queue }
func (c testConfig) GetAsynqConcurrency() int  { return 1 }

func TestSignalCatalogRefreshEnqueuesTask(t *testing.T) {
	srv := miniredis.RunT(t)
	cfg := testConfig{redisURL: "redis://" + srv.Addr(), queue: "catalog"}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Close()

	if err := client.SignalCatalogRefresh(context.Background(), "push"); err != nil {
		t.Fatalf("SignalCatalogRefresh failed: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: srv.Addr()})
	defer inspector.Close()

	tasks, err := inspector.ListPendingTasks("catalog")
	if err != nil {
		t.Fatalf("ListPendingTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(tasks))
	}
	if tasks[0].Type != TaskCatalogRefresh {
		t.Fatalf("expected task type %q, got %q", TaskCatalogRefresh, tasks[0].Type)
	}

	payload, err := ParseCatalogRefreshPayload(asynq.NewTask(tasks[0].Type, tasks[0].Payload))
	if err != nil {
		t.Fatalf("ParseCatalogRefreshPayload failed: %v", err)
	}
	if payload.Reason != "push" {
		t.Fatalf("expected reason %q, got %q", "push", payload.Reason)
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testConfig{}); err == nil {
		t.Fatal("expected an error without a redis url")
	}
}

func TestRedisClientOptRejectsMalformedURL(t *testing.T) {
	if _, err := redisClientOpt("not-a-url", false); err == nil {
		t.Fatal("expected an error for a malformed redis url")
	}
}
