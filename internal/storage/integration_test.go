//go:build integration

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/penshort/userconsole/internal/testutil"
)

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	key := "it:" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { _ = b.Delete(ctx, key) })

	if _, ok, err := b.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get(missing) = %v, %v", ok, err)
	}

	if err := b.Set(ctx, key, "v1", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := b.Set(ctx, key, "v2", time.Minute); err != nil {
		t.Fatalf("Set(overwrite) error = %v", err)
	}

	got, ok, err := b.Get(ctx, key)
	if err != nil || !ok || got != "v2" {
		t.Fatalf("Get() = %q, %v, %v; want v2", got, ok, err)
	}

	if err := b.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := b.Get(ctx, key); ok {
		t.Error("key should be gone after Delete")
	}
}

func TestIntegrationRedisBackend(t *testing.T) {
	url := testutil.RequireEnv(t, "REDIS_URL")

	b, err := NewRedis(context.Background(), url)
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	defer b.Close()

	exerciseBackend(t, b)
}

func TestIntegrationPostgresBackend(t *testing.T) {
	url := testutil.RequireEnv(t, "DATABASE_URL")
	ctx := context.Background()

	b, err := NewPostgres(ctx, url)
	if err != nil {
		t.Fatalf("NewPostgres() error = %v", err)
	}
	defer b.Close()

	exerciseBackend(t, b)

	if err := b.Set(ctx, "it:expired", "v", time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, ok, _ := b.Get(ctx, "it:expired"); ok {
		t.Error("expired row should read as absent")
	}
	if _, err := b.PurgeExpired(ctx); err != nil {
		t.Errorf("PurgeExpired() error = %v", err)
	}
}
