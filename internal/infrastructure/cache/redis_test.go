package cache

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"shortlist-console/internal/config"
)

func TestRedis_DisabledDegradesToMisses(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, log.New(io.Discard, "", 0))
	ctx := context.Background()

	if r.Available() {
		t.Fatalf("expected unavailable redis without a host")
	}
	if err := r.SetJSON(ctx, "k", []string{"a"}, time.Second); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var out []string
	found, err := r.GetJSON(ctx, "k", &out)
	if err != nil || found {
		t.Fatalf("expected miss, got found=%v err=%v", found, err)
	}
	if ok, err := r.SetIfNotExists(ctx, "k", "1", time.Second); ok || err != nil {
		t.Fatalf("expected no-op SetIfNotExists, got ok=%v err=%v", ok, err)
	}
	if ok, err := r.Exists(ctx, "k"); ok || err != nil {
		t.Fatalf("expected no-op Exists, got ok=%v err=%v", ok, err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping error")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("unexpected close err: %v", err)
	}
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	if found, err := r.GetJSON(context.Background(), "k", &struct{}{}); found || err != nil {
		t.Fatalf("expected nil receiver to miss")
	}
	if err := r.Delete(context.Background(), "k"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
