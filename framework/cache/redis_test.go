package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/km-arc/go-sugar/framework/cache"
	"github.com/km-arc/go-sugar/framework/config"
	"github.com/km-arc/go-sugar/framework/lifecycle"
)

func settings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.New("testdata/missing.env")
	if err := s.Setup(); err != nil {
		t.Fatalf("settings setup: %v", err)
	}
	return s
}

func TestRedis_Setup_ConnectsAndTearsDown(t *testing.T) {
	srv := miniredis.RunT(t)
	t.Setenv("APP_REDIS_ADDR", srv.Addr())

	r := cache.New(settings(t))
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if !r.Present() {
		t.Fatal("payload should be populated after Setup")
	}

	ctx := context.Background()
	if err := r.Client().Set(ctx, "greeting", "hello", 0).Err(); err != nil {
		t.Fatalf("SET: %v", err)
	}
	got, err := r.Client().Get(ctx, "greeting").Result()
	if err != nil || got != "hello" {
		t.Fatalf("GET: got %q, %v", got, err)
	}

	if err := r.Teardown(); err != nil {
		t.Fatalf("Teardown: %v", err)
	}
	if r.Present() {
		t.Error("Teardown should clear the client")
	}
}

func TestRedis_Setup_Unreachable(t *testing.T) {
	t.Setenv("APP_REDIS_ADDR", "127.0.0.1:1") // nothing listens here

	r := cache.New(settings(t))
	if err := r.Setup(); err == nil {
		t.Fatal("Setup should fail when the server is unreachable")
	}
	if r.Present() {
		t.Error("failed Setup must leave the slot empty")
	}
}

func TestRedis_Register_ResolvesThroughManager(t *testing.T) {
	srv := miniredis.RunT(t)
	t.Setenv("APP_REDIS_ADDR", srv.Addr())

	m := lifecycle.New()
	if err := config.Register(m, "testdata/missing.env"); err != nil {
		t.Fatalf("config.Register: %v", err)
	}
	if err := cache.Register(m); err != nil {
		t.Fatalf("cache.Register: %v", err)
	}

	if err := m.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	r, err := lifecycle.Resolve[*cache.Redis](m, cache.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := r.Client().Ping(context.Background()).Err(); err != nil {
		t.Errorf("resolved client should be live: %v", err)
	}
	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
