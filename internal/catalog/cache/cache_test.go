package cache

import (
	"context"
	"testing"
	"time"

	"commerce_agent_backend/internal/catalog/transport"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()

	srv := miniredis.RunT(t)
	c, err := New("redis://"+srv.Addr(), ttl)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}

func TestCacheRoundTrip(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()

	items := []transport.ProductResponse{
		{ID: 1, Name: "Pantalón", Price: 750, Stock: 3},
		{ID: 2, Name: "Camisa", Price: 450, Stock: 1},
	}

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss before set")
	}

	c.Set(ctx, "k", items)

	got, ok := c.Get(ctx, "k")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].Name != "Camisa" {
		t.Fatalf("unexpected cached items: %v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	srv := miniredis.RunT(t)
	c, err := New("redis://"+srv.Addr(), time.Second)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx := context.Background()
	c.Set(ctx, "k", []transport.ProductResponse{{ID: 1}})

	srv.FastForward(2 * time.Second)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss after TTL expiry")
	}
}

func TestCacheNilIsNoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	c.Set(ctx, "k", []transport.ProductResponse{{ID: 1}})
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("nil cache should never hit")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil close should be a no-op, got %v", err)
	}
}
