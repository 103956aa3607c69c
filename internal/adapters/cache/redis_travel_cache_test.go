package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisCache(t *testing.T) *RedisTravelTimeCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisTravelTimeCache(client, time.Hour)
}

func TestRedisTravelTimeCacheRoundTrip(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	put := map[string]int{
		"35.10000,136.90000": 420,
		"35.20000,136.80000": 911,
	}
	if err := c.PutMany(ctx, "35.00000,137.00000", put); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	got, err := c.GetMany(ctx, "35.00000,137.00000", []string{
		"35.10000,136.90000",
		"35.20000,136.80000",
		"36.00000,138.00000", // never stored
	})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got["35.10000,136.90000"] != 420 {
		t.Errorf("first destination = %d, want 420", got["35.10000,136.90000"])
	}
	if got["35.20000,136.80000"] != 911 {
		t.Errorf("second destination = %d, want 911", got["35.20000,136.80000"])
	}
	if _, ok := got["36.00000,138.00000"]; ok {
		t.Errorf("unexpectedly found entry for a destination that was never stored")
	}
}

func TestRedisTravelTimeCacheMissingOrigin(t *testing.T) {
	c := newTestRedisCache(t)

	got, err := c.GetMany(context.Background(), "0.00000,0.00000", []string{"1.00000,1.00000"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d entries for unknown origin, want 0", len(got))
	}
}

func TestRedisTravelTimeCacheEmptyOrigin(t *testing.T) {
	c := newTestRedisCache(t)

	if _, err := c.GetMany(context.Background(), "", []string{"1.00000,1.00000"}); err == nil {
		t.Fatal("expected error for empty origin")
	}
	if err := c.PutMany(context.Background(), "", map[string]int{"1.00000,1.00000": 1}); err == nil {
		t.Fatal("expected error for empty origin")
	}
}
