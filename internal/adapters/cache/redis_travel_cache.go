package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTravelTimeCache is a Redis-backed cache for origin->destination travel
// times. Each origin maps to one hash keyed by destination, refreshed with a
// sliding TTL on write. Suited for deployments where several instances share
// one cache.
type RedisTravelTimeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisTravelTimeCache(client *redis.Client, ttl time.Duration) *RedisTravelTimeCache {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisTravelTimeCache{Client: client, TTL: ttl}
}

func travelKey(origin string) string { return "travel:" + origin }

// Fetch cached travel times for one origin and multiple destinations.
func (r *RedisTravelTimeCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]int, error) {
	if r.Client == nil {
		return nil, errors.New("travel cache: redis client is nil")
	}

	if origin == "" {
		return nil, errors.New("get travel cache: origin must not be empty")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(destinations))
	for _, d := range destinations {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		uniq = append(uniq, d)
	}

	if len(uniq) == 0 {
		return map[string]int{}, nil
	}

	vals, err := r.Client.HMGet(ctx, travelKey(origin), uniq...).Result()
	if err != nil {
		return nil, fmt.Errorf("get travel cache: hmget: %w", err)
	}

	out := make(map[string]int, len(uniq))
	for i, v := range vals {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		seconds, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("get travel cache: parse value for %q: %w", uniq[i], err)
		}
		out[uniq[i]] = seconds
	}

	return out, nil
}

// Store many cached travel times for a single origin.
func (r *RedisTravelTimeCache) PutMany(ctx context.Context, origin string, results map[string]int) error {
	if r.Client == nil {
		return errors.New("travel cache: redis client is nil")
	}

	if origin == "" {
		return errors.New("insert travel cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	fields := make(map[string]any, len(results))
	for dest, seconds := range results {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert travel cache: empty destination key")
		}
		fields[dest] = seconds
	}

	key := travelKey(origin)
	pipe := r.Client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, r.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert travel cache: pipeline exec: %w", err)
	}

	return nil
}
