package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const chartCacheTTL = 60 * time.Second

// initRedis connects to the optional chart-response cache. The caller treats
// a connection failure as "run without cache".
func initRedis() (*redis.Client, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	opt, err := redis.ParseURL(fmt.Sprintf("redis://%s", redisURL))
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// cachedResponse returns a previously cached chart response, or nil on miss
// or when caching is disabled.
func (a *app) cachedResponse(ctx context.Context, key string) []byte {
	if a.cache == nil {
		return nil
	}
	data, err := a.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

// storeResponse caches a chart response for the fixed TTL. Best effort; a
// failed write only costs the next request a recompute.
func (a *app) storeResponse(ctx context.Context, key string, data []byte) {
	if a.cache == nil {
		return
	}
	a.cache.SetEx(ctx, key, data, chartCacheTTL)
}
