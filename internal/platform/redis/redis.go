// Package redis dials the cache used in front of cart storage.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Options selects the Redis endpoint.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a client and verifies it with PING.
func Connect(ctx context.Context, opts Options) (*goredis.Client, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, fmt.Errorf("redis address is empty")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// ConnectOptional returns nil with a no-op cleanup when Addr is blank or the
// server is unreachable, so callers fall back to uncached storage.
func ConnectOptional(ctx context.Context, opts Options, logger *slog.Logger) (*goredis.Client, func()) {
	if strings.TrimSpace(opts.Addr) == "" {
		if logger != nil {
			logger.Info("REDIS_ADDR not set, cart cache disabled")
		}
		return nil, func() {}
	}
	client, err := Connect(ctx, opts)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to redis, cart cache disabled", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("redis connection established", slog.String("addr", opts.Addr))
	}
	return client, func() { _ = client.Close() }
}
