// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the client for the gateway's volatile state.

Only failed sign-in counters live here. Each one expires on its own, so an
empty or lost instance simply resets throttling.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ioTimeout   = 2 * time.Second
	pingTimeout = 2 * time.Second
)

// NewClient opens a client from a redis:// URL and pings it once.
//
// Timeouts in the URL are overridden: a counter update must never stall a
// sign-in for longer than ioTimeout.
func NewClient(ctx context.Context, rawURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	options.DialTimeout = 3 * time.Second
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout
	options.PoolSize = 8
	options.MinIdleConns = 1

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
	)

	return client, nil
}

// Ping is the readiness probe for the client.
func Ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}
