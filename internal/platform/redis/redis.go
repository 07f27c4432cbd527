// Package redis dials the product catalog store. Like the postgres helper it
// degrades instead of failing: without REDIS_URI the products service runs on
// its in-memory store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Connect parses a Redis URI, dials it, and pings it before handing the
// client out.
func Connect(ctx context.Context, uri string) (*redis.Client, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, errors.New("redis uri is required")
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis uri: %w", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// ConnectFromEnv reads REDIS_URI and returns the client with its cleanup
// function. An empty or unreachable URI yields a nil client and a no-op
// cleanup; callers treat a nil client as the signal to run on the memory
// store.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*redis.Client, func()) {
	uri := strings.TrimSpace(os.Getenv("REDIS_URI"))
	if uri == "" {
		warnFallback(logger, "REDIS_URI not set, products stay on the in-memory store", nil)
		return nil, func() {}
	}
	client, err := Connect(ctx, uri)
	if err != nil {
		warnFallback(logger, "redis unreachable, products stay on the in-memory store", err)
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("product catalog store connected")
	}
	return client, func() { _ = client.Close() }
}

func warnFallback(logger *slog.Logger, msg string, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn(msg, slog.String("error", err.Error()))
		return
	}
	logger.Warn(msg)
}
