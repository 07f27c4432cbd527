// Package postgres dials the orders database. The storefront boots with or
// without it: when no DSN is configured the orders service stays on its
// in-memory repository, so ConnectFromEnv warns and degrades instead of
// failing startup.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dialTimeout bounds the startup ping so a dead database fails fast instead
// of stalling the first order.
const dialTimeout = 5 * time.Second

// Connect opens the orders database through GORM and pings it before handing
// it out.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// ConnectFromEnv reads POSTGRES_DSN and returns the database with its cleanup
// function. An empty or unreachable DSN yields a nil DB and a no-op cleanup;
// callers treat a nil DB as the signal to run on memory adapters.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		warnFallback(logger, "POSTGRES_DSN not set, orders stay on the in-memory repository", nil)
		return nil, func() {}
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		warnFallback(logger, "postgres unreachable, orders stay on the in-memory repository", err)
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		warnFallback(logger, "could not unwrap the postgres connection, orders stay on the in-memory repository", err)
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("orders database connected")
	}
	return db, func() { _ = sqlDB.Close() }
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
