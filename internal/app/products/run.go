// Package products boots the products catalog HTTP API.
package products

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	productsmemory "github.com/skystore/storefront/internal/domains/products/adapters/memory"
	productsredis "github.com/skystore/storefront/internal/domains/products/adapters/persistence/redis"
	productsapp "github.com/skystore/storefront/internal/domains/products/application"
	productsports "github.com/skystore/storefront/internal/domains/products/ports"
	platformobservability "github.com/skystore/storefront/internal/platform/observability"
	platformredis "github.com/skystore/storefront/internal/platform/redis"
	productsserver "github.com/skystore/storefront/internal/server/products"
)

// Run boots the products HTTP API with observability and storage wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-products"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, cleanupStore := buildStore(ctx, logger)
	defer cleanupStore()
	service := productsapp.NewService(store)

	router := productsserver.NewRouter(productsserver.NewProductsAPI(service))
	router.Use(otelgin.Middleware(serviceName))
	addr := ":8081"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	logger.Info("products API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("products API exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildStore(ctx context.Context, logger *slog.Logger) (productsports.Store, func()) {
	client, cleanup := platformredis.ConnectFromEnv(ctx, logger)
	if client == nil {
		return productsmemory.NewStore(), cleanup
	}
	logger.Info("product store configured with redis")
	return productsredis.NewStore(client), cleanup
}
