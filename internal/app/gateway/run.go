// Package gateway boots the storefront gateway HTTP API.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	ordersclient "github.com/skystore/storefront/internal/clients/http/orders"
	productsclient "github.com/skystore/storefront/internal/clients/http/products"
	idemmemory "github.com/skystore/storefront/internal/domains/gateway/adapters/memory"
	gwobs "github.com/skystore/storefront/internal/domains/gateway/adapters/observability"
	gwapp "github.com/skystore/storefront/internal/domains/gateway/application"
	platformobservability "github.com/skystore/storefront/internal/platform/observability"
	gatewayserver "github.com/skystore/storefront/internal/server/gateway"
)

// Run boots the gateway HTTP API with observability and backend clients wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-gateway"
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

	catalog, err := productsclient.NewClient(envOrDefault("PRODUCTS_BASE_URL", "http://localhost:8081"), nil)
	if err != nil {
		return fmt.Errorf("failed to build products client: %w", err)
	}
	orderBackend, err := ordersclient.NewClient(envOrDefault("ORDERS_BASE_URL", "http://localhost:8082"), nil)
	if err != nil {
		return fmt.Errorf("failed to build orders client: %w", err)
	}

	imageRoot := envOrDefault("PRODUCT_IMAGE_ROOT", "http://example.com/airship/images")
	coreService := gwapp.NewService(catalog, orderBackend, imageRoot,
		gwapp.WithLogger(logger),
		gwapp.WithIdempotencyStore(idemmemory.NewIdempotencyStore()),
	)
	service := gwobs.New(
		coreService,
		gwobs.WithLogger(logger),
		gwobs.WithTracer(instruments.Tracer("internal.gateway.application")),
		gwobs.WithMeter(instruments.Meter("internal.gateway.application")),
	)

	router := gatewayserver.NewRouter(gatewayserver.NewGatewayAPI(service))
	router.Use(otelgin.Middleware(serviceName))
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	logger.Info("storefront gateway listening", slog.String("addr", addr), slog.String("imageRoot", imageRoot))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront gateway exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
