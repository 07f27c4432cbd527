// Package orders boots the orders HTTP API.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	"github.com/skystore/storefront/internal/domains/orders/adapters/events/webhook"
	ordersmemory "github.com/skystore/storefront/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/skystore/storefront/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/skystore/storefront/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/skystore/storefront/internal/domains/orders/application"
	ordersports "github.com/skystore/storefront/internal/domains/orders/ports"
	"github.com/skystore/storefront/internal/platform/migrations"
	platformobservability "github.com/skystore/storefront/internal/platform/observability"
	platformpostgres "github.com/skystore/storefront/internal/platform/postgres"
	ordersserver "github.com/skystore/storefront/internal/server/orders"
)

// Run boots the orders HTTP API with observability, storage, events, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-orders"
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

	repo, cleanupRepo := buildRepository(ctx, logger)
	defer cleanupRepo()

	service := ordersapp.NewService(repo,
		ordersapp.WithLogger(logger),
		ordersapp.WithPublisher(buildPublisher(logger)),
	)

	var placement ordersports.PlacementOrchestrator = ordersworkflows.NewInlineOrderPlacement(service)
	if temporalClient, err := connectTemporalClient(instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		placement = ordersworkflows.NewTemporalOrderPlacement(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)))
	}

	router := ordersserver.NewRouter(ordersserver.NewOrdersAPI(service, placement))
	router.Use(otelgin.Middleware(serviceName))
	addr := ":8082"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	logger.Info("orders API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("orders API exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildRepository(ctx context.Context, logger *slog.Logger) (ordersports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return ordersmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate orders schema, falling back to in-memory repository", slog.String("error", err.Error()))
		cleanup()
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup
}

func buildPublisher(logger *slog.Logger) ordersports.EventPublisher {
	endpoint := os.Getenv("ORDER_EVENTS_WEBHOOK_URL")
	if endpoint == "" {
		logger.Warn("ORDER_EVENTS_WEBHOOK_URL not set, order events will not be published")
		return webhook.NopPublisher{}
	}
	publisher, err := webhook.NewPublisher(endpoint, nil)
	if err != nil {
		logger.Warn("failed to build order events publisher", slog.String("error", err.Error()))
		return webhook.NopPublisher{}
	}
	return publisher
}

func connectTemporalClient(instruments *platformobservability.Instruments) (client.Client, error) {
	if os.Getenv("TEMPORAL_DISABLED") == "1" {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	address := os.Getenv("TEMPORAL_ADDRESS")
	if address == "" {
		address = client.DefaultHostPort
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  address,
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
