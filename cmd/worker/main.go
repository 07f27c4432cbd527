package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/skystore/storefront/internal/domains/orders/adapters/events/webhook"
	ordersmemory "github.com/skystore/storefront/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/skystore/storefront/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/skystore/storefront/internal/domains/orders/application"
	ordersports "github.com/skystore/storefront/internal/domains/orders/ports"
	"github.com/skystore/storefront/internal/platform/migrations"
	platformobservability "github.com/skystore/storefront/internal/platform/observability"
	platformpostgres "github.com/skystore/storefront/internal/platform/postgres"
	orderactivities "github.com/skystore/storefront/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/skystore/storefront/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
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

	// The service here runs without a publisher; event publication happens
	// through the dedicated activity so Temporal owns its retries.
	orderService := ordersapp.NewService(repo, ordersapp.WithLogger(logger))
	activities := orderactivities.NewActivities(orderService, buildPublisher(logger))

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
	w.RegisterActivityWithOptions(activities.PublishOrderPlaced, activity.RegisterOptions{Name: orderactivities.PublishOrderPlacedActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepository(ctx context.Context, logger *slog.Logger) (ordersports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return ordersmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to migrate orders schema (falling back to memory)", slog.String("error", err.Error()))
		cleanup()
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("worker order repository configured with postgres")
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

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
