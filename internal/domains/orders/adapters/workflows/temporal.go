package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/skystore/storefront/internal/domains/orders/domain"
	"github.com/skystore/storefront/internal/domains/orders/ports"
	orderworkflows "github.com/skystore/storefront/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.PlacementOrchestrator = (*TemporalOrderPlacement)(nil)
	_ ports.PlacementOrchestrator = (*InlineOrderPlacement)(nil)
)

// TemporalOrderPlacement starts order placement workflows on a Temporal cluster.
type TemporalOrderPlacement struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderPlacement wires a Temporal client into the orchestrator.
func NewTemporalOrderPlacement(c client.Client) *TemporalOrderPlacement {
	return &TemporalOrderPlacement{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
}

// PlaceOrder executes the placement workflow and waits for its result.
func (o *TemporalOrderPlacement) PlaceOrder(ctx context.Context, lines []domain.OrderLine) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order placement not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-placement-%s", traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflow,
		orderworkflows.OrderPlacementWorkflowInput{Lines: lines, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
			var order domain.Order
			if err := existingRun.Get(ctx, &order); err != nil {
				return nil, err
			}
			return &order, nil
		}
		return nil, err
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// InlineOrderPlacement executes placement synchronously without Temporal,
// useful for tests or dev fallbacks.
type InlineOrderPlacement struct {
	service ports.Service
}

// NewInlineOrderPlacement wraps the order service for synchronous execution.
func NewInlineOrderPlacement(service ports.Service) *InlineOrderPlacement {
	return &InlineOrderPlacement{service: service}
}

// PlaceOrder delegates to the application service without durable orchestration.
func (o *InlineOrderPlacement) PlaceOrder(ctx context.Context, lines []domain.OrderLine) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order placement not configured")
	}
	return o.service.CreateOrder(ctx, lines)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
