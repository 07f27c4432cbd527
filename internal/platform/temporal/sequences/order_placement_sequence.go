package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/skystore/storefront/internal/domains/orders/domain"
	ordersports "github.com/skystore/storefront/internal/domains/orders/ports"
	orderactivities "github.com/skystore/storefront/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the ordered activities that place an
// order: persist the aggregate, then publish the order-placed event.
func RunOrderPlacementSequence(ctx workflow.Context, lines []domain.OrderLine) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "lines", len(lines))

	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			// Persisting an order is not idempotent; a retried commit after a
			// timeout could duplicate it, so the sequence does not retry it.
			MaximumAttempts: 1,
		},
	}
	publishOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		HeartbeatTimeout:    15 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var order domain.Order
	err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, persistOptions),
		orderactivities.PersistOrderActivityName, lines,
	).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence persist failed", "error", err)
		return nil, err
	}
	logger.Info("order placement sequence persisted", "orderId", order.ID)

	eventLines := make([]ordersports.OrderPlacedLine, 0, len(order.Details))
	for _, line := range order.Details {
		eventLines = append(eventLines, ordersports.OrderPlacedLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	event := ordersports.OrderPlaced{
		OrderID:    order.ID,
		ProductIDs: order.ProductIDs(),
		Lines:      eventLines,
		Total:      order.Total(),
	}
	if err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, publishOptions),
		orderactivities.PublishOrderPlacedActivityName, event,
	).Get(ctx, nil); err != nil {
		// The order is already durable; a failed publish is reported but does
		// not undo the placement.
		logger.Error("order placement sequence publish failed", "orderId", order.ID, "error", err)
		return &order, nil
	}
	logger.Info("order placement sequence published", "orderId", order.ID)
	return &order, nil
}
