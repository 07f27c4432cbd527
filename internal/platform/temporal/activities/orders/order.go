package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/skystore/storefront/internal/domains/orders/domain"
	ordersports "github.com/skystore/storefront/internal/domains/orders/ports"
)

const (
	// PersistOrderActivityName stores the order without publishing events.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// PublishOrderPlacedActivityName fans out the order-placed event.
	PublishOrderPlacedActivityName = "orders.activities.PublishOrderPlaced"
)

// Activities groups the activities of the order placement sequence.
type Activities struct {
	service   ordersports.Service
	publisher ordersports.EventPublisher
}

// NewActivities wires the order collaborators into the Temporal activities bundle.
// service should be constructed without a publisher so events are emitted only
// through the dedicated publish activity.
func NewActivities(service ordersports.Service, publisher ordersports.EventPublisher) *Activities {
	return &Activities{service: service, publisher: publisher}
}

// PersistOrder stores a new order aggregate and returns it with assigned ids.
func (a *Activities) PersistOrder(ctx context.Context, lines []domain.OrderLine) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized")
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "lines", len(lines))
	order, err := a.service.CreateOrder(ctx, lines)
	if err != nil {
		logger.Error("PersistOrder activity failed", "error", err)
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID)
	return order, nil
}

// PublishOrderPlaced emits the event for a persisted order.
func (a *Activities) PublishOrderPlaced(ctx context.Context, event ordersports.OrderPlaced) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("order publish activity not initialized", "orderId", event.OrderID)
		return errors.New("order publish activity not initialized")
	}
	if a.publisher == nil {
		logger.Info("event publisher not configured; skipping", "orderId", event.OrderID)
		return nil
	}

	var hb publishHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("PublishOrderPlaced already completed in prior attempt; skipping", "orderId", event.OrderID)
		return nil
	}

	logger.Info("PublishOrderPlaced activity started", "orderId", event.OrderID)
	if err := a.publisher.PublishOrderPlaced(ctx, event); err != nil {
		logger.Error("PublishOrderPlaced activity failed", "orderId", event.OrderID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, publishHeartbeat{Completed: true})
	logger.Info("PublishOrderPlaced activity completed", "orderId", event.OrderID)
	return nil
}

type publishHeartbeat struct {
	Completed bool
}
