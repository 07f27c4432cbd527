package ports

import (
	"context"

	"github.com/skystore/storefront/internal/domains/orders/domain"
)

// PlacementOrchestrator runs the order placement sequence: persist the
// aggregate, then publish the order-placed event.
type PlacementOrchestrator interface {
	PlaceOrder(ctx context.Context, lines []domain.OrderLine) (*domain.Order, error)
}
