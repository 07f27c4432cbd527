package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderPlacedLine carries what stock consumers need about one line.
type OrderPlacedLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderPlaced is emitted after an order has been durably stored.
type OrderPlaced struct {
	OrderID    int64             `json:"order_id"`
	ProductIDs []string          `json:"product_ids"`
	Lines      []OrderPlacedLine `json:"lines"`
	Total      decimal.Decimal   `json:"total"`
}

// EventPublisher fans the order-placed event out to interested systems.
// Publication happens after the commit; a failed publish never rolls the
// order back.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlaced) error
}
