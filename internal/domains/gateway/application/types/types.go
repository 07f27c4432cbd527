// Package types holds the request and view shapes exchanged between the
// gateway's transport adapters, application service, and backend ports.
package types

import "github.com/shopspring/decimal"

// Product is the catalog document as served by the products backend.
type Product struct {
	ID                string
	Title             string
	PassengerCapacity int
	MaximumSpeed      int
	InStock           int
}

// OrderLine is one priced position of an order, as served by the orders backend.
type OrderLine struct {
	ID        int64
	ProductID string
	Price     decimal.Decimal
	Quantity  int
}

// Order is the raw backend order before enrichment.
type Order struct {
	ID      int64
	Details []OrderLine
}

// OrderPage is one slice of the backend order listing.
type OrderPage struct {
	Page     int
	PageSize int
	Total    int64
	Items    []*Order
}

// CreateProductInput is the validated payload for catalog writes.
type CreateProductInput struct {
	ID                string
	Title             string
	PassengerCapacity int
	MaximumSpeed      int
	InStock           int
}

// NewOrderLine is one submitted line item; ids are assigned by the backend.
type NewOrderLine struct {
	ProductID string
	Price     decimal.Decimal
	Quantity  int
}

// CreateOrderInput carries the submitted line items plus the optional
// idempotency key from the Idempotency-Key header.
type CreateOrderInput struct {
	Details        []NewOrderLine
	IdempotencyKey string
}

// EnrichedOrderLine is an order line joined with its full product document
// and a derived image URL. It is request-scoped and never persisted.
type EnrichedOrderLine struct {
	ID        int64
	ProductID string
	Price     decimal.Decimal
	Quantity  int
	Product   *Product
	Image     string
}

// EnrichedOrder is the denormalized order view returned by the gateway.
type EnrichedOrder struct {
	ID      int64
	Details []EnrichedOrderLine
}

// EnrichedOrderPage is one slice of the enriched order listing.
type EnrichedOrderPage struct {
	Page     int
	PageSize int
	Total    int64
	Items    []*EnrichedOrder
}
