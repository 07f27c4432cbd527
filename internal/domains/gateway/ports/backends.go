package ports

import (
	"context"
	"errors"

	gwtypes "github.com/skystore/storefront/internal/domains/gateway/application/types"
)

var (
	// ErrProductNotFound marks a missing product reported by the catalog backend.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound marks a missing order reported by the orders backend.
	ErrOrderNotFound = errors.New("order not found")
	// ErrBackendUnavailable marks a transport failure: the backend could not
	// be reached or answered outside its contract. Mutating calls are never
	// retried on this error to avoid duplicate side effects.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// NotFoundError preserves the backend-provided message verbatim while still
// unwrapping to the matching sentinel for errors.Is checks.
type NotFoundError struct {
	Sentinel error
	Message  string
}

// Error returns the backend message without rewriting it.
func (e *NotFoundError) Error() string { return e.Message }

// Unwrap exposes the sentinel.
func (e *NotFoundError) Unwrap() error { return e.Sentinel }

// ProductCatalog is the products backend contract the gateway consumes.
type ProductCatalog interface {
	// Get loads one product or fails with ErrProductNotFound.
	Get(ctx context.Context, id string) (*gwtypes.Product, error)
	// List returns the products stored under the given ids, silently
	// omitting ids that do not exist. An empty ids slice lists everything.
	List(ctx context.Context, ids []string) ([]*gwtypes.Product, error)
	// Create upserts the product document.
	Create(ctx context.Context, input gwtypes.CreateProductInput) error
	// Delete removes the product or fails with ErrProductNotFound.
	Delete(ctx context.Context, id string) error
}

// OrderBackend is the orders backend contract the gateway consumes.
type OrderBackend interface {
	// GetOrder loads one order or fails with ErrOrderNotFound.
	GetOrder(ctx context.Context, id int64) (*gwtypes.Order, error)
	// GetOrderByProductID returns any order referencing the product, or
	// nil when the product appears in no order.
	GetOrderByProductID(ctx context.Context, productID string) (*gwtypes.Order, error)
	// ListOrders returns one page of orders; the backend owns slicing and total.
	ListOrders(ctx context.Context, page, pageSize int) (*gwtypes.OrderPage, error)
	// CreateOrder stores the submitted lines and returns the assigned order.
	CreateOrder(ctx context.Context, lines []gwtypes.NewOrderLine) (*gwtypes.Order, error)
}
