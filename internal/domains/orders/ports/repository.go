package ports

import (
	"context"
	"errors"

	"github.com/skystore/storefront/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders and their line items.
type Repository interface {
	// Create stores a new order and returns it with backend-assigned ids.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// GetByID loads one order with its lines, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// List returns one page of orders in id order plus the total count.
	// The repository owns the slicing; callers pass sanitized page values.
	List(ctx context.Context, page, pageSize int) ([]*domain.Order, int64, error)
	// FindByProductID returns any order referencing the product, or nil
	// when the product appears in no order.
	FindByProductID(ctx context.Context, productID string) (*domain.Order, error)
	// Update replaces the stored order's line items.
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// Delete removes the order and its lines, or reports ErrNotFound.
	Delete(ctx context.Context, id int64) error
}
