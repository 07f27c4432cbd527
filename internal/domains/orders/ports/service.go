package ports

import (
	"context"

	"github.com/skystore/storefront/internal/domains/orders/domain"
)

// OrderPage is one slice of the order listing.
type OrderPage struct {
	Page     int
	PageSize int
	Total    int64
	Items    []*domain.Order
}

// Service exposes the order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, lines []domain.OrderLine) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, page, pageSize int) (*OrderPage, error)
	GetOrderByProductID(ctx context.Context, productID string) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, lines []domain.OrderLine) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}
