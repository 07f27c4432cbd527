package ports

import (
	"context"

	gwtypes "github.com/skystore/storefront/internal/domains/gateway/application/types"
)

// Service defines the gateway use cases exposed to the HTTP adapter.
type Service interface {
	GetProduct(ctx context.Context, id string) (*gwtypes.Product, error)
	CreateProduct(ctx context.Context, input gwtypes.CreateProductInput) (string, error)
	DeleteProduct(ctx context.Context, id string) (string, error)
	GetOrder(ctx context.Context, id int64) (*gwtypes.EnrichedOrder, error)
	ListOrders(ctx context.Context, page, pageSize int) (*gwtypes.EnrichedOrderPage, error)
	CreateOrder(ctx context.Context, input gwtypes.CreateOrderInput) (int64, error)
}
