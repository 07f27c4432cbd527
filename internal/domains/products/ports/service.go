package ports

import (
	"context"

	"github.com/skystore/storefront/internal/domains/products/domain"
)

// Service exposes the catalog use cases to adapters.
type Service interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, ids []string) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, amount int) (int, error)
}
