package application

import (
	"context"
	"fmt"

	"github.com/skystore/storefront/internal/domains/products/domain"
	"github.com/skystore/storefront/internal/domains/products/ports"
)

// Service orchestrates the catalog use cases on top of the document store.
type Service struct {
	store ports.Store
}

// NewService wires the catalog service with its store.
func NewService(store ports.Store) *Service {
	return &Service{store: store}
}

// Get loads a single product document.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// List materializes the store's lazy listing. An empty ids slice lists the
// whole catalog; a non-empty one returns only the documents that exist.
func (s *Service) List(ctx context.Context, ids []string) ([]*domain.Product, error) {
	var products []*domain.Product
	for product, err := range s.store.List(ctx, ids) {
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, product)
	}
	return products, nil
}

// Create validates and upserts the document. An existing document under the
// same id is overwritten without complaint.
func (s *Service) Create(ctx context.Context, product *domain.Product) error {
	if product == nil {
		return fmt.Errorf("%w: product is nil", ErrInvalidInput)
	}
	if err := product.Validate(); err != nil {
		return mapError(err)
	}
	return s.store.Create(ctx, product)
}

// Delete removes the document unconditionally. Referential checks against
// orders are the gateway's job; the catalog knows nothing about orders.
func (s *Service) Delete(ctx context.Context, id string) error {
	return mapError(s.store.Delete(ctx, id))
}

// DecrementStock lowers in_stock atomically and returns the new value.
func (s *Service) DecrementStock(ctx context.Context, id string, amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: decrement amount must not be negative", ErrInvalidInput)
	}
	return s.store.DecrementStock(ctx, id, amount)
}

var _ ports.Service = (*Service)(nil)
