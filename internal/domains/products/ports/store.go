package ports

import (
	"context"
	"errors"
	"iter"

	"github.com/skystore/storefront/internal/domains/products/domain"
)

var ErrNotFound = errors.New("product not found")

// Store is the keyed document store backing the catalog. There are no
// secondary indices; every access path goes through the product id.
type Store interface {
	// Get loads one document, failing with ErrNotFound on a missing key.
	Get(ctx context.Context, id string) (*domain.Product, error)
	// List yields stored documents lazily. With no ids it scans the whole
	// keyspace in backend-defined order; with ids it looks each one up and
	// silently skips the ones that do not exist.
	List(ctx context.Context, ids []string) iter.Seq2[*domain.Product, error]
	// Create upserts the document under product.ID, overwriting silently.
	Create(ctx context.Context, product *domain.Product) error
	// Delete removes the key, failing with ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
	// DecrementStock atomically lowers in_stock by amount and returns the
	// new value. No floor is enforced; the result may be negative.
	DecrementStock(ctx context.Context, id string, amount int) (int, error)
}
