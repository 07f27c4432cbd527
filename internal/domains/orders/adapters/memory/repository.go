package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/skystore/storefront/internal/domains/orders/domain"
	"github.com/skystore/storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order store for development and tests.
type Repository struct {
	mu         sync.RWMutex
	orders     map[int64]domain.Order
	nextOrder  int64
	nextLine   int64
	now        func() time.Time
}

// NewRepository constructs an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		orders: map[int64]domain.Order{},
		now:    time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Create assigns order and line ids and stores a copy of the aggregate.
func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextOrder++
	stored := cloneOrder(*order)
	stored.ID = r.nextOrder
	for i := range stored.Details {
		r.nextLine++
		stored.Details[i].ID = r.nextLine
	}
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt
	r.orders[stored.ID] = stored

	result := cloneOrder(stored)
	return &result, nil
}

// GetByID returns a copy of the stored order or ports.ErrNotFound.
func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	result := cloneOrder(stored)
	return &result, nil
}

// List pages through orders in ascending id order.
func (r *Repository) List(_ context.Context, page, pageSize int) ([]*domain.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.orders))
	for id := range r.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := int64(len(ids))
	start := (page - 1) * pageSize
	if start >= len(ids) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(ids) {
		end = len(ids)
	}

	items := make([]*domain.Order, 0, end-start)
	for _, id := range ids[start:end] {
		order := cloneOrder(r.orders[id])
		items = append(items, &order)
	}
	return items, total, nil
}

// FindByProductID scans for any order referencing the product.
func (r *Repository) FindByProductID(_ context.Context, productID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.orders))
	for id := range r.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		order := r.orders[id]
		for _, line := range order.Details {
			if line.ProductID == productID {
				result := cloneOrder(order)
				return &result, nil
			}
		}
	}
	return nil, nil
}

// Update replaces the stored line items, assigning ids to new lines.
func (r *Repository) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	stored.Details = cloneLines(order.Details)
	for i := range stored.Details {
		if stored.Details[i].ID == 0 {
			r.nextLine++
			stored.Details[i].ID = r.nextLine
		}
	}
	stored.UpdatedAt = r.now()
	r.orders[order.ID] = stored

	result := cloneOrder(stored)
	return &result, nil
}

// Delete removes the order or reports ports.ErrNotFound.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func cloneOrder(order domain.Order) domain.Order {
	order.Details = cloneLines(order.Details)
	return order
}

func cloneLines(lines []domain.OrderLine) []domain.OrderLine {
	return append([]domain.OrderLine{}, lines...)
}
