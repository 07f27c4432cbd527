package memory

import (
	"context"
	"iter"
	"sync"

	"github.com/skystore/storefront/internal/domains/products/domain"
	"github.com/skystore/storefront/internal/domains/products/ports"
)

var _ ports.Store = (*Store)(nil)

// Store is an in-memory document store for development and tests. It mirrors
// the Redis adapter's contract, including silent skipping of missing ids.
type Store struct {
	mu        sync.RWMutex
	documents map[string]domain.Product
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{documents: map[string]domain.Product{}}
}

// Get returns the document stored under id or ports.ErrNotFound.
func (s *Store) Get(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	document, ok := s.documents[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := document
	return &copy, nil
}

// List yields every stored document when ids is empty, otherwise only the
// requested documents that exist.
func (s *Store) List(_ context.Context, ids []string) iter.Seq2[*domain.Product, error] {
	return func(yield func(*domain.Product, error) bool) {
		s.mu.RLock()
		snapshot := make([]domain.Product, 0, len(s.documents))
		if len(ids) == 0 {
			for _, document := range s.documents {
				snapshot = append(snapshot, document)
			}
		} else {
			for _, id := range ids {
				if document, ok := s.documents[id]; ok {
					snapshot = append(snapshot, document)
				}
			}
		}
		s.mu.RUnlock()

		for i := range snapshot {
			if !yield(&snapshot[i], nil) {
				return
			}
		}
	}
}

// Create upserts the document, overwriting any previous payload.
func (s *Store) Create(_ context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[product.ID] = *product
	return nil
}

// Delete removes the document or reports ports.ErrNotFound.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return ports.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}

// DecrementStock lowers in_stock under the store lock and returns the result.
// Matching the Redis HINCRBY semantics, a missing document starts from zero.
func (s *Store) DecrementStock(_ context.Context, id string, amount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	document := s.documents[id]
	document.ID = id
	document.InStock -= amount
	s.documents[id] = document
	return document.InStock, nil
}
