package redis

import (
	"context"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/skystore/storefront/internal/domains/products/domain"
	"github.com/skystore/storefront/internal/domains/products/ports"
)

var _ ports.Store = (*Store)(nil)

const (
	keyPrefix = "products:"
	// scanCount sizes each SCAN round-trip during full listings.
	scanCount = 1000
)

// Store persists product documents as Redis hashes keyed by product id.
// The client is injected and shared across requests; the caller owns its lifecycle.
type Store struct {
	client redis.UniversalClient
}

// NewStore wires a Redis-backed document store.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

func formatKey(productID string) string {
	return keyPrefix + productID
}

// Get loads one document, mapping an empty hash to ports.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*domain.Product, error) {
	fields, err := s.client.HGetAll(ctx, formatKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %q: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, id)
	}
	return fromHash(fields)
}

// List yields documents lazily. With no ids it SCANs the product keyspace so
// full listings never materialize the keyspace in memory; with ids it looks
// each key up and skips empty hashes without reporting them.
func (s *Store) List(ctx context.Context, ids []string) iter.Seq2[*domain.Product, error] {
	if len(ids) == 0 {
		return s.scanAll(ctx)
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, formatKey(id))
	}
	return s.lookupKeys(ctx, keys)
}

func (s *Store) scanAll(ctx context.Context) iter.Seq2[*domain.Product, error] {
	return func(yield func(*domain.Product, error) bool) {
		iterator := s.client.Scan(ctx, 0, keyPrefix+"*", scanCount).Iterator()
		for iterator.Next(ctx) {
			if !s.yieldKey(ctx, iterator.Val(), yield) {
				return
			}
		}
		if err := iterator.Err(); err != nil {
			yield(nil, fmt.Errorf("redis scan: %w", err))
		}
	}
}

func (s *Store) lookupKeys(ctx context.Context, keys []string) iter.Seq2[*domain.Product, error] {
	return func(yield func(*domain.Product, error) bool) {
		for _, key := range keys {
			if !s.yieldKey(ctx, key, yield) {
				return
			}
		}
	}
}

// yieldKey loads one hash and forwards it when present. Missing keys are
// skipped silently; that asymmetry with Get is part of the store contract.
func (s *Store) yieldKey(ctx context.Context, key string, yield func(*domain.Product, error) bool) bool {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return yield(nil, fmt.Errorf("redis hgetall %q: %w", key, err))
	}
	if len(fields) == 0 {
		return true
	}
	product, err := fromHash(fields)
	if err != nil {
		return yield(nil, err)
	}
	return yield(product, nil)
}

// Create upserts the document hash. No uniqueness check, no concurrency guard.
func (s *Store) Create(ctx context.Context, product *domain.Product) error {
	if err := s.client.HSet(ctx, formatKey(product.ID), toHash(product)).Err(); err != nil {
		return fmt.Errorf("redis hset %q: %w", product.ID, err)
	}
	return nil
}

// Delete removes the key, reporting ports.ErrNotFound when nothing was stored.
func (s *Store) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, formatKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis del %q: %w", id, err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s", ports.ErrNotFound, id)
	}
	return nil
}

// DecrementStock issues a single HINCRBY; the decrement is atomic on the
// backend and the result may go negative.
func (s *Store) DecrementStock(ctx context.Context, id string, amount int) (int, error) {
	value, err := s.client.HIncrBy(ctx, formatKey(id), "in_stock", int64(-amount)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis hincrby %q: %w", id, err)
	}
	return int(value), nil
}

func toHash(p *domain.Product) map[string]any {
	return map[string]any{
		"id":                 p.ID,
		"title":              p.Title,
		"passenger_capacity": p.PassengerCapacity,
		"maximum_speed":      p.MaximumSpeed,
		"in_stock":           p.InStock,
	}
}

func fromHash(fields map[string]string) (*domain.Product, error) {
	product := &domain.Product{
		ID:    fields["id"],
		Title: fields["title"],
	}
	var err error
	if product.PassengerCapacity, err = parseIntField(fields, "passenger_capacity"); err != nil {
		return nil, err
	}
	if product.MaximumSpeed, err = parseIntField(fields, "maximum_speed"); err != nil {
		return nil, err
	}
	if product.InStock, err = parseIntField(fields, "in_stock"); err != nil {
		return nil, err
	}
	return product, nil
}

func parseIntField(fields map[string]string, name string) (int, error) {
	raw, ok := fields[name]
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("product hash field %q: %w", name, err)
	}
	return value, nil
}
