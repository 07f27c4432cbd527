package memory

import (
	"context"
	"sync"
	"time"

	"github.com/skystore/storefront/internal/domains/gateway/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps order-placement idempotency records in memory. The
// gateway runs one of these per process; records live for the lifetime of
// the process, which covers how long clients retry a failed create.
type IdempotencyStore struct {
	mu    sync.RWMutex
	byKey map[string]ports.IdempotencyRecord
	now   func() time.Time
}

// NewIdempotencyStore constructs an empty store.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		byKey: map[string]ports.IdempotencyRecord{},
		now:   time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *IdempotencyStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Get returns the record for the key, or nil when the key has never placed
// an order.
func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.byKey[key]; ok {
		return clone(record), nil
	}
	return nil, nil
}

// Save persists the record. A key already bound to the same payload and
// order is a replay and returns the stored record; a key bound to anything
// else is a conflict.
func (s *IdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byKey[record.Key]; ok {
		if samePlacement(existing, record) {
			return clone(existing), nil
		}
		return clone(existing), ports.ErrIdempotencyConflict
	}

	now := s.now()
	record.CreatedAt = now
	record.UpdatedAt = now
	s.byKey[record.Key] = record
	return clone(record), nil
}

// samePlacement reports whether two records describe the same order placed
// from the same payload. LineCount is derived from the hashed lines and does
// not participate in identity.
func samePlacement(a, b ports.IdempotencyRecord) bool {
	return a.LinesHash == b.LinesHash && a.OrderID == b.OrderID
}

func clone(record ports.IdempotencyRecord) *ports.IdempotencyRecord {
	return &record
}
