package ports

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyConflict indicates an Idempotency-Key was reused with a
// different order payload.
var ErrIdempotencyConflict = errors.New("idempotency conflict")

// IdempotencyRecord ties a client-supplied Idempotency-Key to the order it
// produced. LinesHash is the digest of the normalized order lines and
// LineCount their number, kept so a conflicting reuse can be told apart from
// a replay without refetching the order.
type IdempotencyRecord struct {
	Key       string
	LinesHash string
	LineCount int
	OrderID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IdempotencyStore remembers which orders an Idempotency-Key already placed
// so retried creations replay instead of duplicating.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save persists the record. Saving a key that already exists with the
	// same lines hash and order returns the stored record; a key pointing at
	// a different payload or order returns the stored record together with
	// ErrIdempotencyConflict.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
