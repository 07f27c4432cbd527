package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNoLines          = errors.New("order needs at least one line item")
	ErrEmptyProductID   = errors.New("line item product id is required")
	ErrInvalidQuantity  = errors.New("line item quantity must be greater than zero")
	ErrNonPositivePrice = errors.New("line item price must be greater than zero")
)

// OrderLine is one priced position of an order. Price is fixed-point; it is
// never coerced through a float on its way to or from storage.
type OrderLine struct {
	ID        int64
	ProductID string
	Price     decimal.Decimal
	Quantity  int
}

// Order is the aggregate owned by the order service. Line ids and the order
// id are assigned by the persistence layer.
type Order struct {
	ID        int64
	Details   []OrderLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder validates and builds an unpersisted order from submitted lines.
func NewOrder(lines []OrderLine) (*Order, error) {
	order := &Order{Details: append([]OrderLine{}, lines...)}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces the aggregate invariants across all line items.
func (o *Order) Validate() error {
	if len(o.Details) == 0 {
		return ErrNoLines
	}
	for _, line := range o.Details {
		if strings.TrimSpace(line.ProductID) == "" {
			return ErrEmptyProductID
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if !line.Price.IsPositive() {
			return ErrNonPositivePrice
		}
	}
	return nil
}

// ProductIDs returns the distinct product ids referenced by the order,
// in first-occurrence order.
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Details))
	ids := make([]string, 0, len(o.Details))
	for _, line := range o.Details {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}

// Total sums price*quantity across all lines in fixed-point arithmetic.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Details {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
