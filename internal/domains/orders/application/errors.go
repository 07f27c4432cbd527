package application

import (
	"errors"
	"fmt"

	"github.com/skystore/storefront/internal/domains/orders/domain"
)

// ErrInvalidInput signals the submitted lines violated an order invariant.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoLines) ||
		errors.Is(err, domain.ErrEmptyProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNonPositivePrice) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
