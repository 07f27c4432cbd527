package application

import (
	"errors"
	"fmt"

	"github.com/skystore/storefront/internal/domains/products/domain"
)

// ErrInvalidInput signals the payload violated a catalog invariant.
var ErrInvalidInput = errors.New("invalid product input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyID) ||
		errors.Is(err, domain.ErrEmptyTitle) ||
		errors.Is(err, domain.ErrNegativeCapacity) ||
		errors.Is(err, domain.ErrNegativeSpeed) ||
		errors.Is(err, domain.ErrNegativeStock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
