package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyID          = errors.New("product id is required")
	ErrEmptyTitle       = errors.New("product title is required")
	ErrNegativeCapacity = errors.New("passenger capacity must be greater or equal to zero")
	ErrNegativeSpeed    = errors.New("maximum speed must be greater or equal to zero")
	ErrNegativeStock    = errors.New("in_stock must be greater or equal to zero")
)

// Product is the catalog document stored under a caller-assigned id.
type Product struct {
	ID                string
	Title             string
	PassengerCapacity int
	MaximumSpeed      int
	InStock           int
}

// NewProduct validates the invariants and builds a Product document.
func NewProduct(id, title string, passengerCapacity, maximumSpeed, inStock int) (*Product, error) {
	p := &Product{
		ID:                strings.TrimSpace(id),
		Title:             title,
		PassengerCapacity: passengerCapacity,
		MaximumSpeed:      maximumSpeed,
		InStock:           inStock,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces the document invariants.
// InStock may only go negative through atomic stock decrements, never at creation.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if p.PassengerCapacity < 0 {
		return ErrNegativeCapacity
	}
	if p.MaximumSpeed < 0 {
		return ErrNegativeSpeed
	}
	if p.InStock < 0 {
		return ErrNegativeStock
	}
	return nil
}
