package mapper

import (
	"github.com/skystore/storefront/internal/domains/products/domain"
)

// Product is the transport-layer shape of a catalog document.
type Product struct {
	ID                string `json:"id" binding:"required"`
	Title             string `json:"title" binding:"required"`
	PassengerCapacity int    `json:"passenger_capacity" binding:"gte=0"`
	MaximumSpeed      int    `json:"maximum_speed" binding:"gte=0"`
	InStock           int    `json:"in_stock" binding:"gte=0"`
}

// ProductList wraps a catalog listing.
type ProductList struct {
	Items []Product `json:"items"`
}

// ToDomainProduct converts a transport product into the catalog domain model.
func ToDomainProduct(product Product) (*domain.Product, error) {
	return domain.NewProduct(
		product.ID,
		product.Title,
		product.PassengerCapacity,
		product.MaximumSpeed,
		product.InStock,
	)
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *domain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:                product.ID,
		Title:             product.Title,
		PassengerCapacity: product.PassengerCapacity,
		MaximumSpeed:      product.MaximumSpeed,
		InStock:           product.InStock,
	}
}

// FromDomainProducts converts a listing to the transport representation.
func FromDomainProducts(products []*domain.Product) ProductList {
	list := ProductList{Items: make([]Product, 0, len(products))}
	for _, product := range products {
		list.Items = append(list.Items, FromDomainProduct(product))
	}
	return list
}
