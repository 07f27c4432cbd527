package mapper

import (
	"github.com/shopspring/decimal"

	gwtypes "github.com/skystore/storefront/internal/domains/gateway/application/types"
)

// Product is the transport-layer shape of a catalog document.
type Product struct {
	ID                string `json:"id" binding:"required"`
	Title             string `json:"title" binding:"required"`
	PassengerCapacity int    `json:"passenger_capacity" binding:"gte=0"`
	MaximumSpeed      int    `json:"maximum_speed" binding:"gte=0"`
	InStock           int    `json:"in_stock" binding:"gte=0"`
}

// NewOrderLine is one submitted order position.
type NewOrderLine struct {
	ProductID string          `json:"product_id" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest carries the submitted line items.
type CreateOrderRequest struct {
	Details []NewOrderLine `json:"details" binding:"required,min=1,dive"`
}

// EnrichedOrderLine is an order line joined with its product and image URL.
type EnrichedOrderLine struct {
	ID        int64           `json:"id"`
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Product   *Product        `json:"product"`
	Image     string          `json:"image"`
}

// EnrichedOrder is the denormalized order view served by the gateway.
type EnrichedOrder struct {
	ID      int64               `json:"id"`
	Details []EnrichedOrderLine `json:"details"`
}

// EnrichedOrderPage is one slice of the enriched order listing.
type EnrichedOrderPage struct {
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Total    int64           `json:"total"`
	Items    []EnrichedOrder `json:"items"`
}

// ToCreateProductInput converts the transport product to the application input.
func ToCreateProductInput(product Product) gwtypes.CreateProductInput {
	return gwtypes.CreateProductInput{
		ID:                product.ID,
		Title:             product.Title,
		PassengerCapacity: product.PassengerCapacity,
		MaximumSpeed:      product.MaximumSpeed,
		InStock:           product.InStock,
	}
}

// ToCreateOrderInput converts the transport order to the application input.
func ToCreateOrderInput(request CreateOrderRequest, idempotencyKey string) gwtypes.CreateOrderInput {
	input := gwtypes.CreateOrderInput{
		Details:        make([]gwtypes.NewOrderLine, 0, len(request.Details)),
		IdempotencyKey: idempotencyKey,
	}
	for _, line := range request.Details {
		input.Details = append(input.Details, gwtypes.NewOrderLine{
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return input
}

// FromProduct converts the application product view to the transport shape.
func FromProduct(product *gwtypes.Product) Product {
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

// FromEnrichedOrder converts the application order view to the transport shape.
func FromEnrichedOrder(order *gwtypes.EnrichedOrder) EnrichedOrder {
	if order == nil {
		return EnrichedOrder{}
	}
	result := EnrichedOrder{ID: order.ID, Details: make([]EnrichedOrderLine, 0, len(order.Details))}
	for _, line := range order.Details {
		product := FromProduct(line.Product)
		result.Details = append(result.Details, EnrichedOrderLine{
			ID:        line.ID,
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Product:   &product,
			Image:     line.Image,
		})
	}
	return result
}

// FromEnrichedOrderPage converts the application page view to the transport shape.
func FromEnrichedOrderPage(page *gwtypes.EnrichedOrderPage) EnrichedOrderPage {
	if page == nil {
		return EnrichedOrderPage{}
	}
	result := EnrichedOrderPage{
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
		Items:    make([]EnrichedOrder, 0, len(page.Items)),
	}
	for _, order := range page.Items {
		result.Items = append(result.Items, FromEnrichedOrder(order))
	}
	return result
}
