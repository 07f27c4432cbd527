package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/skystore/storefront/internal/domains/orders/domain"
	"github.com/skystore/storefront/internal/domains/orders/ports"
)

// OrderLine is the transport-layer shape of one order position.
type OrderLine struct {
	ID        int64           `json:"id"`
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Order is the transport-layer shape of an order aggregate.
type Order struct {
	ID        int64       `json:"id"`
	Details   []OrderLine `json:"details"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderPage is the transport-layer shape of one listing slice.
type OrderPage struct {
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Total    int64   `json:"total"`
	Items    []Order `json:"items"`
}

// NewOrderLine is one submitted position; line ids are assigned on persist.
type NewOrderLine struct {
	ProductID string          `json:"product_id" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
}

// OrderMutation carries the submitted lines for creates and full updates.
type OrderMutation struct {
	Details []NewOrderLine `json:"details" binding:"required,min=1,dive"`
}

// ToDomainLines converts submitted lines into domain order lines.
func ToDomainLines(mutation OrderMutation) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(mutation.Details))
	for _, line := range mutation.Details {
		lines = append(lines, domain.OrderLine{
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return lines
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	result := Order{
		ID:        order.ID,
		Details:   make([]OrderLine, 0, len(order.Details)),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	for _, line := range order.Details {
		result.Details = append(result.Details, OrderLine{
			ID:        line.ID,
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return result
}

// FromOrderPage converts a listing slice to the transport representation.
func FromOrderPage(page *ports.OrderPage) OrderPage {
	if page == nil {
		return OrderPage{}
	}
	result := OrderPage{
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
		Items:    make([]Order, 0, len(page.Items)),
	}
	for _, order := range page.Items {
		result.Items = append(result.Items, FromDomainOrder(order))
	}
	return result
}
