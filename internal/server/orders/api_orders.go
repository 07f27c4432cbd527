package ordersserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skystore/storefront/internal/domains/orders/adapters/http/mapper"
	"github.com/skystore/storefront/internal/domains/orders/application"
	"github.com/skystore/storefront/internal/domains/orders/domain"
	"github.com/skystore/storefront/internal/domains/orders/ports"
	sharederrors "github.com/skystore/storefront/internal/shared/errors"
)

const (
	defaultPage     = 1
	defaultPageSize = 30
	maxPageSize     = 100
)

// OrdersAPI wires HTTP transport with the orders bounded context service and workflows.
type OrdersAPI struct {
	service   ports.Service
	placement ports.PlacementOrchestrator
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ports.Service, placement ports.PlacementOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, placement: placement}
}

// Get /orders/:orderId
// Load a single order with its line items
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		api.respondServiceError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

// Get /orders
// List orders page by page
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	page := queryInt(c, "page", defaultPage)
	pageSize := queryInt(c, "page_size", defaultPageSize)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	result, err := api.service.ListOrders(c.Request.Context(), page, pageSize)
	if err != nil {
		api.respondServiceError(c, err, 0)
		return
	}
	c.JSON(http.StatusOK, mapper.FromOrderPage(result))
}

// Get /orders-by-product/:productId
// Find any order referencing the product
func (api *OrdersAPI) GetOrderByProductID(c *gin.Context) {
	productID := c.Param("productId")
	order, err := api.service.GetOrderByProductID(c.Request.Context(), productID)
	if err != nil {
		api.respondServiceError(c, err, 0)
		return
	}
	if order == nil {
		sharederrors.Respond(c, sharederrors.ErrNotFound.WithDetail(
			fmt.Sprintf("no order references product %s", productID)))
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

// Post /orders
// Store a new order
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload mapper.OrderMutation
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	order, err := api.placeOrder(c.Request.Context(), mapper.ToDomainLines(payload))
	if err != nil {
		api.respondServiceError(c, err, 0)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomainOrder(order))
}

// Put /orders/:orderId
// Replace the line items of an existing order
func (api *OrdersAPI) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload mapper.OrderMutation
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	order, err := api.service.UpdateOrder(c.Request.Context(), id, mapper.ToDomainLines(payload))
	if err != nil {
		api.respondServiceError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

// Delete /orders/:orderId
// Remove an order
func (api *OrdersAPI) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		api.respondServiceError(c, err, id)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *OrdersAPI) placeOrder(ctx context.Context, lines []domain.OrderLine) (*domain.Order, error) {
	if api.placement != nil {
		return api.placement.PlaceOrder(ctx, lines)
	}
	return api.service.CreateOrder(ctx, lines)
}

func (api *OrdersAPI) respondServiceError(c *gin.Context, err error, id int64) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		sharederrors.Respond(c, sharederrors.ErrNotFound.WithDetail(notFoundMessage(id)))
	case errors.Is(err, application.ErrInvalidInput):
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
	default:
		sharederrors.RespondError(c, err)
	}
}

func notFoundMessage(id int64) string {
	return fmt.Sprintf("Order with id %d not found", id)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail(
			fmt.Sprintf("path parameter %s must be an integer", name)))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
