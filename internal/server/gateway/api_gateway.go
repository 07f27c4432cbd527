package gatewayserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skystore/storefront/internal/domains/gateway/adapters/http/mapper"
	"github.com/skystore/storefront/internal/domains/gateway/ports"
	sharederrors "github.com/skystore/storefront/internal/shared/errors"
)

// GatewayAPI wires HTTP transport with the storefront gateway service.
type GatewayAPI struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewGatewayAPI creates a GatewayAPI backed by the provided service.
func NewGatewayAPI(service ports.Service) GatewayAPI {
	return GatewayAPI{service: service, responder: newResponder()}
}

// Get /products/:productId
// Load one product from the catalog
func (api *GatewayAPI) GetProduct(c *gin.Context) {
	product, err := api.service.GetProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromProduct(product))
}

// Post /products
// Create or overwrite a catalog product
func (api *GatewayAPI) CreateProduct(c *gin.Context) {
	var payload mapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	id, err := api.service.CreateProduct(c.Request.Context(), mapper.ToCreateProductInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Delete /products/:productId
// Remove a product unless an order still references it
func (api *GatewayAPI) DeleteProduct(c *gin.Context) {
	if _, err := api.service.DeleteProduct(c.Request.Context(), c.Param("productId")); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /orders/:orderId
// Load one order enriched with product data
func (api *GatewayAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromEnrichedOrder(order))
}

// Get /orders
// List enriched orders page by page
func (api *GatewayAPI) ListOrders(c *gin.Context) {
	page := queryInt(c, "page", 0)
	pageSize := queryInt(c, "page_size", 0)
	result, err := api.service.ListOrders(c.Request.Context(), page, pageSize)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromEnrichedOrderPage(result))
}

// Post /orders
// Place an order after verifying every referenced product exists
func (api *GatewayAPI) CreateOrder(c *gin.Context) {
	var payload mapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	input := mapper.ToCreateOrderInput(payload, c.GetHeader("Idempotency-Key"))
	id, err := api.service.CreateOrder(c.Request.Context(), input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("path parameter "+name+" must be an integer"))
		return 0, false
	}
	return id, true
}

// queryInt tolerates absent or malformed paging values; the application
// layer substitutes the defaults for anything non-positive.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
