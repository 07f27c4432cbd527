package productsserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skystore/storefront/internal/domains/products/adapters/http/mapper"
	"github.com/skystore/storefront/internal/domains/products/application"
	"github.com/skystore/storefront/internal/domains/products/ports"
	sharederrors "github.com/skystore/storefront/internal/shared/errors"
)

// ProductsAPI wires HTTP transport with the products bounded context service.
type ProductsAPI struct {
	service ports.Service
}

// NewProductsAPI creates a ProductsAPI backed by the provided service.
func NewProductsAPI(service ports.Service) ProductsAPI {
	return ProductsAPI{service: service}
}

// Get /products/:productId
// Find a catalog product by ID
func (api *ProductsAPI) GetProduct(c *gin.Context) {
	id := c.Param("productId")
	product, err := api.service.Get(c.Request.Context(), id)
	if err != nil {
		api.respondServiceError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProduct(product))
}

// Get /products
// List the catalog, optionally narrowed to a comma-separated id set
func (api *ProductsAPI) ListProducts(c *gin.Context) {
	ids := splitIDs(c.Query("ids"))
	products, err := api.service.List(c.Request.Context(), ids)
	if err != nil {
		api.respondServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProducts(products))
}

// Post /products
// Create or overwrite a catalog product
func (api *ProductsAPI) CreateProduct(c *gin.Context) {
	var payload mapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	product, err := mapper.ToDomainProduct(payload)
	if err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	if err := api.service.Create(c.Request.Context(), product); err != nil {
		api.respondServiceError(c, err, product.ID)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": product.ID})
}

// Delete /products/:productId
// Remove a catalog product
func (api *ProductsAPI) DeleteProduct(c *gin.Context) {
	id := c.Param("productId")
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		api.respondServiceError(c, err, id)
		return
	}
	c.Status(http.StatusNoContent)
}

type decrementStockRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

// Post /products/:productId/stock-decrements
// Consume stock for a product; the balance may go negative
func (api *ProductsAPI) DecrementStock(c *gin.Context) {
	id := c.Param("productId")
	var payload decrementStockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	remaining, err := api.service.DecrementStock(c.Request.Context(), id, payload.Amount)
	if err != nil {
		api.respondServiceError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "in_stock": remaining})
}

type orderPlacedLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type orderPlacedEvent struct {
	OrderID int64             `json:"order_id"`
	Lines   []orderPlacedLine `json:"lines"`
}

// Post /order-events
// Consume an order-placed event and decrement stock per line
func (api *ProductsAPI) HandleOrderPlaced(c *gin.Context) {
	var event orderPlacedEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		respondBindingError(c, err)
		return
	}
	for _, line := range event.Lines {
		if line.ProductID == "" || line.Quantity < 1 {
			continue
		}
		if _, err := api.service.DecrementStock(c.Request.Context(), line.ProductID, line.Quantity); err != nil {
			api.respondServiceError(c, err, line.ProductID)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

func (api *ProductsAPI) respondServiceError(c *gin.Context, err error, id string) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		sharederrors.Respond(c, sharederrors.ErrNotFound.WithDetail(notFoundMessage(id)))
	case errors.Is(err, application.ErrInvalidInput):
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
	default:
		sharederrors.RespondError(c, err)
	}
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("Product ID %s does not exist", id)
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
