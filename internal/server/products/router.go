// Package productsserver exposes the products bounded context over HTTP.
package productsserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all product routes registered.
func NewRouter(api ProductsAPI) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/products", api.ListProducts)
	router.POST("/products", api.CreateProduct)
	router.GET("/products/:productId", api.GetProduct)
	router.DELETE("/products/:productId", api.DeleteProduct)
	router.POST("/products/:productId/stock-decrements", api.DecrementStock)
	router.POST("/order-events", api.HandleOrderPlaced)

	return router
}
