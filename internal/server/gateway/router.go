// Package gatewayserver exposes the storefront gateway over HTTP.
package gatewayserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all gateway routes registered.
func NewRouter(api GatewayAPI) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/products/:productId", api.GetProduct)
	router.POST("/products", api.CreateProduct)
	router.DELETE("/products/:productId", api.DeleteProduct)

	router.GET("/orders", api.ListOrders)
	router.POST("/orders", api.CreateOrder)
	router.GET("/orders/:orderId", api.GetOrder)

	return router
}
