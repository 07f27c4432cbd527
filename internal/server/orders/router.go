// Package ordersserver exposes the orders bounded context over HTTP.
package ordersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all order routes registered.
func NewRouter(api OrdersAPI) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/orders", api.ListOrders)
	router.POST("/orders", api.CreateOrder)
	router.GET("/orders/:orderId", api.GetOrder)
	router.PUT("/orders/:orderId", api.UpdateOrder)
	router.DELETE("/orders/:orderId", api.DeleteOrder)
	// Kept outside /orders/:orderId to avoid a wildcard conflict in gin's route tree.
	router.GET("/orders-by-product/:productId", api.GetOrderByProductID)

	return router
}
