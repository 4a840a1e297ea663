package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/lumiere-jewels/jewelry-api/controllers/order"
	"github.com/lumiere-jewels/jewelry-api/middleware"
)

// SetupOrderRoutes registers the customer-facing order lifecycle.
func SetupOrderRoutes(r *gin.Engine, svcs Services) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Create a new order from the cart
		orders.POST("", orderControllers.PlaceOrderHandler(svcs.Order))

		// Fetch the caller's orders
		orders.GET("", orderControllers.GetUserOrdersHandler(svcs.Order))
		orders.GET("/:id", orderControllers.GetOrderHandler(svcs.Order))

		// Cancel while still PENDING (restocks)
		orders.POST("/:id/cancel", orderControllers.CancelOrderHandler(svcs.Order))

		// Submit to the store operator (PENDING → CONFIRMED on email success)
		orders.POST("/:id/notify", orderControllers.NotifyOrderHandler(svcs.Order))
	}
}
