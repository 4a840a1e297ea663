package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/models"
	"github.com/lumiere-jewels/jewelry-api/services"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	ShippingName    string `json:"shipping_name" binding:"required"`
	ShippingPhone   string `json:"shipping_phone" binding:"required"`
	ShippingEmail   string `json:"shipping_email" binding:"required,email"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
	Note            string `json:"note"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Handlers --------

// POST /orders
func PlaceOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, emailSent, err := svc.CreateOrder(userID, services.ShippingInfo{
			Name:    req.ShippingName,
			Phone:   req.ShippingPhone,
			Email:   req.ShippingEmail,
			Address: req.ShippingAddress,
			Note:    req.Note,
		})
		if err != nil {
			writeOrderError(c, err)
			return
		}

		// The order stands either way; email_sent lets the UI explain a
		// missing confirmation mail.
		c.JSON(http.StatusCreated, gin.H{
			"order":      order,
			"email_sent": emailSent,
		})
	}
}

// GET /orders
func GetUserOrdersHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		orders, err := svc.ListUserOrders(userID)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func GetOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		orderID, err := parseOrderID(c)
		if err != nil {
			return
		}

		order, err := svc.GetOrder(orderID, userID)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /orders/:id/cancel
func CancelOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		orderID, err := parseOrderID(c)
		if err != nil {
			return
		}

		order, err := svc.CancelOrder(orderID, userID)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /orders/:id/notify
func NotifyOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		orderID, err := parseOrderID(c)
		if err != nil {
			return
		}

		order, err := svc.NotifyOrder(orderID, userID)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAllOrders()
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PATCH /admin/orders/:id
func UpdateOrderStatusHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := parseOrderID(c)
		if err != nil {
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := svc.AdminSetStatus(orderID, req.Status)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// -------- Helpers --------

func parseOrderID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, err
	}
	return uint(id), nil
}

// writeOrderError maps order service errors onto HTTP statuses.
func writeOrderError(c *gin.Context, err error) {
	var oos *services.OutOfStockError
	switch {
	case errors.As(err, &oos):
		c.JSON(http.StatusConflict, gin.H{
			"error":      oos.Error(),
			"product_id": oos.ProductID,
			"available":  oos.Available,
		})
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Status transition not allowed"})
	case errors.Is(err, models.ErrInvalidOrderStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
	case errors.Is(err, services.ErrEmailFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to notify the store, please try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
