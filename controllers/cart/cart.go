package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/services"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// POST /cart
func AddCartItem(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := svc.AddItem(userID, input.ProductID, input.Quantity)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// GET /cart
func GetUserCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := svc.GetCart(userID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// PATCH /cart/:id
func UpdateCartItem(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := svc.UpdateQuantity(userID, uint(itemID), input.Quantity)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/:id
func DeleteCartItem(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		if err := svc.RemoveItem(userID, uint(itemID)); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /cart
func ClearUserCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if err := svc.ClearCart(userID); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		cart, err := svc.GetCart(userID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart.Items)
	}
}

// writeServiceError maps cart service errors onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	var oos *services.OutOfStockError
	switch {
	case errors.As(err, &oos):
		c.JSON(http.StatusConflict, gin.H{
			"error":      oos.Error(),
			"product_id": oos.ProductID,
			"available":  oos.Available,
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your cart item"})
	case errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
