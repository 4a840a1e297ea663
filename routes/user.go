package routes

import (
	"github.com/gin-gonic/gin"
	blogControllers "github.com/lumiere-jewels/jewelry-api/controllers/blog"
	cartControllers "github.com/lumiere-jewels/jewelry-api/controllers/cart"
	userControllers "github.com/lumiere-jewels/jewelry-api/controllers/user"
	"github.com/lumiere-jewels/jewelry-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers profile, cart, and comment endpoints. Requires
// JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, svcs Services) {
	// ──────────────── User Profile ────────────────
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))
	}

	// ──────────────── Shopping Cart ────────────────
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("", cartControllers.GetUserCart(svcs.Cart))
		cartGroup.POST("", cartControllers.AddCartItem(svcs.Cart))
		cartGroup.PATCH("/:id", cartControllers.UpdateCartItem(svcs.Cart))
		cartGroup.DELETE("/:id", cartControllers.DeleteCartItem(svcs.Cart))
		cartGroup.DELETE("", cartControllers.ClearUserCart(svcs.Cart))
	}

	// ──────────────── Blog comments ────────────────
	comments := r.Group("/blog")
	comments.Use(middleware.ValidateToken)
	{
		comments.POST("/:id/comments", blogControllers.AddComment(db))
	}
}
