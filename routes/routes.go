package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/services"
	"gorm.io/gorm"
)

// Services groups the injected application services the routes need beyond
// the raw DB handle.
type Services struct {
	Cart    *services.CartService
	Order   *services.OrderService
	Chatbot *services.ChatbotService
}

// SetupRoutes is the single entry-point that wires up public, auth, user,
// order, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, svcs Services) {
	// 1️⃣ Public routes (no middleware)
	SetupAuthRoutes(r, db)
	SetupPublicRoutes(r, db, svcs)

	// 2️⃣ User routes (JWT-protected)
	SetupUserRoutes(r, db, svcs)

	// 3️⃣ Order routes (JWT-protected)
	SetupOrderRoutes(r, svcs)

	// 4️⃣ Admin routes (JWT + role check)
	SetupAdminRoutes(r, db, svcs)
}
