package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/lumiere-jewels/jewelry-api/controllers/admin"
	blogControllers "github.com/lumiere-jewels/jewelry-api/controllers/blog"
	cartControllers "github.com/lumiere-jewels/jewelry-api/controllers/cart"
	chatbotControllers "github.com/lumiere-jewels/jewelry-api/controllers/chatbot"
	contactControllers "github.com/lumiere-jewels/jewelry-api/controllers/contact"
	orderControllers "github.com/lumiere-jewels/jewelry-api/controllers/order"
	productControllers "github.com/lumiere-jewels/jewelry-api/controllers/product"
	userControllers "github.com/lumiere-jewels/jewelry-api/controllers/user"
	"github.com/lumiere-jewels/jewelry-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the back-office surface. Everything here
// requires a valid JWT with an admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, svcs Services) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ──────────────── Orders ────────────────
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(svcs.Order))
		admin.PATCH("/orders/:id", orderControllers.UpdateOrderStatusHandler(svcs.Order))
		admin.GET("/orders/ws", orderControllers.OrderWebSocketHandler)

		// ──────────────── Products ────────────────
		admin.POST("/products", productControllers.CreateProduct(db))
		admin.PUT("/products/:id", productControllers.UpdateProduct(db))
		admin.DELETE("/products/:id", productControllers.DeleteProduct(db))
		admin.POST("/products/import", productControllers.ImportProductsFromExcel(db))
		admin.GET("/products/export", productControllers.ExportProductsToExcel(db))

		// ──────────────── Categories ────────────────
		admin.GET("/categories", productControllers.GetAllCategories(db))
		admin.POST("/categories", productControllers.CreateCategory(db))
		admin.PUT("/categories/:id", productControllers.UpdateCategory(db))
		admin.DELETE("/categories/:id", productControllers.DeleteCategory(db))

		// ──────────────── Users ────────────────
		admin.GET("/users", userControllers.GetAllUsers(db))
		admin.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(svcs.Cart))

		// ──────────────── Admin management ────────────────
		admin.GET("/admins", adminController.GetAllAdmins(db))
		admin.GET("/admin-management/pending", adminController.ListPendingAdmins(db))
		admin.POST("/admin-management/approve", adminController.ApproveAdmin(db))
		admin.POST("/admin-management/reject", adminController.RejectAdmin(db))

		// ──────────────── Banners ────────────────
		admin.POST("/banner", adminController.UploadBanner(db))
		admin.DELETE("/banner/:id", adminController.DeleteBanner(db))

		// ──────────────── Blog ────────────────
		admin.POST("/blog", blogControllers.CreatePost(db))
		admin.PUT("/blog/:id", blogControllers.UpdatePost(db))
		admin.DELETE("/blog/:id", blogControllers.DeletePost(db))
		admin.DELETE("/blog/comments/:id", blogControllers.DeleteComment(db))

		// ──────────────── Contact messages ────────────────
		admin.GET("/messages", contactControllers.ListMessages(db))
		admin.DELETE("/messages/:id", contactControllers.DeleteMessage(db))

		// ──────────────── Chatbot FAQ ────────────────
		admin.GET("/faq", chatbotControllers.ListFAQ(db))
		admin.POST("/faq", chatbotControllers.CreateFAQ(db))
		admin.DELETE("/faq/:id", chatbotControllers.DeleteFAQ(db))
	}
}
