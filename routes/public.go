package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/lumiere-jewels/jewelry-api/controllers/admin"
	blogControllers "github.com/lumiere-jewels/jewelry-api/controllers/blog"
	chatbotControllers "github.com/lumiere-jewels/jewelry-api/controllers/chatbot"
	contactControllers "github.com/lumiere-jewels/jewelry-api/controllers/contact"
	productControllers "github.com/lumiere-jewels/jewelry-api/controllers/product"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers the storefront endpoints that need no login.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB, svcs Services) {
	// ──────────────── Catalog ────────────────
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/categories", productControllers.GetCategoriesWithProducts(db))

	// ──────────────── Homepage banners ────────────────
	r.GET("/banners", adminController.GetBanners(db))

	// ──────────────── Blog ────────────────
	r.GET("/blog", blogControllers.ListPosts(db))
	r.GET("/blog/:id", blogControllers.GetPost(db))

	// ──────────────── Contact & chatbot ────────────────
	r.POST("/contact", contactControllers.SubmitMessage(db))
	r.POST("/chatbot", chatbotControllers.Ask(svcs.Chatbot))
}
