package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		// Regular user Google login
		authGroup.POST("/google-user", auth.GoogleUserLoginHandler(db))

		// Back-office Google login (pending-approval flow)
		authGroup.POST("/google-admin", auth.GoogleAdminLoginHandler(db))
	}
}
