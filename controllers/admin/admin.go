package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

// GetAllAdmins lists every back-office account, pending ones first, for the
// super admin's management view.
func GetAllAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admins []models.Admin
		if err := db.Order("approved ASC, email ASC").Find(&admins).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admins"})
			return
		}
		c.JSON(http.StatusOK, admins)
	}
}
