package adminController

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

// approvalRequest identifies the account by the email Google login recorded.
type approvalRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ListPendingAdmins returns the accounts still waiting for approval, oldest
// registration first.
func ListPendingAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []models.Admin
		if err := db.Where("approved = ?", false).Order("id ASC").Find(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending admins"})
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}

// ApproveAdmin flips the approved flag and returns the updated record.
// Approving an already-approved account is a no-op, not an error.
func ApproveAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req approvalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}

		var admin models.Admin
		if err := db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No admin with that email"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if !admin.Approved {
			if err := db.Model(&admin).Update("approved", true).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve admin"})
				return
			}
			admin.Approved = true
			log.Printf("✅ Admin approved: %s", admin.Email)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Admin approved", "admin": admin})
	}
}

// RejectAdmin deletes the account. A rejected admin who signs in again lands
// back in the pending queue.
func RejectAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req approvalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}

		res := db.Where("email = ?", req.Email).Delete(&models.Admin{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject admin"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No admin with that email"})
			return
		}

		log.Printf("🗑️ Admin rejected: %s", req.Email)
		c.JSON(http.StatusOK, gin.H{"message": "Admin rejected"})
	}
}
