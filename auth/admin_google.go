package auth

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

// GoogleAdminLoginHandler handles back-office login via Google. New admins
// land in a pending state until the super admin approves them.
func GoogleAdminLoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		ctx := context.Background()

		// Verify the token AND check for revocation
		token, err := firebaseAuth.VerifyIDTokenAndCheckRevoked(ctx, req.IDToken)
		if err != nil {
			log.Printf("❌ ID token verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or revoked ID token"})
			return
		}
		if token.Audience != projectID {
			log.Printf("❌ Token audience mismatch: got %q", token.Audience)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token audience"})
			return
		}

		email, ok := token.Claims["email"].(string)
		if !ok || email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not found in token"})
			return
		}
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)
		firebaseUserID := token.UID

		// Super admin shortcut
		if email == os.Getenv("SUPER_ADMIN_EMAIL") {
			respondWithToken(c, email, "superadmin", firebaseUserID, name, picture)
			return
		}

		// Regular admin flow
		var admin models.Admin
		err = db.Where("email = ?", email).First(&admin).Error
		if err == gorm.ErrRecordNotFound {
			admin = models.Admin{
				Email:    email,
				Name:     name,
				Picture:  picture,
				Approved: false,
			}
			if err := db.Create(&admin).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register admin"})
				return
			}
			log.Printf("📝 New admin registered: %s (pending approval)", email)
			c.JSON(http.StatusForbidden, gin.H{"error": "Pending approval by super admin"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		// Update profile if changed, then reload the Approved flag
		if err := db.Model(&admin).Updates(models.Admin{Name: name, Picture: picture}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update admin info"})
			return
		}
		if err := db.First(&admin, admin.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if !admin.Approved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Pending approval by super admin"})
			return
		}

		respondWithToken(c, email, "admin", firebaseUserID, name, picture)
	}
}

func respondWithToken(c *gin.Context, email, role, userID, name, picture string) {
	c.JSON(http.StatusOK, gin.H{
		"token":   issueJWT(email, role, userID),
		"role":    role,
		"email":   email,
		"name":    name,
		"picture": picture,
	})
}
