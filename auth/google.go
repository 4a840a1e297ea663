package auth

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lumiere-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

// ---------------------------------------------
// GOOGLE USER LOGIN
// ---------------------------------------------

// POST /auth/google-user
func GoogleUserLoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		ctx := context.Background()

		// Verify Firebase token
		token, err := firebaseAuth.VerifyIDTokenAndCheckRevoked(ctx, req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Firebase ID token"})
			return
		}
		if token.Audience != projectID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token audience"})
			return
		}

		// Extract user info
		email, _ := token.Claims["email"].(string)
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)
		firebaseUserID := token.UID

		// Fetch or create user (with an empty cart on first login)
		var user models.User
		err = db.Preload("Cart.Items").Where("id = ?", firebaseUserID).First(&user).Error

		if err == gorm.ErrRecordNotFound {
			user = models.User{
				ID:       firebaseUserID,
				Email:    email,
				Name:     name,
				Picture:  picture,
				Provider: "google",
				Cart:     models.Cart{UserID: firebaseUserID},
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else if err == nil {
			db.Model(&user).Updates(models.User{Name: name, Picture: picture})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   issueJWT(email, "user", user.ID),
		})
	}
}

// issueJWT generates a signed session token carrying the role claim the
// middleware checks on every protected route.
func issueJWT(email, role, userID string) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return ""
	}
	return signedToken
}
