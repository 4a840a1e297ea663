package contactControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// POST /contact
func SubmitMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		message := models.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Phone:   input.Phone,
			Subject: input.Subject,
			Body:    input.Body,
		}
		if err := db.Create(&message).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Message received"})
	}
}

// GET /admin/messages
func ListMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var messages []models.ContactMessage
		if err := db.Order("created_at DESC").Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		c.JSON(http.StatusOK, messages)
	}
}

// DELETE /admin/messages/:id
func DeleteMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
			return
		}

		if err := db.Delete(&models.ContactMessage{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
	}
}
