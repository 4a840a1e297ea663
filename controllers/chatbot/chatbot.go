package chatbotControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/models"
	"github.com/lumiere-jewels/jewelry-api/services"
	"gorm.io/gorm"
)

type AskInput struct {
	Question string `json:"question" binding:"required"`
}

type FAQInput struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	Keywords string `json:"keywords" binding:"required"`
}

// POST /chatbot
func Ask(svc *services.ChatbotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AskInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if strings.TrimSpace(input.Question) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Question must not be empty"})
			return
		}

		answer, matched, err := svc.Answer(input.Question)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Chatbot unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"answer": answer, "matched": matched})
	}
}

// GET /admin/faq
func ListFAQ(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entries []models.FAQEntry
		if err := db.Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch FAQ entries"})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// POST /admin/faq
func CreateFAQ(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input FAQInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entry := models.FAQEntry{
			Question: input.Question,
			Answer:   input.Answer,
			Keywords: input.Keywords,
		}
		if err := db.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create FAQ entry"})
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// DELETE /admin/faq/:id
func DeleteFAQ(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid FAQ ID"})
			return
		}

		if err := db.Delete(&models.FAQEntry{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete FAQ entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "FAQ entry deleted"})
	}
}
