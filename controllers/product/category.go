package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

const categoryUploadDir = "/var/www/lumiere/uploads/categories"
const categoryPublicPath = "/uploads/categories"

func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		description := c.PostForm("description")

		var imageURL string
		if file, err := c.FormFile("image"); err == nil {
			if err := os.MkdirAll(categoryUploadDir, os.ModePerm); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
				return
			}

			ext := filepath.Ext(file.Filename)
			base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
			base = strings.ReplaceAll(base, " ", "_")

			filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
			savePath := filepath.Join(categoryUploadDir, filename)

			if err := c.SaveUploadedFile(file, savePath); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
				return
			}
			imageURL = fmt.Sprintf("%s/%s", categoryPublicPath, filename)
		}

		category := models.Category{
			Name:        name,
			Description: description,
			Image:       imageURL,
		}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}

		c.JSON(http.StatusCreated, category)
	}
}

func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		if name := c.PostForm("name"); name != "" {
			category.Name = name
		}
		if description := c.PostForm("description"); description != "" {
			category.Description = description
		}
		if file, err := c.FormFile("image"); err == nil {
			if err := os.MkdirAll(categoryUploadDir, os.ModePerm); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
				return
			}
			filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(),
				strings.ReplaceAll(filepath.Base(file.Filename), " ", "_"))
			savePath := filepath.Join(categoryUploadDir, filename)
			if err := c.SaveUploadedFile(file, savePath); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
				return
			}
			category.Image = fmt.Sprintf("%s/%s", categoryPublicPath, filename)
		}

		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GetCategoriesWithProducts is the storefront browse view.
func GetCategoriesWithProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Preload("Products.Images", func(q *gorm.DB) *gorm.DB {
			return q.Order("position ASC")
		}).Preload("Products").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			// Detach products instead of deleting them with the category.
			if err := tx.Model(&models.Product{}).
				Where("category_id = ?", category.ID).
				Update("category_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
