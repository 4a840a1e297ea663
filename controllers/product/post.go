package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const productUploadDir = "/var/www/lumiere/uploads/products"
const productPublicPath = "/uploads/products"

// CreateProduct creates a new product with an ordered image gallery.
// Multipart form: name, price, stock plus optional description, material,
// category_id and any number of "images" files (gallery order = upload order).
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		stockStr := c.PostForm("stock")
		if name == "" || priceStr == "" || stockStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, price, and stock are required"})
			return
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
			return
		}

		// Optional fields
		description := c.PostForm("description")
		material := c.PostForm("material")

		var categoryID *uint
		if cidStr := c.PostForm("category_id"); cidStr != "" {
			cid, err := strconv.ParseUint(cidStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			var category models.Category
			if err := db.First(&category, cid).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			id := uint(cid)
			categoryID = &id
		}

		// Image uploads (at least one required for the display gallery)
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
			return
		}
		files := form.File["images"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image is required"})
			return
		}

		if err := os.MkdirAll(productUploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create upload folder: %v", err)})
			return
		}

		var images []models.ProductImage
		for i, file := range files {
			filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(),
				strings.ReplaceAll(filepath.Base(file.Filename), " ", "_"))
			savePath := filepath.Join(productUploadDir, filename)

			if err := c.SaveUploadedFile(file, savePath); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
				return
			}
			images = append(images, models.ProductImage{
				URL:      fmt.Sprintf("%s/%s", productPublicPath, filename),
				Position: i,
			})
		}

		newProduct := models.Product{
			Name:        name,
			Description: description,
			Material:    material,
			Price:       price,
			Stock:       stock,
			CategoryID:  categoryID,
			Images:      images,
		}

		if err := db.Create(&newProduct).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, newProduct)
	}
}
