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

// UpdateProduct updates an existing product by ID.
// Accepts the same fields as CreateProduct; any "images" files replace the
// whole gallery. Stock edits here are the admin restock path, separate from
// the order flow's decrement/increment.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Images").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		// Parse form fields (optional updates)
		if name := c.PostForm("name"); name != "" {
			product.Name = name
		}
		if description := c.PostForm("description"); description != "" {
			product.Description = description
		}
		if material := c.PostForm("material"); material != "" {
			product.Material = material
		}
		if priceStr := c.PostForm("price"); priceStr != "" {
			price, err := decimal.NewFromString(priceStr)
			if err != nil || price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = price
		}
		if stockStr := c.PostForm("stock"); stockStr != "" {
			stock, err := strconv.Atoi(stockStr)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			product.Stock = stock
		}
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
			product.CategoryID = &id
		}

		// Optional gallery replacement
		var newImages []models.ProductImage
		if form, err := c.MultipartForm(); err == nil {
			files := form.File["images"]
			if len(files) > 0 {
				if err := os.MkdirAll(productUploadDir, os.ModePerm); err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
					return
				}
				for i, file := range files {
					filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(),
						strings.ReplaceAll(filepath.Base(file.Filename), " ", "_"))
					savePath := filepath.Join(productUploadDir, filename)
					if err := c.SaveUploadedFile(file, savePath); err != nil {
						c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
						return
					}
					newImages = append(newImages, models.ProductImage{
						ProductID: product.ID,
						URL:       fmt.Sprintf("%s/%s", productPublicPath, filename),
						Position:  i,
					})
				}
			}
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if len(newImages) > 0 {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
					return err
				}
				product.Images = newImages
			}
			return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
