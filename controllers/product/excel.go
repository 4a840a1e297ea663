package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/models"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// Column layout shared by import and export:
// ID | Name | Description | Material | Price | Stock | CategoryID | ImageURLs

func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			name := get(1)
			description := get(2)
			material := get(3)
			price, priceErr := decimal.NewFromString(get(4))
			stock, stockErr := strconv.Atoi(get(5))
			categoryIDStr := get(6)
			imageURLs := get(7)

			if name == "" || priceErr != nil || stockErr != nil {
				skippedCount++
				continue
			}

			var categoryID *uint
			if categoryIDStr != "" {
				if cid, err := strconv.ParseUint(categoryIDStr, 10, 64); err == nil {
					id := uint(cid)
					categoryID = &id
				}
			}

			var images []models.ProductImage
			for pos, url := range strings.Split(imageURLs, ",") {
				url = strings.TrimSpace(url)
				if url != "" {
					images = append(images, models.ProductImage{URL: url, Position: pos})
				}
			}

			// Existing ID updates in place; everything else creates.
			if idStr != "" {
				if id, err := strconv.ParseUint(idStr, 10, 64); err == nil {
					var existing models.Product
					if db.First(&existing, id).Error == nil {
						existing.Name = name
						existing.Description = description
						existing.Material = material
						existing.Price = price
						existing.Stock = stock
						existing.CategoryID = categoryID
						if err := db.Save(&existing).Error; err != nil {
							skippedCount++
							continue
						}
						updatedCount++
						continue
					}
				}
			}

			product := models.Product{
				Name:        name,
				Description: description,
				Material:    material,
				Price:       price,
				Stock:       stock,
				CategoryID:  categoryID,
				Images:      images,
			}
			if err := db.Create(&product).Error; err != nil {
				skippedCount++
				continue
			}
			createdCount++
		}

		c.JSON(http.StatusOK, gin.H{
			"created": createdCount,
			"updated": updatedCount,
			"skipped": skippedCount,
		})
	}
}

func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Images", func(q *gorm.DB) *gorm.DB {
			return q.Order("position ASC")
		}).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"ID", "Name", "Description", "Material", "Price", "Stock",
			"CategoryID", "ImageURLs", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, p := range products {
			row := sheet.AddRow()

			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Material)
			row.AddCell().SetValue(p.Price.StringFixed(2))
			row.AddCell().SetValue(p.Stock)

			if p.CategoryID != nil {
				row.AddCell().SetValue(*p.CategoryID)
			} else {
				row.AddCell().SetValue("")
			}

			var urls []string
			for _, img := range p.Images {
				urls = append(urls, img.URL)
			}
			row.AddCell().SetValue(strings.Join(urls, ","))

			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
