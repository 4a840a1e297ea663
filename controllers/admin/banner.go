package adminController

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

const bannerUploadDir = "/var/www/lumiere/uploads/banners"
const bannerPublicPath = "/uploads/banners"

// UploadBanner - Save image locally and store the public URL in DB
func UploadBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
			return
		}

		if err := os.MkdirAll(bannerUploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		ext := filepath.Ext(file.Filename)
		base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
		base = strings.ReplaceAll(base, " ", "_")

		newFileName := fmt.Sprintf("%d_%s%s", time.Now().Unix(), base, ext)
		savePath := filepath.Join(bannerUploadDir, newFileName)

		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}

		banner := models.Banner{
			ImageURL: fmt.Sprintf("%s/%s", bannerPublicPath, newFileName),
			Link:     c.PostForm("link"),
		}
		if err := db.Create(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB save failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Banner uploaded", "data": banner})
	}
}

// GetBanners - List banners
func GetBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		if err := db.Order("created_at DESC").Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get banners"})
			return
		}
		c.JSON(http.StatusOK, banners)
	}
}

// DeleteBanner - Delete both DB record & local file
func DeleteBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var banner models.Banner

		if err := db.First(&banner, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if banner.ImageURL != "" {
			localPath := filepath.Join(bannerUploadDir, filepath.Base(banner.ImageURL))
			if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
				return
			}
		}

		if err := db.Delete(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete from database"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
	}
}
