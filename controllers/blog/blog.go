package blogControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumiere-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

type CreatePostInput struct {
	Title      string `json:"title" binding:"required"`
	Body       string `json:"body" binding:"required"`
	CoverImage string `json:"cover_image"`
	AuthorName string `json:"author_name"`
}

type CommentInput struct {
	Body string `json:"body" binding:"required"`
}

// GET /blog
func ListPosts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var posts []models.BlogPost
		if err := db.Order("created_at DESC").Find(&posts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// GET /blog/:id
func GetPost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
			return
		}

		var post models.BlogPost
		if err := db.Preload("Comments").First(&post, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
			}
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// POST /admin/blog
func CreatePost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreatePostInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		post := models.BlogPost{
			Title:      input.Title,
			Body:       input.Body,
			CoverImage: input.CoverImage,
			AuthorName: input.AuthorName,
		}
		if err := db.Create(&post).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// PUT /admin/blog/:id
func UpdatePost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
			return
		}

		var post models.BlogPost
		if err := db.First(&post, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}

		var input CreatePostInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		post.Title = input.Title
		post.Body = input.Body
		post.CoverImage = input.CoverImage
		post.AuthorName = input.AuthorName
		if err := db.Save(&post).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// DELETE /admin/blog/:id
func DeletePost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
			return
		}

		if err := db.Delete(&models.BlogPost{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
	}
}

// POST /blog/:id/comments
func AddComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		postID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
			return
		}

		var input CommentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var post models.BlogPost
		if err := db.First(&post, postID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		comment := models.BlogComment{
			PostID:   post.ID,
			UserID:   userID,
			UserName: user.Name,
			Body:     input.Body,
		}
		if err := db.Create(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

// DELETE /admin/blog/comments/:id
func DeleteComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
			return
		}

		if err := db.Delete(&models.BlogComment{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
	}
}
