package models

import (
	"time"

	"gorm.io/gorm"
)

type BlogPost struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string         `gorm:"not null" json:"title"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	CoverImage string         `json:"cover_image"`
	AuthorName string         `json:"author_name"`
	Comments   []BlogComment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

type BlogComment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	UserID    string    `gorm:"not null" json:"user_id"`
	UserName  string    `json:"user_name"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
