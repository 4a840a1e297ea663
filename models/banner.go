package models

import "time"

type Banner struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}
