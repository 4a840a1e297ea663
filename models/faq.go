package models

import "time"

// FAQEntry backs the keyword chatbot. Keywords is a comma-separated list
// matched case-insensitively against the visitor's question.
type FAQEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Question  string    `gorm:"not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Keywords  string    `gorm:"not null" json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}
