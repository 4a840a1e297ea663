package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Material    string          `json:"material"` // e.g. "18k gold", "sterling silver"
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Images      []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	CategoryID  *uint           `gorm:"index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// ProductImage keeps the gallery order stable via Position.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"-"`
	URL       string `gorm:"not null" json:"url"`
	Position  int    `gorm:"not null;default:0" json:"position"`
}
