package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is a live reference into the catalog, not a snapshot: price and
// name are read from the product at checkout time. The composite unique
// index guarantees a single line per (cart, product) even if two add
// requests race past the merge check.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_product" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
