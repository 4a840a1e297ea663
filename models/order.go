package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "CONFIRMED" // Submitted to the store operator
	OrderStatusShipped   OrderStatus = "SHIPPED"   // Out for delivery
	OrderStatusDelivered OrderStatus = "DELIVERED" // Customer received the item
	OrderStatusCancelled OrderStatus = "CANCELLED" // Cancelled before shipping
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// allowedTransitions is the full adjacency table for order statuses.
// DELIVERED and CANCELLED are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// ParseOrderStatus maps a request string onto the closed status set.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderRef        string          `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID          string          `gorm:"index;not null" json:"user_id"`
	User            User            `gorm:"foreignKey:UserID" json:"user"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingName    string          `gorm:"not null" json:"shipping_name"`
	ShippingPhone   string          `gorm:"not null" json:"shipping_phone"`
	ShippingEmail   string          `gorm:"not null" json:"shipping_email"`
	ShippingAddress string          `gorm:"not null" json:"shipping_address"`
	Note            string          `json:"note"`
	ShippingFee     decimal.Decimal `gorm:"type:decimal(12,2)" json:"shipping_fee"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem snapshots the product at order time. Price is copied from the
// catalog when the order is created and never touched again, so later price
// edits cannot rewrite history.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"index" json:"order_id"`
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Quantity     int             `json:"quantity"`
}
