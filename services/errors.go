package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("you do not own this resource")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrEmailFailed       = errors.New("failed to send email")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
)

// OutOfStockError names the offending product so the UI can say which line
// failed instead of a generic message.
type OutOfStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
