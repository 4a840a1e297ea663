package services

import (
	"errors"
	"time"

	"github.com/lumiere-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

// CartService owns all cart mutations. Stock is never reserved here; it is
// only checked against the catalog at mutation time, and actually claimed
// when the order is created.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart returns the user's cart, creating an empty one on first use.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Items.Product.Images").
		First(&cart, cart.CartID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem merges into an existing line for the same product instead of
// creating a second one. The merged quantity must still fit current stock.
func (s *CartService) AddItem(userID string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var cart models.Cart
	if err := s.db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}

	var item models.CartItem
	err := s.db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
		First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if quantity > product.Stock {
			return nil, &OutOfStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   quantity,
				Available:   product.Stock,
			}
		}
		item = models.CartItem{
			CartID:    cart.CartID,
			ProductID: product.ID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		merged := item.Quantity + quantity
		if merged > product.Stock {
			return nil, &OutOfStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   merged,
				Available:   product.Stock,
			}
		}
		item.Quantity = merged
		item.AddedAt = time.Now()
		if err := s.db.Save(&item).Error; err != nil {
			return nil, err
		}
	}

	item.Product = product
	return &item, nil
}

// UpdateQuantity overwrites the line's quantity in place.
func (s *CartService) UpdateQuantity(userID string, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, item.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if quantity > product.Stock {
		return nil, &OutOfStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
		}
	}

	item.Quantity = quantity
	item.AddedAt = time.Now()
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// RemoveItem deletes a single line.
func (s *CartService) RemoveItem(userID string, itemID uint) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.db.Delete(&models.CartItem{}, item.ID).Error
}

// ClearCart drops every line in the user's cart.
func (s *CartService) ClearCart(userID string) error {
	var cart models.Cart
	if err := s.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to clear
		}
		return err
	}
	return s.db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

// ownedItem loads the line and verifies it sits in the caller's cart.
func (s *CartService) ownedItem(userID string, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var cart models.Cart
	if err := s.db.First(&cart, item.CartID).Error; err != nil {
		return nil, err
	}
	if cart.UserID != userID {
		return nil, ErrForbidden
	}
	return &item, nil
}
