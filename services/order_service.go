package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lumiere-jewels/jewelry-api/mailer"
	"github.com/lumiere-jewels/jewelry-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShippingInfo is the checkout form content.
type ShippingInfo struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Note    string
}

// OrderService is the order state machine plus its stock bookkeeping. All
// collaborators are injected so the flow can be exercised against an
// in-memory database and a fake mailer.
type OrderService struct {
	db            *gorm.DB
	mailer        mailer.Mailer
	shippingFee   decimal.Decimal
	operatorEmail string
	onCreated     func(models.Order)
}

func NewOrderService(db *gorm.DB, m mailer.Mailer, shippingFee decimal.Decimal, operatorEmail string) *OrderService {
	return &OrderService{
		db:            db,
		mailer:        m,
		shippingFee:   shippingFee,
		operatorEmail: operatorEmail,
	}
}

// SetOrderCreatedHook registers a callback fired after an order commits,
// e.g. the admin websocket broadcast.
func (s *OrderService) SetOrderCreatedHook(fn func(models.Order)) {
	s.onCreated = fn
}

// CreateOrder turns the user's cart into a PENDING order. Order row, item
// snapshots, stock decrements and cart clearing commit as one transaction.
// The confirmation email is sent after the commit and is best-effort: the
// second return value reports whether it went out.
func (s *OrderService) CreateOrder(userID string, info ShippingInfo) (*models.Order, bool, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		var orderItems []models.OrderItem

		for _, item := range cart.Items {
			var product models.Product
			if err := tx.Preload("Images").First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}

			// Conditional decrement: the WHERE guard is what keeps stock
			// from going negative under concurrent checkouts.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &OutOfStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   item.Quantity,
					Available:   product.Stock,
				}
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: primaryImage(product),
				Price:        product.Price,
				Quantity:     item.Quantity,
			})
		}

		order = models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Items:           orderItems,
			ShippingName:    info.Name,
			ShippingPhone:   info.Phone,
			ShippingEmail:   info.Email,
			ShippingAddress: info.Address,
			Note:            info.Note,
			ShippingFee:     s.shippingFee,
			TotalAmount:     total.Add(s.shippingFee),
			Status:          models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, false, err
	}

	emailSent := true
	if err := s.mailer.Send(info.Email, "Your order "+order.OrderRef, customerConfirmationBody(order)); err != nil {
		// The order stands even if the confirmation mail bounces.
		log.Printf("❌ Failed to send order confirmation for %s: %v", order.OrderRef, err)
		emailSent = false
	}

	if s.onCreated != nil {
		s.onCreated(order)
	}
	return &order, emailSent, nil
}

// CancelOrder is the customer-facing cancellation: PENDING orders only,
// restocks every line.
func (s *OrderService) CancelOrder(orderID uint, userID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrInvalidTransition
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Conditional update, same shape as the stock decrement: zero rows
		// means another request moved the order first, so nothing restocks.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
			Update("status", models.OrderStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		return restockItems(tx, order.Items)
	})
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusCancelled
	return &order, nil
}

// NotifyOrder is the customer's "submit order" action: it emails the store
// operator an itemized summary and, only if that email goes through, bumps
// the order to CONFIRMED. A failed email leaves the order PENDING.
func (s *OrderService) NotifyOrder(orderID uint, userID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	if !order.Status.CanTransitionTo(models.OrderStatusConfirmed) {
		return nil, ErrInvalidTransition
	}

	if err := s.mailer.Send(s.operatorEmail, "New order "+order.OrderRef, operatorSummaryBody(order)); err != nil {
		log.Printf("❌ Operator notification failed for %s: %v", order.OrderRef, err)
		return nil, ErrEmailFailed
	}

	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", models.OrderStatusConfirmed)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidTransition
	}
	order.Status = models.OrderStatusConfirmed
	return &order, nil
}

// AdminSetStatus applies any transition the adjacency table allows. An
// admin-driven move to CANCELLED restocks through the same helper as the
// customer path, so the two can never drift apart.
func (s *OrderService) AdminSetStatus(orderID uint, statusStr string) (*models.Order, error) {
	newStatus, err := models.ParseOrderStatus(statusStr)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !order.Status.CanTransitionTo(newStatus) {
		return nil, ErrInvalidTransition
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Guarded on the status the transition was validated against.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Update("status", newStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		if newStatus == models.OrderStatusCancelled {
			return restockItems(tx, order.Items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Status = newStatus
	return &order, nil
}

// GetOrder loads a single order for its owner.
func (s *OrderService) GetOrder(orderID uint, userID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	return &order, nil
}

// ListUserOrders returns the caller's orders, newest first.
func (s *OrderService) ListUserOrders(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// ListAllOrders is the admin back-office listing.
func (s *OrderService) ListAllOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("User").Preload("Items").
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// restockItems mirrors the checkout decrement for every line of an order.
func restockItems(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		res := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
	}
	return nil
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

func primaryImage(p models.Product) string {
	if len(p.Images) == 0 {
		return ""
	}
	first := p.Images[0]
	for _, img := range p.Images[1:] {
		if img.Position < first.Position {
			first = img
		}
	}
	return first.URL
}
