package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lumiere-jewels/jewelry-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// -------- Test fixtures --------

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeMailer records every send and can be told to fail.
type fakeMailer struct {
	Sent []sentMail
	Fail bool
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.Fail {
		return errors.New("smtp unreachable")
	}
	f.Sent = append(f.Sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.FAQEntry{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	user := models.User{ID: id, Email: id + "@example.com", Name: "Test " + id}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func addToCart(t *testing.T, db *gorm.DB, userID string, productID uint, qty int) {
	t.Helper()
	svc := NewCartService(db)
	_, err := svc.AddItem(userID, productID, qty)
	require.NoError(t, err)
}

func productStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, productID).Error)
	return p.Stock
}

func newOrderService(db *gorm.DB, m *fakeMailer) *OrderService {
	return NewOrderService(db, m, decimal.RequireFromString("10.00"), "orders@lumiere.example")
}

var checkoutInfo = ShippingInfo{
	Name:    "Ada Lovelace",
	Phone:   "+1 555 0100",
	Email:   "ada@example.com",
	Address: "12 Analytical Way",
	Note:    "ring the bell",
}

// -------- CreateOrder --------

func TestCreateOrder(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	chain := seedProduct(t, db, "Silver Chain", "45.50", 3)
	addToCart(t, db, user.ID, ring.ID, 2)
	addToCart(t, db, user.ID, chain.ID, 1)

	m := &fakeMailer{}
	svc := newOrderService(db, m)

	var hooked *models.Order
	svc.SetOrderCreatedHook(func(o models.Order) { hooked = &o })

	order, emailSent, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)
	assert.True(t, emailSent)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderRef)
	assert.Len(t, order.Items, 2)

	// 2 * 120.00 + 1 * 45.50 + 10.00 shipping
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("295.50")),
		"got total %s", order.TotalAmount)

	// Stock is claimed at order time
	assert.Equal(t, 3, productStock(t, db, ring.ID))
	assert.Equal(t, 2, productStock(t, db, chain.ID))

	// Cart is emptied
	cart, err := NewCartService(db).GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Confirmation mail went to the shipping email
	require.Len(t, m.Sent, 1)
	assert.Equal(t, "ada@example.com", m.Sent[0].To)

	require.NotNil(t, hooked)
	assert.Equal(t, order.OrderRef, hooked.OrderRef)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	svc := newOrderService(db, &fakeMailer{})

	// No cart at all
	_, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	assert.ErrorIs(t, err, ErrEmptyCart)

	// Cart exists but has no lines
	_, err = NewCartService(db).GetCart(user.ID)
	require.NoError(t, err)
	_, _, err = svc.CreateOrder(user.ID, checkoutInfo)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	chain := seedProduct(t, db, "Silver Chain", "45.50", 2)
	addToCart(t, db, user.ID, ring.ID, 2)
	addToCart(t, db, user.ID, chain.ID, 2)

	// Someone else takes the last chain between add-to-cart and checkout.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", chain.ID).Update("stock", 1).Error)

	svc := newOrderService(db, &fakeMailer{})
	_, _, err := svc.CreateOrder(user.ID, checkoutInfo)

	var oos *OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, chain.ID, oos.ProductID)
	assert.Equal(t, 2, oos.Requested)
	assert.Equal(t, 1, oos.Available)

	// The whole checkout rolled back: the ring decrement is undone too.
	assert.Equal(t, 5, productStock(t, db, ring.ID))
	assert.Equal(t, 1, productStock(t, db, chain.ID))

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	// Cart is untouched, the user can fix the quantity and retry.
	cart, err := NewCartService(db).GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCreateOrderStockNeverGoesNegative(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 1)
	addToCart(t, db, user.ID, ring.ID, 1)

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", ring.ID).Update("stock", 0).Error)

	svc := newOrderService(db, &fakeMailer{})
	_, _, err := svc.CreateOrder(user.ID, checkoutInfo)

	var oos *OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, 0, productStock(t, db, ring.ID))
}

func TestCreateOrderEmailFailureKeepsOrder(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 1)

	m := &fakeMailer{Fail: true}
	svc := newOrderService(db, m)

	order, emailSent, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)
	assert.False(t, emailSent)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 4, productStock(t, db, ring.ID))
}

func TestCreateOrderSnapshotsPrice(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 1)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)

	// Catalog price changes after checkout
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", ring.ID).
		Update("price", decimal.RequireFromString("999.00")).Error)

	reloaded, err := svc.GetOrder(order.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.True(t, reloaded.Items[0].Price.Equal(decimal.RequireFromString("120.00")))
	assert.True(t, reloaded.TotalAmount.Equal(decimal.RequireFromString("130.00")))
}

// -------- CancelOrder --------

func TestCancelOrderRestocks(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 2)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)
	require.Equal(t, 3, productStock(t, db, ring.ID))

	cancelled, err := svc.CancelOrder(order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 5, productStock(t, db, ring.ID))
}

func TestCancelOrderTwice(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 2)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)

	_, err = svc.CancelOrder(order.ID, user.ID)
	require.NoError(t, err)

	// A second cancel must not restock again.
	_, err = svc.CancelOrder(order.ID, user.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 5, productStock(t, db, ring.ID))
}

func TestConcurrentCancelsRestockOnce(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 2)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)

	// Both requests load the order as PENDING; the guarded update inside the
	// transaction must let only one of them restock.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CancelOrder(order.ID, user.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 5, productStock(t, db, ring.ID))
}

func TestCustomerAndAdminCancelRestockOnce(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 3)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.CancelOrder(order.ID, user.ID)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.AdminSetStatus(order.ID, "CANCELLED")
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 5, productStock(t, db, ring.ID))
}

func TestCancelOrderNotOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "u1")
	other := seedUser(t, db, "u2")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, owner.ID, ring.ID, 1)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(owner.ID, checkoutInfo)
	require.NoError(t, err)

	_, err = svc.CancelOrder(order.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelOrderAfterConfirmation(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 1)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)

	_, err = svc.NotifyOrder(order.ID, user.ID)
	require.NoError(t, err)

	// Customer cancellation is only allowed while PENDING.
	_, err = svc.CancelOrder(order.ID, user.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// -------- NotifyOrder --------

func TestNotifyOrderConfirms(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 1)

	m := &fakeMailer{}
	svc := newOrderService(db, m)
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)
	m.Sent = nil

	confirmed, err := svc.NotifyOrder(order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, confirmed.Status)

	require.Len(t, m.Sent, 1)
	assert.Equal(t, "orders@lumiere.example", m.Sent[0].To)
	assert.Contains(t, m.Sent[0].Body, "Gold Ring")
}

func TestNotifyOrderEmailFailureLeavesPending(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 1)

	m := &fakeMailer{}
	svc := newOrderService(db, m)
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)

	m.Fail = true
	_, err = svc.NotifyOrder(order.ID, user.ID)
	assert.ErrorIs(t, err, ErrEmailFailed)

	reloaded, err := svc.GetOrder(order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)
}

func TestNotifyOrderAlreadyConfirmed(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 1)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)

	_, err = svc.NotifyOrder(order.ID, user.ID)
	require.NoError(t, err)
	_, err = svc.NotifyOrder(order.ID, user.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// -------- AdminSetStatus --------

func TestAdminSetStatusHappyPath(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 1)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)

	for _, next := range []string{"confirmed", "SHIPPED", " delivered "} {
		updated, err := svc.AdminSetStatus(order.ID, next)
		require.NoError(t, err, "transition to %q", next)
		order = updated
	}
	assert.Equal(t, models.OrderStatusDelivered, order.Status)

	// DELIVERED is terminal.
	_, err = svc.AdminSetStatus(order.ID, "cancelled")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdminCancelRestocks(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 3)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)
	require.Equal(t, 2, productStock(t, db, ring.ID))

	_, err = svc.AdminSetStatus(order.ID, "CONFIRMED")
	require.NoError(t, err)

	// Admin can still cancel a CONFIRMED order, and it restocks.
	cancelled, err := svc.AdminSetStatus(order.ID, "CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 5, productStock(t, db, ring.ID))
}

func TestAdminSetStatusRejectsUnknown(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, user.ID, ring.ID, 1)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(user.ID, checkoutInfo)
	require.NoError(t, err)

	_, err = svc.AdminSetStatus(order.ID, "REFUNDED")
	assert.ErrorIs(t, err, models.ErrInvalidOrderStatus)

	_, err = svc.AdminSetStatus(order.ID, "SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidTransition, "PENDING cannot skip to SHIPPED")
}

// -------- Queries --------

func TestGetOrderOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "u1")
	other := seedUser(t, db, "u2")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	addToCart(t, db, owner.ID, ring.ID, 1)

	svc := newOrderService(db, &fakeMailer{})
	order, _, err := svc.CreateOrder(owner.ID, checkoutInfo)
	require.NoError(t, err)

	_, err = svc.GetOrder(order.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetOrder(9999, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUserOrders(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	other := seedUser(t, db, "u2")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 10)

	svc := newOrderService(db, &fakeMailer{})
	for i := 0; i < 2; i++ {
		addToCart(t, db, user.ID, ring.ID, 1)
		_, _, err := svc.CreateOrder(user.ID, checkoutInfo)
		require.NoError(t, err)
	}
	addToCart(t, db, other.ID, ring.ID, 1)
	_, _, err := svc.CreateOrder(other.ID, checkoutInfo)
	require.NoError(t, err)

	orders, err := svc.ListUserOrders(user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	all, err := svc.ListAllOrders()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
