package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCartCreatesOnFirstUse(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	svc := NewCartService(db)

	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	again, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.CartID, again.CartID, "same cart on every call")
}

func TestAddItem(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	svc := NewCartService(db)

	item, err := svc.AddItem(user.ID, ring.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, ring.ID, item.ProductID)

	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestAddItemMergesSameProduct(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	svc := NewCartService(db)

	_, err := svc.AddItem(user.ID, ring.ID, 2)
	require.NoError(t, err)
	item, err := svc.AddItem(user.ID, ring.ID, 1)
	require.NoError(t, err)

	// One line, merged quantity
	assert.Equal(t, 3, item.Quantity)
	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItemMergeRespectsStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 3)
	svc := NewCartService(db)

	_, err := svc.AddItem(user.ID, ring.ID, 2)
	require.NoError(t, err)

	// 2 already in the cart, 2 more would exceed stock 3
	_, err = svc.AddItem(user.ID, ring.ID, 2)
	var oos *OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, 4, oos.Requested)
	assert.Equal(t, 3, oos.Available)

	// The existing line is unchanged
	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 3)
	svc := NewCartService(db)

	_, err := svc.AddItem(user.ID, ring.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddItem(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddItem(user.ID, ring.ID, 4)
	var oos *OutOfStockError
	assert.ErrorAs(t, err, &oos)
}

func TestUpdateQuantity(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	svc := NewCartService(db)

	item, err := svc.AddItem(user.ID, ring.ID, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(user.ID, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	// Overwrite, not add: beyond stock fails
	_, err = svc.UpdateQuantity(user.ID, item.ID, 6)
	var oos *OutOfStockError
	assert.ErrorAs(t, err, &oos)

	_, err = svc.UpdateQuantity(user.ID, item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "u1")
	other := seedUser(t, db, "u2")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	svc := NewCartService(db)

	item, err := svc.AddItem(owner.ID, ring.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(other.ID, item.ID, 2)
	assert.ErrorIs(t, err, ErrForbidden)
	err = svc.RemoveItem(other.ID, item.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRemoveItem(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	svc := NewCartService(db)

	item, err := svc.AddItem(user.ID, ring.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(user.ID, item.ID))
	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	err = svc.RemoveItem(user.ID, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u1")
	ring := seedProduct(t, db, "Gold Ring", "120.00", 5)
	chain := seedProduct(t, db, "Silver Chain", "45.50", 5)
	svc := NewCartService(db)

	_, err := svc.AddItem(user.ID, ring.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(user.ID, chain.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(user.ID))
	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Clearing a user with no cart is a no-op
	require.NoError(t, svc.ClearCart("nobody"))
}
