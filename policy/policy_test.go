package policy_test

import (
	"testing"

	"fleamarket_backend/models"
	"fleamarket_backend/policy"

	"github.com/stretchr/testify/assert"
)

func TestCanViewUser(t *testing.T) {
	alice := &models.User{ID: 1}
	bob := &models.User{ID: 2}
	admin := &models.User{ID: 3, IsAdmin: true}

	t.Run("Self", func(t *testing.T) {
		ok, reason := policy.CanViewUser(alice, alice)
		assert.True(t, ok)
		assert.NoError(t, reason)
	})

	t.Run("Admin", func(t *testing.T) {
		ok, reason := policy.CanViewUser(admin, bob)
		assert.True(t, ok)
		assert.NoError(t, reason)
	})

	t.Run("Other user", func(t *testing.T) {
		ok, reason := policy.CanViewUser(alice, bob)
		assert.False(t, ok)
		assert.ErrorIs(t, reason, models.ErrForbidden)
	})
}

func TestCanManageProduct(t *testing.T) {
	seller := &models.User{ID: 1}
	other := &models.User{ID: 2}
	admin := &models.User{ID: 3, IsAdmin: true}
	product := &models.Product{ID: 10, SellerID: seller.ID}

	ok, _ := policy.CanManageProduct(seller, product)
	assert.True(t, ok)

	ok, _ = policy.CanManageProduct(admin, product)
	assert.True(t, ok)

	ok, reason := policy.CanManageProduct(other, product)
	assert.False(t, ok)
	assert.ErrorIs(t, reason, models.ErrForbidden)
}

func TestCanPurchase(t *testing.T) {
	seller := &models.User{ID: 1}
	buyer := &models.User{ID: 2}

	t.Run("On sale by non-seller", func(t *testing.T) {
		product := &models.Product{SellerID: seller.ID, Status: models.ProductOnSale}
		ok, reason := policy.CanPurchase(buyer, product)
		assert.True(t, ok)
		assert.NoError(t, reason)
	})

	t.Run("Wrong state", func(t *testing.T) {
		for _, status := range []string{models.ProductReserved, models.ProductCompleted} {
			product := &models.Product{SellerID: seller.ID, Status: status}
			ok, reason := policy.CanPurchase(buyer, product)
			assert.False(t, ok)
			assert.ErrorIs(t, reason, models.ErrInvalidState)
		}
	})

	t.Run("Self trade", func(t *testing.T) {
		product := &models.Product{SellerID: seller.ID, Status: models.ProductOnSale}
		ok, reason := policy.CanPurchase(seller, product)
		assert.False(t, ok)
		assert.ErrorIs(t, reason, models.ErrSelfTradeForbidden)
	})
}

func TestCanCompleteTransaction(t *testing.T) {
	seller := &models.User{ID: 1}
	buyer := &models.User{ID: 2}

	t.Run("Seller on in-progress", func(t *testing.T) {
		tx := &models.Transaction{SellerID: seller.ID, BuyerID: buyer.ID, Status: models.TransactionInProgress}
		ok, reason := policy.CanCompleteTransaction(seller, tx)
		assert.True(t, ok)
		assert.NoError(t, reason)
	})

	t.Run("Non-seller always forbidden", func(t *testing.T) {
		for _, status := range []string{models.TransactionInProgress, models.TransactionCompleted} {
			tx := &models.Transaction{SellerID: seller.ID, BuyerID: buyer.ID, Status: status}
			ok, reason := policy.CanCompleteTransaction(buyer, tx)
			assert.False(t, ok)
			assert.ErrorIs(t, reason, models.ErrForbidden)
		}
	})

	t.Run("Already completed", func(t *testing.T) {
		tx := &models.Transaction{SellerID: seller.ID, BuyerID: buyer.ID, Status: models.TransactionCompleted}
		ok, reason := policy.CanCompleteTransaction(seller, tx)
		assert.False(t, ok)
		assert.ErrorIs(t, reason, models.ErrAlreadyCompleted)
	})
}
