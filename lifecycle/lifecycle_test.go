package lifecycle_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"fleamarket_backend/config"
	"fleamarket_backend/lifecycle"
	"fleamarket_backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_txlock=immediate"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createProduct(t *testing.T, db *gorm.DB, seller *models.User) *models.Product {
	t.Helper()
	product := models.Product{
		SellerID: seller.ID,
		Name:     "Vintage Lamp",
		Price:    decimal.NewFromFloat(10.00),
		Status:   models.ProductOnSale,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func TestPurchase(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")

	t.Run("Success", func(t *testing.T) {
		product := createProduct(t, db, seller)

		tx, err := lifecycle.Purchase(db, product.ID, buyer)

		require.NoError(t, err)
		require.NotNil(t, tx)
		assert.Equal(t, models.TransactionInProgress, tx.Status)
		assert.Equal(t, seller.ID, tx.SellerID)
		assert.Equal(t, buyer.ID, tx.BuyerID)
		assert.Equal(t, product.ID, tx.ProductID)
		assert.Nil(t, tx.CompletedAt)

		var reloaded models.Product
		require.NoError(t, db.First(&reloaded, product.ID).Error)
		assert.Equal(t, models.ProductReserved, reloaded.Status)
	})

	t.Run("Fail when already reserved", func(t *testing.T) {
		product := createProduct(t, db, seller)
		_, err := lifecycle.Purchase(db, product.ID, buyer)
		require.NoError(t, err)

		other := createUser(t, db, "other_buyer")
		_, err = lifecycle.Purchase(db, product.ID, other)
		assert.ErrorIs(t, err, models.ErrInvalidState)

		var count int64
		require.NoError(t, db.Model(&models.Transaction{}).
			Where("product_id = ?", product.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("Fail on self trade", func(t *testing.T) {
		product := createProduct(t, db, seller)

		_, err := lifecycle.Purchase(db, product.ID, seller)
		assert.ErrorIs(t, err, models.ErrSelfTradeForbidden)

		var reloaded models.Product
		require.NoError(t, db.First(&reloaded, product.ID).Error)
		assert.Equal(t, models.ProductOnSale, reloaded.Status)
	})

	t.Run("Fail on missing product", func(t *testing.T) {
		_, err := lifecycle.Purchase(db, 99999, buyer)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestComplete(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")

	t.Run("Success", func(t *testing.T) {
		product := createProduct(t, db, seller)
		tx, err := lifecycle.Purchase(db, product.ID, buyer)
		require.NoError(t, err)

		completed, err := lifecycle.Complete(db, tx.ID, seller)

		require.NoError(t, err)
		assert.Equal(t, models.TransactionCompleted, completed.Status)
		require.NotNil(t, completed.CompletedAt)
		assert.False(t, completed.CompletedAt.Before(completed.CreatedAt))

		var reloadedProduct models.Product
		require.NoError(t, db.First(&reloadedProduct, product.ID).Error)
		assert.Equal(t, models.ProductCompleted, reloadedProduct.Status)
	})

	t.Run("Fail on double completion", func(t *testing.T) {
		product := createProduct(t, db, seller)
		tx, err := lifecycle.Purchase(db, product.ID, buyer)
		require.NoError(t, err)

		first, err := lifecycle.Complete(db, tx.ID, seller)
		require.NoError(t, err)

		_, err = lifecycle.Complete(db, tx.ID, seller)
		assert.ErrorIs(t, err, models.ErrAlreadyCompleted)

		// The timestamp from the first completion is untouched
		var reloaded models.Transaction
		require.NoError(t, db.First(&reloaded, tx.ID).Error)
		require.NotNil(t, reloaded.CompletedAt)
		assert.True(t, reloaded.CompletedAt.Equal(*first.CompletedAt))
	})

	t.Run("Fail for non-seller", func(t *testing.T) {
		product := createProduct(t, db, seller)
		tx, err := lifecycle.Purchase(db, product.ID, buyer)
		require.NoError(t, err)

		_, err = lifecycle.Complete(db, tx.ID, buyer)
		assert.ErrorIs(t, err, models.ErrForbidden)

		stranger := createUser(t, db, "stranger")
		_, err = lifecycle.Complete(db, tx.ID, stranger)
		assert.ErrorIs(t, err, models.ErrForbidden)

		var reloaded models.Transaction
		require.NoError(t, db.First(&reloaded, tx.ID).Error)
		assert.Equal(t, models.TransactionInProgress, reloaded.Status)
	})

	t.Run("Fail for non-seller even when completed", func(t *testing.T) {
		product := createProduct(t, db, seller)
		tx, err := lifecycle.Purchase(db, product.ID, buyer)
		require.NoError(t, err)
		_, err = lifecycle.Complete(db, tx.ID, seller)
		require.NoError(t, err)

		_, err = lifecycle.Complete(db, tx.ID, buyer)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("Fail on missing transaction", func(t *testing.T) {
		_, err := lifecycle.Complete(db, 99999, seller)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestReservedProductHasExactlyOneTransaction(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")
	other := createUser(t, db, "other")
	product := createProduct(t, db, seller)

	_, err := lifecycle.Purchase(db, product.ID, buyer)
	require.NoError(t, err)
	_, err = lifecycle.Purchase(db, product.ID, other)
	require.Error(t, err)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	require.Equal(t, models.ProductReserved, reloaded.Status)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestConcurrentPurchase(t *testing.T) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller")
	buyerA := createUser(t, db, "buyer_a")
	buyerB := createUser(t, db, "buyer_b")
	product := createProduct(t, db, seller)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	buyers := []*models.User{buyerA, buyerB}
	for i := range buyers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = lifecycle.Purchase(db, product.ID, buyers[i])
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one purchase must win")

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, models.ProductReserved, reloaded.Status)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
