package lifecycle

import (
	"errors"

	"fleamarket_backend/models"
	"fleamarket_backend/policy"

	"gorm.io/gorm"
)

// Product state machine:
//
//	on_sale --Purchase(buyer)--> reserved --Complete--> completed
//
// These are the only edges. Status never moves through a generic update, and
// there is no path back from reserved to on_sale yet (a cancellation edge for
// vanished buyers would go here).

// Purchase reserves an on-sale product for buyer and records the transaction
// that tracks the deal. Both writes happen in one database transaction; the
// status flip is a compare-and-swap, so of two racing purchases exactly one
// wins and the other gets ErrInvalidState.
func Purchase(db *gorm.DB, productID uint, buyer *models.User) (*models.Transaction, error) {
	var created models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		if ok, reason := policy.CanPurchase(buyer, &product); !ok {
			return reason
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND status = ?", product.ID, models.ProductOnSale).
			Update("status", models.ProductReserved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race: someone reserved it between our read and write.
			return models.ErrInvalidState
		}

		created = models.Transaction{
			ProductID: product.ID,
			SellerID:  product.SellerID,
			BuyerID:   buyer.ID,
			Status:    models.TransactionInProgress,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// completeProduct cascades a transaction's completion onto its product. It is
// the only way a product reaches completed status and is deliberately
// unexported: the product machine follows the transaction machine, never the
// other way around.
func completeProduct(tx *gorm.DB, productID uint) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND status = ?", productID, models.ProductReserved).
		Update("status", models.ProductCompleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrInvalidState
	}
	return nil
}
