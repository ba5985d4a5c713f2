package lifecycle

import (
	"errors"
	"time"

	"fleamarket_backend/models"
	"fleamarket_backend/policy"

	"gorm.io/gorm"
)

// Transaction state machine:
//
//	in_progress --Complete(seller)--> completed
//
// Transactions are only ever created by Purchase; there is no cancellation
// edge and completed is terminal.

// Complete marks the transaction completed on behalf of requester and
// cascades the product to completed in the same database transaction.
// completed_at is written by the same guarded update that flips the status,
// so it is set exactly once; a duplicate call gets ErrAlreadyCompleted.
func Complete(db *gorm.DB, transactionID uint, requester *models.User) (*models.Transaction, error) {
	var record models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		if ok, reason := policy.CanCompleteTransaction(requester, &record); !ok {
			return reason
		}

		now := time.Now()
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", record.ID, models.TransactionInProgress).
			Updates(map[string]interface{}{
				"status":       models.TransactionCompleted,
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrAlreadyCompleted
		}

		if err := completeProduct(tx, record.ProductID); err != nil {
			return err
		}

		record.Status = models.TransactionCompleted
		record.CompletedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}
