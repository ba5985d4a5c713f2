package policy

import (
	"fleamarket_backend/models"
)

// Pure authorization decisions. Every function takes the viewer and the
// target explicitly and has no side effects; on denial the second return
// value carries the classified reason for the HTTP layer to translate.

// CanViewUser reports whether viewer may read target's detail, sales,
// purchases or change target's password.
func CanViewUser(viewer, target *models.User) (bool, error) {
	if viewer.IsAdmin || viewer.ID == target.ID {
		return true, nil
	}
	return false, models.ErrForbidden
}

// CanManageProduct reports whether viewer may edit the product's details.
func CanManageProduct(viewer *models.User, product *models.Product) (bool, error) {
	if viewer.IsAdmin || viewer.ID == product.SellerID {
		return true, nil
	}
	return false, models.ErrForbidden
}

// CanPurchase reports whether viewer may reserve the product.
func CanPurchase(viewer *models.User, product *models.Product) (bool, error) {
	if product.Status != models.ProductOnSale {
		return false, models.ErrInvalidState
	}
	if viewer.ID == product.SellerID {
		return false, models.ErrSelfTradeForbidden
	}
	return true, nil
}

// CanCompleteTransaction reports whether viewer may complete the transaction.
// Only the seller ever may; a completed transaction cannot be completed again.
func CanCompleteTransaction(viewer *models.User, tx *models.Transaction) (bool, error) {
	if viewer.ID != tx.SellerID {
		return false, models.ErrForbidden
	}
	if tx.Status == models.TransactionCompleted {
		return false, models.ErrAlreadyCompleted
	}
	return true, nil
}
