package models

import "time"

// Transaction statuses. A transaction is created in progress together with
// the product's reservation and can only move to completed.
const (
	TransactionInProgress = "in_progress"
	TransactionCompleted  = "completed"
)

type Transaction struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`

	// SellerID snapshots the product's seller at reservation time.
	SellerID uint `gorm:"index:idx_transaction_parties;not null" json:"seller_id"`
	BuyerID  uint `gorm:"index:idx_transaction_parties;not null" json:"buyer_id"`

	Status string `gorm:"size:20;not null;default:'in_progress'" json:"status"`

	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is set exactly once, when the seller completes the deal.
	CompletedAt *time.Time `json:"completed_at"`

	// Relations; RESTRICT keeps the trade history intact
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product"`
	Seller  User    `gorm:"foreignKey:SellerID;constraint:OnDelete:RESTRICT" json:"seller"`
	Buyer   User    `gorm:"foreignKey:BuyerID;constraint:OnDelete:RESTRICT" json:"buyer"`
}
