package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product statuses. A product starts on sale, gets reserved by a purchase and
// completed when its transaction completes. No edge goes backwards.
const (
	ProductOnSale    = "on_sale"
	ProductReserved  = "reserved"
	ProductCompleted = "completed"
)

type Product struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	SellerID uint            `gorm:"index;not null" json:"seller_id"`
	Name     string          `gorm:"size:100;not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	// Status only moves through the lifecycle package; generic updates must
	// never touch this column.
	Status string `gorm:"size:20;not null;default:'on_sale';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Seller User `gorm:"foreignKey:SellerID;constraint:OnDelete:RESTRICT" json:"seller"`
}
