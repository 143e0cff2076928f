package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product statuses.
const (
	ProductAvailable = "available"
	ProductSold      = "sold"
)

// Product is one SKU in the inventory ledger. Quantity > 1 means several
// physical units (e.g. a restock of identical sarees) share the SKU.
// Status flips to "sold" when a sale depletes the quantity to zero and back
// to "available" when a bill deletion restores stock.
type Product struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU  string    `gorm:"uniqueIndex;not null"`
	Name string    `gorm:"index;not null"`

	Quantity int    `gorm:"not null;default:0"`
	Status   string `gorm:"type:varchar(20);not null;default:'available'"`

	// Price tiers: A = MRP, B = discount, C = special.
	SellingPriceA decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SellingPriceB decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SellingPriceC decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	// VendorBillID links a product to the purchase that stocked it in.
	VendorBillID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	VendorBill *VendorBill `gorm:"foreignKey:VendorBillID"`
}
