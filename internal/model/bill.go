package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
	PaymentUPI  = "upi"
)

// Bill is a completed sale. Subtotal, CGST and SGST are stored separately so
// GST reports can aggregate output tax without re-deriving it from the total.
type Bill struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillNumber int       `gorm:"uniqueIndex;not null"`

	CustomerName  *string
	CustomerPhone *string `gorm:"type:varchar(20)"`
	PaymentMethod string  `gorm:"type:varchar(10);not null"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CGST        decimal.Decimal `gorm:"type:decimal(12,2);not null;column:cgst"`
	SGST        decimal.Decimal `gorm:"type:decimal(12,2);not null;column:sgst"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// TotalCost is the sum of line cost prices, kept for profit reporting.
	TotalCost decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	SoldByID uuid.UUID `gorm:"type:uuid;index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Items  []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
	SoldBy *Profile   `gorm:"foreignKey:SoldByID"`
}

// BillItem snapshots the product at the moment of sale. SellingPrice and
// CostPrice are copied, not live references, so later price edits never
// retroactively alter historical bills.
type BillItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"`

	SKU          string          `gorm:"not null"`
	Name         string          `gorm:"not null"`
	Quantity     int             `gorm:"not null"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
