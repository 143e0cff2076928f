package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorBill records stock received from a supplier. Local purchases carry
// CGST+SGST, inter-state purchases carry IGST only.
type VendorBill struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyName string    `gorm:"index;not null"`
	BillNumber  string    `gorm:"not null"`
	BillDate    time.Time `gorm:"type:date;not null"`

	IsLocalTransaction bool            `gorm:"not null;default:true"`
	CGSTRate           decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:cgst_rate"`
	SGSTRate           decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:sgst_rate"`
	IGSTRate           decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:igst_rate"`
	GSTAmount          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:gst_amount"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Products []Product `gorm:"foreignKey:VendorBillID"`
}
