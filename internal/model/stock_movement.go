package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement types.
const (
	MovementSale        = "sale"
	MovementRestock     = "restock"
	MovementAdjust      = "manual_adjust"
	MovementBillRestore = "restore_bill_delete"
)

// StockMovement records every change to a product's quantity. One row is
// created per bill line at checkout, per product at stock-in, per manual
// adjustment, and per restored line when a bill is deleted. The reconcile
// cron cross-checks bill items against these rows.
type StockMovement struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Type           string    `gorm:"not null"`
	Quantity       int       `gorm:"not null"` // positive = in, negative = out
	QuantityBefore int       `gorm:"not null"`
	QuantityAfter  int       `gorm:"not null"`
	Reason         string
	ReferenceID    *uuid.UUID `gorm:"type:uuid;index"` // bill_id or vendor_bill_id if applicable
	CreatedAt      time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
