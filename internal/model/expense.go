package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense categories.
var ExpenseCategories = []string{
	"Rent", "Salary", "Electricity", "Transport", "Packaging", "Miscellaneous",
}

// Expense is an operating cost entry. It has no relation to products or
// bills; it only feeds profit-and-loss aggregation.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category    string          `gorm:"type:varchar(20);index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExpenseDate time.Time       `gorm:"type:date;index;not null"`
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
