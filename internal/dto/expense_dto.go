package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Category    string          `json:"category"     validate:"required,oneof=Rent Salary Electricity Transport Packaging Miscellaneous"`
	Amount      decimal.Decimal `json:"amount"       validate:"required,gt=0"`
	ExpenseDate string          `json:"expense_date" validate:"required,datetime=2006-01-02"`
	Description *string         `json:"description"`
}

type UpdateExpenseRequest struct {
	Category    *string          `json:"category"     validate:"omitempty,oneof=Rent Salary Electricity Transport Packaging Miscellaneous"`
	Amount      *decimal.Decimal `json:"amount"       validate:"omitempty,gt=0"`
	ExpenseDate *string          `json:"expense_date" validate:"omitempty,datetime=2006-01-02"`
	Description *string          `json:"description"`
}

type ExpenseFilter struct {
	Category string `form:"category" validate:"omitempty,oneof=Rent Salary Electricity Transport Packaging Miscellaneous"`
	From     string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `form:"to"   validate:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"`
	Description *string         `json:"description,omitempty"`
}

type ExpenseListResponse struct {
	Data  []ExpenseResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
