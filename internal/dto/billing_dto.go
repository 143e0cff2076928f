package dto

import "github.com/shopspring/decimal"

// BillFilter is bound from query string of GET /v1/bills.
type BillFilter struct {
	Date          string `form:"date"` // YYYY-MM-DD; empty = today
	PaymentMethod string `form:"payment_method" validate:"omitempty,oneof=cash card upi"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CheckoutRequest struct {
	CustomerName  *string `json:"customer_name"  validate:"omitempty,min=2"`
	CustomerPhone *string `json:"customer_phone" validate:"omitempty,min=7,max=15"`
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash card upi"`
}

type UpdateBillRequest struct {
	CustomerName  *string `json:"customer_name"  validate:"omitempty,min=2"`
	CustomerPhone *string `json:"customer_phone" validate:"omitempty,min=7,max=15"`
	PaymentMethod *string `json:"payment_method" validate:"omitempty,oneof=cash card upi"`
}

type BillItemResponse struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type BillResponse struct {
	ID            string             `json:"id"`
	BillNumber    int                `json:"bill_number"`
	CustomerName  *string            `json:"customer_name,omitempty"`
	CustomerPhone *string            `json:"customer_phone,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Items         []BillItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	CGST          decimal.Decimal    `json:"cgst"`
	SGST          decimal.Decimal    `json:"sgst"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	CreatedAt     string             `json:"created_at"`
}

type BillListResponse struct {
	Data  []BillResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
