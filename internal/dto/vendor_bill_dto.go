package dto

import "github.com/shopspring/decimal"

// VendorBillProductRequest describes one product line to stock in.
type VendorBillProductRequest struct {
	Name          string          `json:"name"            validate:"required,min=2"`
	Quantity      int             `json:"quantity"        validate:"required,min=1"`
	CostPrice     decimal.Decimal `json:"cost_price"      validate:"required,gt=0"`
	SellingPriceA decimal.Decimal `json:"selling_price_a" validate:"required,gt=0"`
	SellingPriceB decimal.Decimal `json:"selling_price_b" validate:"min=0"`
	SellingPriceC decimal.Decimal `json:"selling_price_c" validate:"min=0"`
}

type CreateVendorBillRequest struct {
	CompanyName        string          `json:"company_name" validate:"required,min=2"`
	BillNumber         string          `json:"bill_number"  validate:"required"`
	BillDate           string          `json:"bill_date"    validate:"required,datetime=2006-01-02"`
	IsLocalTransaction bool            `json:"is_local_transaction"`
	CGSTRate           decimal.Decimal `json:"cgst_rate" validate:"min=0"`
	SGSTRate           decimal.Decimal `json:"sgst_rate" validate:"min=0"`
	IGSTRate           decimal.Decimal `json:"igst_rate" validate:"min=0"`
	TotalAmount        decimal.Decimal `json:"total_amount" validate:"required,gt=0"`

	Products []VendorBillProductRequest `json:"products" validate:"required,min=1,dive"`
}

type VendorBillFilter struct {
	CompanyName string `form:"company_name"`
	From        string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `form:"to"   validate:"omitempty,datetime=2006-01-02"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VendorBillResponse struct {
	ID                 string          `json:"id"`
	CompanyName        string          `json:"company_name"`
	BillNumber         string          `json:"bill_number"`
	BillDate           string          `json:"bill_date"`
	IsLocalTransaction bool            `json:"is_local_transaction"`
	CGSTRate           decimal.Decimal `json:"cgst_rate"`
	SGSTRate           decimal.Decimal `json:"sgst_rate"`
	IGSTRate           decimal.Decimal `json:"igst_rate"`
	GSTAmount          decimal.Decimal `json:"gst_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	ProductCount       int             `json:"product_count"`
	SKUs               []string        `json:"skus,omitempty"`
}

type VendorBillListResponse struct {
	Data  []VendorBillResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
