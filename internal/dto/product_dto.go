package dto

import "github.com/shopspring/decimal"

// ProductFilter is bound from query string of GET /v1/products.
type ProductFilter struct {
	SKU    string `form:"sku"`
	Name   string `form:"name"`
	Status string `form:"status"` // available | sold | all (default: available)
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateProductRequest struct {
	Name          string          `json:"name"            validate:"required,min=2"`
	Quantity      int             `json:"quantity"        validate:"required,min=1"`
	SellingPriceA decimal.Decimal `json:"selling_price_a" validate:"required,gt=0"`
	SellingPriceB decimal.Decimal `json:"selling_price_b" validate:"min=0"`
	SellingPriceC decimal.Decimal `json:"selling_price_c" validate:"min=0"`
	CostPrice     decimal.Decimal `json:"cost_price"      validate:"required,gt=0"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"            validate:"omitempty,min=2"`
	SellingPriceA *decimal.Decimal `json:"selling_price_a" validate:"omitempty,gt=0"`
	SellingPriceB *decimal.Decimal `json:"selling_price_b" validate:"omitempty,min=0"`
	SellingPriceC *decimal.Decimal `json:"selling_price_c" validate:"omitempty,min=0"`
	CostPrice     *decimal.Decimal `json:"cost_price"      validate:"omitempty,gt=0"`
}

// AdjustStockRequest adds or removes units outside the sale path.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Status        string          `json:"status"`
	SellingPriceA decimal.Decimal `json:"selling_price_a"`
	SellingPriceB decimal.Decimal `json:"selling_price_b"`
	SellingPriceC decimal.Decimal `json:"selling_price_c"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	VendorBillID  *string         `json:"vendor_bill_id,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceCheckResponse is served on the barcode-scan price check endpoint.
type PriceCheckResponse struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	SellingPriceA decimal.Decimal `json:"selling_price_a"`
	SellingPriceB decimal.Decimal `json:"selling_price_b"`
	SellingPriceC decimal.Decimal `json:"selling_price_c"`
	Quantity      int             `json:"quantity"`
	Status        string          `json:"status"`
}
