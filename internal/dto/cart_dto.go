package dto

import "github.com/shopspring/decimal"

type AddToCartRequest struct {
	SKU string `json:"sku" validate:"required"`
	// PriceTier selects which selling price applies: a (MRP), b, or c.
	PriceTier string `json:"price_tier" validate:"omitempty,oneof=a b c"`
}

type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type CartLineResponse struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	PriceTier string          `json:"price_tier"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Available int             `json:"available"` // stock on hand when line was last touched
}

type CartResponse struct {
	Lines    []CartLineResponse `json:"lines"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}
