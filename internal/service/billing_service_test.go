package service_test

import (
	"context"
	"testing"

	"sareepos/internal/dto"
	"sareepos/internal/model"
	"sareepos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type billingFixture struct {
	products  *stubProductRepo
	bills     *stubBillRepo
	movements *stubMovementRepo
	carts     service.CartService
	billing   service.BillingService
	userID    uuid.UUID
}

func newBillingFixture() *billingFixture {
	products := newStubProductRepo()
	bills := newStubBillRepo()
	movements := &stubMovementRepo{}
	carts := service.NewCartService(newMemCartStore(), products)
	billing := service.NewBillingService(bills, products, movements, carts, nil)
	return &billingFixture{
		products:  products,
		bills:     bills,
		movements: movements,
		carts:     carts,
		billing:   billing,
		userID:    uuid.New(),
	}
}

func (f *billingFixture) seedProduct(sku string, qty int, priceA, cost int64) *model.Product {
	p := &model.Product{
		SKU:           sku,
		Name:          "Kanchipuram Silk",
		Quantity:      qty,
		Status:        model.ProductAvailable,
		SellingPriceA: d(priceA),
		SellingPriceB: decimal.Zero,
		SellingPriceC: decimal.Zero,
		CostPrice:     d(cost),
	}
	_ = f.products.Create(context.Background(), p)
	return p
}

func TestGSTSplit(t *testing.T) {
	cases := []struct {
		subtotal int64
		cgst     int64
		sgst     int64
		total    int64
	}{
		{1000, 25, 25, 1050},
		{500, 13, 13, 526},  // 12.5 rounds up per half
		{990, 25, 25, 1040}, // 24.75 rounds up per half
		{0, 0, 0, 0},
	}
	for _, tc := range cases {
		cgst, sgst, total := service.GSTSplit(d(tc.subtotal))
		assert.True(t, cgst.Equal(d(tc.cgst)), "subtotal %d: cgst = %s", tc.subtotal, cgst)
		assert.True(t, sgst.Equal(d(tc.sgst)), "subtotal %d: sgst = %s", tc.subtotal, sgst)
		assert.True(t, total.Equal(d(tc.total)), "subtotal %d: total = %s", tc.subtotal, total)
	}
}

// The halves are rounded independently, not derived from a combined 5% figure.
// For a 10-rupee sale each 2.5% half (0.25) rounds to zero, while a combined
// 5% (0.50) would have rounded to one rupee.
func TestGSTSplitRoundsHalvesIndependently(t *testing.T) {
	cgst, sgst, total := service.GSTSplit(d(10))
	assert.True(t, cgst.IsZero())
	assert.True(t, sgst.IsZero())
	assert.True(t, total.Equal(d(10)))

	combined := d(10).Mul(decimal.NewFromFloat(0.05)).Round(0)
	assert.True(t, combined.Equal(d(1)), "combined rounding would differ")
}

func TestCheckoutEndToEnd(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	f.seedProduct("S-AAA111", 3, 500, 300)

	_, err := f.carts.Add(ctx, f.userID, dto.AddToCartRequest{SKU: "S-AAA111"})
	require.NoError(t, err)
	_, err = f.carts.UpdateQuantity(ctx, f.userID, "S-AAA111", 2)
	require.NoError(t, err)

	resp, err := f.billing.Checkout(ctx, f.userID, dto.CheckoutRequest{PaymentMethod: model.PaymentCash})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.BillNumber)
	assert.True(t, resp.Subtotal.Equal(d(1000)), "subtotal = %s", resp.Subtotal)
	assert.True(t, resp.CGST.Equal(d(25)))
	assert.True(t, resp.SGST.Equal(d(25)))
	assert.True(t, resp.TotalAmount.Equal(d(1050)), "total = %s", resp.TotalAmount)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].SellingPrice.Equal(d(500)))

	// Stock decremented, product still sellable
	p, err := f.products.FindBySKU(ctx, "S-AAA111")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Quantity)
	assert.Equal(t, model.ProductAvailable, p.Status)

	// Sale movement recorded against the bill
	sales := f.movements.ofType(model.MovementSale)
	require.Len(t, sales, 1)
	assert.Equal(t, -2, sales[0].Quantity)
	assert.Equal(t, 3, sales[0].QuantityBefore)
	assert.Equal(t, 1, sales[0].QuantityAfter)
	require.NotNil(t, sales[0].ReferenceID)

	// Cart cleared after commit
	cart, err := f.carts.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestCheckoutSellsLastUnitFlipsStatus(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	f.seedProduct("S-LAST001", 2, 750, 400)

	_, err := f.carts.Add(ctx, f.userID, dto.AddToCartRequest{SKU: "S-LAST001"})
	require.NoError(t, err)
	_, err = f.carts.UpdateQuantity(ctx, f.userID, "S-LAST001", 2)
	require.NoError(t, err)

	_, err = f.billing.Checkout(ctx, f.userID, dto.CheckoutRequest{PaymentMethod: model.PaymentUPI})
	require.NoError(t, err)

	p, err := f.products.FindBySKU(ctx, "S-LAST001")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, model.ProductSold, p.Status)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newBillingFixture()
	_, err := f.billing.Checkout(context.Background(), f.userID, dto.CheckoutRequest{PaymentMethod: model.PaymentCash})
	assert.ErrorIs(t, err, service.ErrEmptyCart)
}

func TestCheckoutConcurrentOversell(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	p := f.seedProduct("S-RACE001", 1, 500, 300)

	_, err := f.carts.Add(ctx, f.userID, dto.AddToCartRequest{SKU: "S-RACE001"})
	require.NoError(t, err)

	// Another terminal takes the last unit between cart add and checkout.
	rows, err := f.products.DecrementStockTx(nil, p.ID, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	_, err = f.billing.Checkout(ctx, f.userID, dto.CheckoutRequest{PaymentMethod: model.PaymentCash})
	assert.ErrorIs(t, err, service.ErrSoldOut)
}

func TestCheckoutBillNumberFailure(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	f.seedProduct("S-SEQ0001", 5, 500, 300)
	f.bills.failSeq = true

	_, err := f.carts.Add(ctx, f.userID, dto.AddToCartRequest{SKU: "S-SEQ0001"})
	require.NoError(t, err)

	_, err = f.billing.Checkout(ctx, f.userID, dto.CheckoutRequest{PaymentMethod: model.PaymentCard})
	assert.ErrorIs(t, err, service.ErrBillNumberGeneration)
}

// Bill items snapshot the price at sale time; later catalog edits must not
// retroactively change historical bills.
func TestBillItemPriceSnapshotImmutable(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	f.seedProduct("S-SNAP001", 3, 500, 300)

	_, err := f.carts.Add(ctx, f.userID, dto.AddToCartRequest{SKU: "S-SNAP001"})
	require.NoError(t, err)
	resp, err := f.billing.Checkout(ctx, f.userID, dto.CheckoutRequest{PaymentMethod: model.PaymentCash})
	require.NoError(t, err)

	// Reprice the product after the sale
	p, _ := f.products.FindBySKU(ctx, "S-SNAP001")
	p.SellingPriceA = d(999)
	require.NoError(t, f.products.Update(ctx, p))

	billed, err := f.billing.GetBill(ctx, uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.Len(t, billed.Items, 1)
	assert.True(t, billed.Items[0].SellingPrice.Equal(d(500)), "snapshot changed to %s", billed.Items[0].SellingPrice)
	assert.True(t, billed.TotalAmount.Equal(d(525)))
}

func TestDeleteBillRestoresStock(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	seeded := f.seedProduct("S-DEL0001", 3, 500, 300)

	_, err := f.carts.Add(ctx, f.userID, dto.AddToCartRequest{SKU: "S-DEL0001"})
	require.NoError(t, err)
	_, err = f.carts.UpdateQuantity(ctx, f.userID, "S-DEL0001", 2)
	require.NoError(t, err)
	resp, err := f.billing.Checkout(ctx, f.userID, dto.CheckoutRequest{PaymentMethod: model.PaymentCash})
	require.NoError(t, err)

	p, _ := f.products.FindByID(ctx, seeded.ID)
	require.Equal(t, 1, p.Quantity)

	billID := uuid.MustParse(resp.ID)
	require.NoError(t, f.billing.DeleteBill(ctx, billID))

	// Quantity conserved: back to the pre-sale count, sellable again
	p, err = f.products.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity)
	assert.Equal(t, model.ProductAvailable, p.Status)

	restores := f.movements.ofType(model.MovementBillRestore)
	require.Len(t, restores, 1)
	assert.Equal(t, 2, restores[0].Quantity)

	_, err = f.billing.GetBill(ctx, billID)
	assert.Error(t, err)
}

func TestUpdateBillKeepsAmountsImmutable(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	f.seedProduct("S-UPD0001", 3, 500, 300)

	_, err := f.carts.Add(ctx, f.userID, dto.AddToCartRequest{SKU: "S-UPD0001"})
	require.NoError(t, err)
	resp, err := f.billing.Checkout(ctx, f.userID, dto.CheckoutRequest{PaymentMethod: model.PaymentCash})
	require.NoError(t, err)

	name := "Lakshmi"
	method := model.PaymentUPI
	updated, err := f.billing.UpdateBill(ctx, uuid.MustParse(resp.ID), dto.UpdateBillRequest{
		CustomerName:  &name,
		PaymentMethod: &method,
	})
	require.NoError(t, err)

	assert.Equal(t, "Lakshmi", *updated.CustomerName)
	assert.Equal(t, model.PaymentUPI, updated.PaymentMethod)
	assert.True(t, updated.TotalAmount.Equal(resp.TotalAmount))
	assert.True(t, updated.Subtotal.Equal(resp.Subtotal))
}
