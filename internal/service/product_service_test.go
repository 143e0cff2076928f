package service_test

import (
	"context"
	"regexp"
	"testing"

	"sareepos/internal/dto"
	"sareepos/internal/model"
	"sareepos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var skuPattern = regexp.MustCompile(`^S-[23456789ABCDEFGHJKLMNPQRSTUVWXYZ]{8}$`)

func TestGenerateSKUFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		sku := service.GenerateSKU()
		require.Regexp(t, skuPattern, sku)
		assert.False(t, seen[sku], "duplicate SKU %s", sku)
		seen[sku] = true
	}
}

func newProductFixture() (service.ProductService, *stubProductRepo, *stubMovementRepo) {
	products := newStubProductRepo()
	movements := &stubMovementRepo{}
	return service.NewProductService(products, movements, nil), products, movements
}

func TestProductCreateRecordsOpeningStock(t *testing.T) {
	svc, products, movements := newProductFixture()
	ctx := context.Background()

	resp, err := svc.Create(ctx, dto.CreateProductRequest{
		Name:          "Mysore Silk",
		Quantity:      4,
		SellingPriceA: d(1200),
		CostPrice:     d(800),
	})
	require.NoError(t, err)

	assert.Regexp(t, skuPattern, resp.SKU)
	assert.Equal(t, model.ProductAvailable, resp.Status)
	assert.Equal(t, 4, resp.Quantity)

	p, err := products.FindBySKU(ctx, resp.SKU)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Quantity)

	restocks := movements.ofType(model.MovementRestock)
	require.Len(t, restocks, 1)
	assert.Equal(t, 4, restocks[0].Quantity)
	assert.Equal(t, 0, restocks[0].QuantityBefore)
	assert.Equal(t, 4, restocks[0].QuantityAfter)
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	svc, _, _ := newProductFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateProductRequest{
		Name:          "Chiffon",
		Quantity:      2,
		SellingPriceA: d(600),
		CostPrice:     d(350),
	})
	require.NoError(t, err)

	_, err = svc.AdjustStock(ctx, mustUUID(t, created.ID), dto.AdjustStockRequest{
		Delta:  -5,
		Reason: "damaged in transit",
	})
	assert.Error(t, err)
}

func TestAdjustStockRecordsMovement(t *testing.T) {
	svc, products, movements := newProductFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateProductRequest{
		Name:          "Organza",
		Quantity:      5,
		SellingPriceA: d(700),
		CostPrice:     d(450),
	})
	require.NoError(t, err)

	resp, err := svc.AdjustStock(ctx, mustUUID(t, created.ID), dto.AdjustStockRequest{
		Delta:  -2,
		Reason: "damaged in transit",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Quantity)

	adjusts := movements.ofType(model.MovementAdjust)
	require.Len(t, adjusts, 1)
	assert.Equal(t, -2, adjusts[0].Quantity)
	assert.Equal(t, "damaged in transit", adjusts[0].Reason)

	p, err := products.FindBySKU(ctx, created.SKU)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity)
}
