package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"sareepos/internal/dto"
	"sareepos/internal/model"
	"sareepos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PriceCacheKeyPrefix namespaces the Redis price-check cache. The product
// service invalidates entries here whenever a price or quantity changes.
const PriceCacheKeyPrefix = "price:"

// skuAlphabet deliberately omits 0/O and 1/I — SKUs end up on printed
// labels read back by humans when the barcode will not scan.
const skuAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
}

type productService struct {
	repo      repository.ProductRepository
	movements repository.StockMovementRepository
	rdb       *redis.Client
}

func NewProductService(repo repository.ProductRepository, movements repository.StockMovementRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, movements: movements, rdb: rdb}
}

// GenerateSKU produces a store code in the S-XXXXXXXX format.
func GenerateSKU() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read failing means the OS entropy source is broken; fall back
		// to a UUID-derived code rather than returning an error up the stack.
		u := uuid.New()
		copy(buf, u[:8])
	}
	code := make([]byte, 8)
	for i, b := range buf {
		code[i] = skuAlphabet[int(b)%len(skuAlphabet)]
	}
	return "S-" + string(code)
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		SKU:           GenerateSKU(),
		Name:          req.Name,
		Quantity:      req.Quantity,
		Status:        model.ProductAvailable,
		SellingPriceA: req.SellingPriceA,
		SellingPriceB: req.SellingPriceB,
		SellingPriceC: req.SellingPriceC,
		CostPrice:     req.CostPrice,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: create product: %v", ErrStoreUnavailable, err)
	}

	mov := &model.StockMovement{
		ProductID:      p.ID,
		Type:           model.MovementRestock,
		Quantity:       req.Quantity,
		QuantityBefore: 0,
		QuantityAfter:  req.Quantity,
		Reason:         "Manual stock-in",
	}
	if err := s.movements.Create(ctx, mov); err != nil {
		return nil, err
	}

	return productToResponse(p), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.SellingPriceA != nil {
		p.SellingPriceA = *req.SellingPriceA
	}
	if req.SellingPriceB != nil {
		p.SellingPriceB = *req.SellingPriceB
	}
	if req.SellingPriceC != nil {
		p.SellingPriceC = *req.SellingPriceC
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: update product: %v", ErrStoreUnavailable, err)
	}
	s.invalidatePriceCache(ctx, p.SKU)
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("product not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete product: %v", ErrStoreUnavailable, err)
	}
	s.invalidatePriceCache(ctx, p.SKU)
	return nil
}

func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if p.Quantity+req.Delta < 0 {
		return nil, fmt.Errorf("adjustment would leave %s with negative stock", p.SKU)
	}

	if err := s.repo.AdjustStock(ctx, id, req.Delta); err != nil {
		return nil, fmt.Errorf("%w: adjust stock: %v", ErrStoreUnavailable, err)
	}

	mov := &model.StockMovement{
		ProductID:      p.ID,
		Type:           model.MovementAdjust,
		Quantity:       req.Delta,
		QuantityBefore: p.Quantity,
		QuantityAfter:  p.Quantity + req.Delta,
		Reason:         req.Reason,
	}
	if err := s.movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	s.invalidatePriceCache(ctx, p.SKU)

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToResponse(updated), nil
}

func (s *productService) invalidatePriceCache(ctx context.Context, sku string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, PriceCacheKeyPrefix+sku).Err()
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	var vbID *string
	if p.VendorBillID != nil {
		s := p.VendorBillID.String()
		vbID = &s
	}
	return &dto.ProductResponse{
		ID:            p.ID.String(),
		SKU:           p.SKU,
		Name:          p.Name,
		Quantity:      p.Quantity,
		Status:        p.Status,
		SellingPriceA: p.SellingPriceA,
		SellingPriceB: p.SellingPriceB,
		SellingPriceC: p.SellingPriceC,
		CostPrice:     p.CostPrice,
		VendorBillID:  vbID,
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
