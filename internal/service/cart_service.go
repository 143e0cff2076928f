package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sareepos/internal/dto"
	"sareepos/internal/model"
	"sareepos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	cartKeyPrefix = "cart:"
	cartTTL       = 12 * time.Hour
)

// CartLine is one SKU in an in-progress sale. UnitPrice here is display-only;
// checkout re-reads the tier price so the bill snapshots the price at the
// moment of sale, not at the moment the line was added.
type CartLine struct {
	SKU       string          `json:"sku"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	PriceTier string          `json:"price_tier"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Available int             `json:"available"`
}

// CartStore persists in-progress carts. The production implementation is
// Redis-backed so a salesperson can resume a cart from any terminal.
type CartStore interface {
	Load(ctx context.Context, userID uuid.UUID) ([]CartLine, error)
	Save(ctx context.Context, userID uuid.UUID, lines []CartLine) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type redisCartStore struct{ rdb *redis.Client }

func NewRedisCartStore(rdb *redis.Client) CartStore { return &redisCartStore{rdb: rdb} }

func cartKey(userID uuid.UUID) string { return cartKeyPrefix + userID.String() }

func (s *redisCartStore) Load(ctx context.Context, userID uuid.UUID) ([]CartLine, error) {
	raw, err := s.rdb.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load cart: %v", ErrStoreUnavailable, err)
	}
	var lines []CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		// Corrupt cart payload — drop it rather than brick the terminal.
		_ = s.rdb.Del(ctx, cartKey(userID)).Err()
		return nil, nil
	}
	return lines, nil
}

func (s *redisCartStore) Save(ctx context.Context, userID uuid.UUID, lines []CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, cartKey(userID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("%w: save cart: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *redisCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.rdb.Del(ctx, cartKey(userID)).Err()
}

// CartService manages the per-salesperson cart.
type CartService interface {
	Add(ctx context.Context, userID uuid.UUID, req dto.AddToCartRequest) (*dto.CartResponse, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, sku string, qty int) (*dto.CartResponse, error)
	Remove(ctx context.Context, userID uuid.UUID, sku string) (*dto.CartResponse, error)
	Get(ctx context.Context, userID uuid.UUID) (*dto.CartResponse, error)

	// Lines and Clear are used by the checkout workflow.
	Lines(ctx context.Context, userID uuid.UUID) ([]CartLine, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	store    CartStore
	products repository.ProductRepository
}

func NewCartService(store CartStore, products repository.ProductRepository) CartService {
	return &cartService{store: store, products: products}
}

// TierPrice returns the selling price for a tier, falling back to tier A
// when the requested tier has no price set.
func TierPrice(p *model.Product, tier string) decimal.Decimal {
	switch tier {
	case "b":
		if p.SellingPriceB.IsPositive() {
			return p.SellingPriceB
		}
	case "c":
		if p.SellingPriceC.IsPositive() {
			return p.SellingPriceC
		}
	}
	return p.SellingPriceA
}

func (s *cartService) Add(ctx context.Context, userID uuid.UUID, req dto.AddToCartRequest) (*dto.CartResponse, error) {
	lines, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if l.SKU == req.SKU {
			return nil, fmt.Errorf("%s: %w", req.SKU, ErrDuplicateInCart)
		}
	}

	p, err := s.products.FindBySKU(ctx, req.SKU)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", req.SKU, ErrSKUNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if p.Status != model.ProductAvailable || p.Quantity < 1 {
		return nil, fmt.Errorf("%s: %w", req.SKU, ErrUnavailable)
	}

	tier := req.PriceTier
	if tier == "" {
		tier = "a"
	}
	lines = append(lines, CartLine{
		SKU:       p.SKU,
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  1,
		PriceTier: tier,
		UnitPrice: TierPrice(p, tier),
		Available: p.Quantity,
	})
	if err := s.store.Save(ctx, userID, lines); err != nil {
		return nil, err
	}
	return cartToResponse(lines), nil
}

// UpdateQuantity clamps qty to [1, product.Quantity]. A request below 1 is
// rejected as a no-op — removal is a distinct explicit action.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, sku string, qty int) (*dto.CartResponse, error) {
	lines, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, l := range lines {
		if l.SKU == sku {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%s: %w", sku, ErrSKUNotFound)
	}
	if qty < 1 {
		return cartToResponse(lines), nil
	}

	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", sku, ErrSKUNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if qty > p.Quantity {
		qty = p.Quantity
	}
	if qty < 1 {
		qty = 1
	}

	lines[idx].Quantity = qty
	lines[idx].Available = p.Quantity
	lines[idx].UnitPrice = TierPrice(p, lines[idx].PriceTier)
	if err := s.store.Save(ctx, userID, lines); err != nil {
		return nil, err
	}
	return cartToResponse(lines), nil
}

func (s *cartService) Remove(ctx context.Context, userID uuid.UUID, sku string) (*dto.CartResponse, error) {
	lines, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := lines[:0]
	found := false
	for _, l := range lines {
		if l.SKU == sku {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", sku, ErrSKUNotFound)
	}
	if err := s.store.Save(ctx, userID, kept); err != nil {
		return nil, err
	}
	return cartToResponse(kept), nil
}

func (s *cartService) Get(ctx context.Context, userID uuid.UUID) (*dto.CartResponse, error) {
	lines, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cartToResponse(lines), nil
}

func (s *cartService) Lines(ctx context.Context, userID uuid.UUID) ([]CartLine, error) {
	return s.store.Load(ctx, userID)
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Clear(ctx, userID)
}

func cartToResponse(lines []CartLine) *dto.CartResponse {
	resp := &dto.CartResponse{
		Lines:    make([]dto.CartLineResponse, 0, len(lines)),
		Subtotal: decimal.Zero,
	}
	for _, l := range lines {
		lineTotal := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		resp.Subtotal = resp.Subtotal.Add(lineTotal)
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			SKU:       l.SKU,
			Name:      l.Name,
			Quantity:  l.Quantity,
			PriceTier: l.PriceTier,
			UnitPrice: l.UnitPrice,
			Available: l.Available,
		})
	}
	return resp
}
