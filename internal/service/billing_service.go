package service

import (
	"context"
	"errors"
	"fmt"

	"sareepos/internal/dto"
	"sareepos/internal/model"
	"sareepos/internal/repository"
	"sareepos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// gstHalfRate is the CGST rate and, separately, the SGST rate (2.5% each,
// 5% combined — the saree slab). The two halves are rounded independently
// to whole currency units, so they can differ by one rupee from an exact
// split of the combined figure. That asymmetry is intentional and pinned
// by tests.
var gstHalfRate = decimal.NewFromFloat(0.025)

type BillingService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req dto.CheckoutRequest) (*dto.BillResponse, error)
	GetBill(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error)
	ListBills(ctx context.Context, filter dto.BillFilter) (*dto.BillListResponse, error)
	UpdateBill(ctx context.Context, id uuid.UUID, req dto.UpdateBillRequest) (*dto.BillResponse, error)
	DeleteBill(ctx context.Context, id uuid.UUID) error
}

type billingService struct {
	bills      repository.BillRepository
	products   repository.ProductRepository
	movements  repository.StockMovementRepository
	carts      CartService
	dispatcher *worker.Dispatcher
}

func NewBillingService(
	bills repository.BillRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	carts CartService,
	dispatcher *worker.Dispatcher,
) BillingService {
	return &billingService{
		bills:      bills,
		products:   products,
		movements:  movements,
		carts:      carts,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// GSTSplit computes the independently-rounded CGST/SGST halves and the
// grand total for a subtotal: cgst = round(S × 0.025), sgst = round(S × 0.025),
// total = S + cgst + sgst. Rounding is to the nearest whole currency unit.
func GSTSplit(subtotal decimal.Decimal) (cgst, sgst, total decimal.Decimal) {
	cgst = subtotal.Mul(gstHalfRate).Round(0)
	sgst = subtotal.Mul(gstHalfRate).Round(0)
	total = subtotal.Add(cgst).Add(sgst)
	return cgst, sgst, total
}

// ── Checkout ──────────────────────────────────────────────────────────────────
// Converts the caller's cart into a persisted, GST-correct bill:
//   1. Resolve each cart line against the live product row (price snapshot).
//   2. Compute subtotal, CGST, SGST, grand total.
//   3. BEGIN TX: next bill number, create bill + item snapshots, conditionally
//      decrement stock per line (zero rows → SoldOut, whole TX rolls back),
//      record stock movements.
//   4. COMMIT, clear the cart, dispatch the receipt email job (best effort).

func (s *billingService) Checkout(ctx context.Context, userID uuid.UUID, req dto.CheckoutRequest) (*dto.BillResponse, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Resolve products and snapshot prices (pre-flight, outside TX).
	type resolvedLine struct {
		productID    uuid.UUID
		sku          string
		name         string
		quantity     int
		sellingPrice decimal.Decimal
		costPrice    decimal.Decimal
		subtotal     decimal.Decimal
		stockBefore  int
	}

	resolved := make([]resolvedLine, 0, len(lines))
	subtotal := decimal.Zero
	totalCost := decimal.Zero

	for _, line := range lines {
		p, err := s.products.FindBySKU(ctx, line.SKU)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%s: %w", line.SKU, ErrSKUNotFound)
			}
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		price := TierPrice(p, line.PriceTier)
		lineSubtotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineSubtotal)
		totalCost = totalCost.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		resolved = append(resolved, resolvedLine{
			productID:    p.ID,
			sku:          p.SKU,
			name:         p.Name,
			quantity:     line.Quantity,
			sellingPrice: price,
			costPrice:    p.CostPrice,
			subtotal:     lineSubtotal,
			stockBefore:  p.Quantity,
		})
	}

	cgst, sgst, grandTotal := GSTSplit(subtotal)

	var bill model.Bill
	txErr := runTx(ctx, s.bills.DB(), func(tx *gorm.DB) error {
		billNumber, err := s.bills.NextBillNumber(ctx, tx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBillNumberGeneration, err)
		}

		bill = model.Bill{
			BillNumber:    billNumber,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			PaymentMethod: req.PaymentMethod,
			Subtotal:      subtotal,
			CGST:          cgst,
			SGST:          sgst,
			TotalAmount:   grandTotal,
			TotalCost:     totalCost,
			SoldByID:      userID,
		}
		for _, r := range resolved {
			bill.Items = append(bill.Items, model.BillItem{
				ProductID:    r.productID,
				SKU:          r.sku,
				Name:         r.name,
				Quantity:     r.quantity,
				SellingPrice: r.sellingPrice,
				CostPrice:    r.costPrice,
				Subtotal:     r.subtotal,
			})
		}

		if err := s.bills.Create(ctx, tx, &bill); err != nil {
			return fmt.Errorf("%w: create bill: %v", ErrStoreUnavailable, err)
		}

		for _, r := range resolved {
			// Conditional decrement: quantity = quantity - N WHERE quantity >= N.
			// Zero rows affected means a concurrent checkout took the stock;
			// the whole transaction rolls back and the caller drops the line.
			rows, err := s.products.DecrementStockTx(tx, r.productID, r.quantity)
			if err != nil {
				return fmt.Errorf("%w: decrement %s: %v", ErrStoreUnavailable, r.sku, err)
			}
			if rows == 0 {
				return fmt.Errorf("%s: %w", r.sku, ErrSoldOut)
			}

			billRef := bill.ID
			mov := &model.StockMovement{
				ProductID:      r.productID,
				Type:           model.MovementSale,
				Quantity:       -r.quantity,
				QuantityBefore: r.stockBefore,
				QuantityAfter:  r.stockBefore - r.quantity,
				Reason:         fmt.Sprintf("Bill #%d", bill.BillNumber),
				ReferenceID:    &billRef,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// Sale is committed; a stale cart is an annoyance, not a failure.
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("checkout: failed to clear cart")
	}

	// Receipt email job — best effort, fire & forget.
	if s.dispatcher != nil && req.CustomerEmail != nil && *req.CustomerEmail != "" {
		_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptPayload{
			BillID:        bill.ID.String(),
			CustomerEmail: *req.CustomerEmail,
		})
	}

	return billToResponse(&bill), nil
}

func (s *billingService) GetBill(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error) {
	bill, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("bill not found")
	}
	return billToResponse(bill), nil
}

func (s *billingService) ListBills(ctx context.Context, filter dto.BillFilter) (*dto.BillListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	bills, total, err := s.bills.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		items = append(items, *billToResponse(&bills[i]))
	}
	return &dto.BillListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// UpdateBill edits customer info and payment method only. Amounts and item
// snapshots are immutable once the bill exists.
func (s *billingService) UpdateBill(ctx context.Context, id uuid.UUID, req dto.UpdateBillRequest) (*dto.BillResponse, error) {
	bill, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("bill not found")
	}
	if req.CustomerName != nil {
		bill.CustomerName = req.CustomerName
	}
	if req.CustomerPhone != nil {
		bill.CustomerPhone = req.CustomerPhone
	}
	if req.PaymentMethod != nil {
		bill.PaymentMethod = *req.PaymentMethod
	}
	if err := s.bills.Update(ctx, bill); err != nil {
		return nil, fmt.Errorf("%w: update bill: %v", ErrStoreUnavailable, err)
	}
	return billToResponse(bill), nil
}

// ── DeleteBill ────────────────────────────────────────────────────────────────
// Symmetric compensating action for checkout: every item's quantity goes back
// onto the product, status flips to available, and a restore movement is
// recorded, all in one transaction with the bill row removal.

func (s *billingService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	bill, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return errors.New("bill not found")
	}

	return runTx(ctx, s.bills.DB(), func(tx *gorm.DB) error {
		for _, item := range bill.Items {
			before := 0
			if p, err := s.products.FindByID(ctx, item.ProductID); err == nil {
				before = p.Quantity
			}

			if err := s.products.RestoreStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("%w: restore %s: %v", ErrStoreUnavailable, item.SKU, err)
			}

			mov := &model.StockMovement{
				ProductID:      item.ProductID,
				Type:           model.MovementBillRestore,
				Quantity:       item.Quantity,
				QuantityBefore: before,
				QuantityAfter:  before + item.Quantity,
				Reason:         fmt.Sprintf("Bill #%d deleted", bill.BillNumber),
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return s.bills.DeleteTx(tx, id)
	})
}

func billToResponse(b *model.Bill) *dto.BillResponse {
	items := make([]dto.BillItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, dto.BillItemResponse{
			SKU:          item.SKU,
			Name:         item.Name,
			Quantity:     item.Quantity,
			SellingPrice: item.SellingPrice,
			Subtotal:     item.Subtotal,
		})
	}
	return &dto.BillResponse{
		ID:            b.ID.String(),
		BillNumber:    b.BillNumber,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		PaymentMethod: b.PaymentMethod,
		Items:         items,
		Subtotal:      b.Subtotal,
		CGST:          b.CGST,
		SGST:          b.SGST,
		TotalAmount:   b.TotalAmount,
		CreatedAt:     b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
