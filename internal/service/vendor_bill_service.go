package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sareepos/internal/dto"
	"sareepos/internal/model"
	"sareepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

type VendorBillService interface {
	Create(ctx context.Context, req dto.CreateVendorBillRequest) (*dto.VendorBillResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.VendorBillResponse, error)
	List(ctx context.Context, filter dto.VendorBillFilter) (*dto.VendorBillListResponse, error)
}

type vendorBillService struct {
	repo      repository.VendorBillRepository
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

func NewVendorBillService(
	repo repository.VendorBillRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
) VendorBillService {
	return &vendorBillService{repo: repo, products: products, movements: movements}
}

// Create registers a purchase and stocks in its products atomically: the
// vendor bill row, one product per line (fresh SKU each) and the restock
// movements all land in a single transaction.
func (s *vendorBillService) Create(ctx context.Context, req dto.CreateVendorBillRequest) (*dto.VendorBillResponse, error) {
	billDate, err := time.Parse("2006-01-02", req.BillDate)
	if err != nil {
		return nil, errors.New("invalid bill_date")
	}

	// GST rate sanity: local purchases split CGST+SGST, inter-state uses IGST.
	var combinedRate decimal.Decimal
	if req.IsLocalTransaction {
		if req.IGSTRate.IsPositive() {
			return nil, errors.New("local transaction cannot carry IGST")
		}
		combinedRate = req.CGSTRate.Add(req.SGSTRate)
	} else {
		if req.CGSTRate.IsPositive() || req.SGSTRate.IsPositive() {
			return nil, errors.New("inter-state transaction carries IGST only")
		}
		combinedRate = req.IGSTRate
	}

	// TotalAmount is GST-inclusive; back out the tax portion.
	gstAmount := req.TotalAmount.
		Mul(combinedRate).
		Div(hundred.Add(combinedRate)).
		Round(2)

	vb := &model.VendorBill{
		CompanyName:        req.CompanyName,
		BillNumber:         req.BillNumber,
		BillDate:           billDate,
		IsLocalTransaction: req.IsLocalTransaction,
		CGSTRate:           req.CGSTRate,
		SGSTRate:           req.SGSTRate,
		IGSTRate:           req.IGSTRate,
		GSTAmount:          gstAmount,
		TotalAmount:        req.TotalAmount,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, vb); err != nil {
			return fmt.Errorf("%w: create vendor bill: %v", ErrStoreUnavailable, err)
		}

		for _, line := range req.Products {
			vbID := vb.ID
			p := &model.Product{
				SKU:           GenerateSKU(),
				Name:          line.Name,
				Quantity:      line.Quantity,
				Status:        model.ProductAvailable,
				SellingPriceA: line.SellingPriceA,
				SellingPriceB: line.SellingPriceB,
				SellingPriceC: line.SellingPriceC,
				CostPrice:     line.CostPrice,
				VendorBillID:  &vbID,
			}
			if err := s.products.CreateTx(tx, p); err != nil {
				return fmt.Errorf("%w: stock in %q: %v", ErrStoreUnavailable, line.Name, err)
			}

			mov := &model.StockMovement{
				ProductID:      p.ID,
				Type:           model.MovementRestock,
				Quantity:       line.Quantity,
				QuantityBefore: 0,
				QuantityAfter:  line.Quantity,
				Reason:         fmt.Sprintf("Vendor bill %s (%s)", vb.BillNumber, vb.CompanyName),
				ReferenceID:    &vbID,
			}
			if err := s.movements.CreateTx(tx, mov); err != nil {
				return err
			}
			vb.Products = append(vb.Products, *p)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return vendorBillToResponse(vb), nil
}

func (s *vendorBillService) Get(ctx context.Context, id uuid.UUID) (*dto.VendorBillResponse, error) {
	vb, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vendor bill not found")
	}
	return vendorBillToResponse(vb), nil
}

func (s *vendorBillService) List(ctx context.Context, filter dto.VendorBillFilter) (*dto.VendorBillListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	vbs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorBillResponse, 0, len(vbs))
	for i := range vbs {
		items = append(items, *vendorBillToResponse(&vbs[i]))
	}
	return &dto.VendorBillListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func vendorBillToResponse(vb *model.VendorBill) *dto.VendorBillResponse {
	skus := make([]string, 0, len(vb.Products))
	for _, p := range vb.Products {
		skus = append(skus, p.SKU)
	}
	return &dto.VendorBillResponse{
		ID:                 vb.ID.String(),
		CompanyName:        vb.CompanyName,
		BillNumber:         vb.BillNumber,
		BillDate:           vb.BillDate.Format("2006-01-02"),
		IsLocalTransaction: vb.IsLocalTransaction,
		CGSTRate:           vb.CGSTRate,
		SGSTRate:           vb.SGSTRate,
		IGSTRate:           vb.IGSTRate,
		GSTAmount:          vb.GSTAmount,
		TotalAmount:        vb.TotalAmount,
		ProductCount:       len(vb.Products),
		SKUs:               skus,
	}
}
