package repository

import (
	"context"

	"sareepos/internal/dto"
	"sareepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorBillRepository interface {
	CreateTx(tx *gorm.DB, vb *model.VendorBill) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VendorBill, error)
	List(ctx context.Context, filter dto.VendorBillFilter) ([]model.VendorBill, int64, error)
	DB() *gorm.DB
}

type vendorBillRepo struct{ db *gorm.DB }

func NewVendorBillRepository(db *gorm.DB) VendorBillRepository { return &vendorBillRepo{db: db} }

func (r *vendorBillRepo) DB() *gorm.DB { return r.db }

func (r *vendorBillRepo) CreateTx(tx *gorm.DB, vb *model.VendorBill) error {
	return tx.Create(vb).Error
}

func (r *vendorBillRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.VendorBill, error) {
	var vb model.VendorBill
	err := r.db.WithContext(ctx).Preload("Products").First(&vb, id).Error
	return &vb, err
}

func (r *vendorBillRepo) List(ctx context.Context, filter dto.VendorBillFilter) ([]model.VendorBill, int64, error) {
	var vbs []model.VendorBill
	var total int64

	q := r.db.WithContext(ctx).Model(&model.VendorBill{})

	if filter.CompanyName != "" {
		q = q.Where("company_name ILIKE ?", "%"+filter.CompanyName+"%")
	}
	if filter.From != "" {
		q = q.Where("bill_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("bill_date <= ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Products").
		Order("bill_date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&vbs).Error
	return vbs, total, err
}
