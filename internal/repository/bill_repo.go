package repository

import (
	"context"
	"time"

	"sareepos/internal/dto"
	"sareepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.Bill) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error)
	NextBillNumber(ctx context.Context, tx *gorm.DB) (int, error)
	List(ctx context.Context, filter dto.BillFilter) ([]model.Bill, int64, error)
	Update(ctx context.Context, b *model.Bill) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// ListMissingStockDebits returns bills created after `since` that have at
	// least one item with no matching sale stock movement. Used by the
	// reconcile cron to detect partial writes.
	ListMissingStockDebits(ctx context.Context, since time.Time, limit int) ([]model.Bill, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type billRepo struct{ db *gorm.DB }

func NewBillRepository(db *gorm.DB) BillRepository { return &billRepo{db: db} }

func (r *billRepo) DB() *gorm.DB { return r.db }

func (r *billRepo) Create(ctx context.Context, tx *gorm.DB, b *model.Bill) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *billRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).Preload("Items").First(&b, id).Error
	return &b, err
}

func (r *billRepo) NextBillNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic bill number generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('bills_bill_number_seq')").Scan(&num).Error
	return num, err
}

func (r *billRepo) List(ctx context.Context, filter dto.BillFilter) ([]model.Bill, int64, error) {
	var bills []model.Bill
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Bill{})

	if filter.PaymentMethod != "" {
		q = q.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepo) Update(ctx context.Context, b *model.Bill) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *billRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("bill_id = ?", id).Delete(&model.BillItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Bill{}, id).Error
}

func (r *billRepo) ListMissingStockDebits(ctx context.Context, since time.Time, limit int) ([]model.Bill, error) {
	var bills []model.Bill
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT b.*
		FROM bills b
		JOIN bill_items bi ON bi.bill_id = b.id
		LEFT JOIN stock_movements sm
		       ON sm.reference_id = b.id
		      AND sm.product_id = bi.product_id
		      AND sm.type = ?
		WHERE sm.id IS NULL
		  AND b.created_at >= ?
		ORDER BY b.created_at
		LIMIT ?`, model.MovementSale, since, limit).
		Scan(&bills).Error
	return bills, err
}
