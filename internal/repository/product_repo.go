package repository

import (
	"context"

	"sareepos/internal/dto"
	"sareepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	CreateTx(tx *gorm.DB, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStockTx performs the atomic conditional decrement used by
	// checkout. Returns the number of rows affected: 0 means the product had
	// fewer than qty units and nothing was written.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error)

	// RestoreStockTx reverses a sale line: adds qty back and flips the
	// product to available. Used by bill deletion.
	RestoreStockTx(tx *gorm.DB, id uuid.UUID, qty int) error

	// AdjustStock applies a manual delta outside the sale path.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) CreateTx(tx *gorm.DB, p *model.Product) error {
	return tx.Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	// Status filter: "sold", "all", anything else = available (default)
	switch filter.Status {
	case model.ProductSold:
		q = q.Where("status = ?", model.ProductSold)
	case "all":
		// no filter
	default:
		q = q.Where("status = ?", model.ProductAvailable)
	}

	if filter.SKU != "" {
		q = q.Where("sku = ?", filter.SKU)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	// Conditional decrement: two concurrent checkouts racing for the last
	// unit serialize here — the loser matches zero rows.
	res := tx.Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", qty),
			"status":   gorm.Expr("CASE WHEN quantity - ? <= 0 THEN 'sold' ELSE 'available' END", qty),
		})
	return res.RowsAffected, res.Error
}

func (r *productRepo) RestoreStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", qty),
			"status":   model.ProductAvailable,
		}).Error
}

func (r *productRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", delta),
			"status":   gorm.Expr("CASE WHEN quantity + ? <= 0 THEN 'sold' ELSE 'available' END", delta),
		}).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
