package infra

import (
	"fmt"

	"sareepos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (the bill number sequence, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// fresh container database.
func RunMigrations(db *gorm.DB) error {
	// VendorBill before Product: products carry a vendor_bill_id FK.
	if err := db.AutoMigrate(
		&model.VendorBill{},
		&model.Product{},
		&model.Profile{},
		&model.Bill{},
		&model.BillItem{},
		&model.Expense{},
		&model.StockMovement{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot produce.
// Each statement uses IF NOT EXISTS semantics so re-running on an
// already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Sequential human-facing bill numbers. nextval() is atomic, which is
		// what makes bill number generation safe under concurrent checkouts.
		`CREATE SEQUENCE IF NOT EXISTS bills_bill_number_seq START 1`,

		// Partial index for the POS lookup path: scans resolve a SKU that is
		// still sellable, sold rows only matter for history views.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_products_available_sku') THEN
		    CREATE INDEX idx_products_available_sku
		        ON products (sku)
		        WHERE status = 'available';
		  END IF;
		END $$`,

		// Covering index for the reconcile cron's anti-join between bill
		// items and sale stock movements.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_stock_movements_reference') THEN
		    CREATE INDEX idx_stock_movements_reference
		        ON stock_movements (reference_id, product_id, type);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
