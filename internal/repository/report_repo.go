package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesTotals is the read-side aggregate over bills in a date range.
type SalesTotals struct {
	BillCount  int64
	TotalSales decimal.Decimal
	TotalCost  decimal.Decimal
	OutputCGST decimal.Decimal
	OutputSGST decimal.Decimal
}

type DailySalesRow struct {
	Day        time.Time
	BillCount  int64
	TotalSales decimal.Decimal
}

type ExpenseTotal struct {
	Category string
	Total    decimal.Decimal
}

// ReportRepository is the query surface for summaries, GST and profit-loss.
// Pure read side: every method is a single aggregate SQL statement, so the
// correctness of the numbers depends only on checkout persisting consistent
// bill and expense fields.
type ReportRepository interface {
	SalesTotals(ctx context.Context, from, to time.Time) (*SalesTotals, error)
	DailySales(ctx context.Context, days int) ([]DailySalesRow, error)
	InputGST(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	ExpenseTotals(ctx context.Context, from, to time.Time) ([]ExpenseTotal, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) SalesTotals(ctx context.Context, from, to time.Time) (*SalesTotals, error) {
	var t SalesTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)                        AS bill_count,
		       COALESCE(SUM(total_amount), 0) AS total_sales,
		       COALESCE(SUM(total_cost), 0)   AS total_cost,
		       COALESCE(SUM(cgst), 0)         AS output_cgst,
		       COALESCE(SUM(sgst), 0)         AS output_sgst
		FROM bills
		WHERE DATE(created_at) BETWEEN ? AND ?`, from, to).
		Scan(&t).Error
	return &t, err
}

func (r *reportRepo) DailySales(ctx context.Context, days int) ([]DailySalesRow, error) {
	var rows []DailySalesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT DATE(created_at)               AS day,
		       COUNT(*)                       AS bill_count,
		       COALESCE(SUM(total_amount), 0) AS total_sales
		FROM bills
		WHERE created_at >= CURRENT_DATE - (? - 1) * INTERVAL '1 day'
		GROUP BY DATE(created_at)
		ORDER BY day`, days).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) InputGST(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(gst_amount), 0)
		FROM vendor_bills
		WHERE bill_date BETWEEN ? AND ?`, from, to).
		Scan(&total).Error
	return total, err
}

func (r *reportRepo) ExpenseTotals(ctx context.Context, from, to time.Time) ([]ExpenseTotal, error) {
	var totals []ExpenseTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT category, COALESCE(SUM(amount), 0) AS total
		FROM expenses
		WHERE expense_date BETWEEN ? AND ?
		GROUP BY category
		ORDER BY category`, from, to).
		Scan(&totals).Error
	return totals, err
}
