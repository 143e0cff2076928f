package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sareepos/internal/dto"
	"sareepos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// reportCacheTTL is short on purpose: reports are read-side only, and a
// checkout landing mid-minute should show up on the founder dashboard
// without manual cache busting.
const reportCacheTTL = 60 * time.Second

type ReportService interface {
	GetSummary(ctx context.Context, from, to string) (*dto.SummaryResponse, error)
	GetDailySales(ctx context.Context, days int) (*dto.DailySalesResponse, error)
	GetGST(ctx context.Context, from, to string) (*dto.GSTReportResponse, error)
	GetProfitLoss(ctx context.Context, from, to string) (*dto.ProfitLossResponse, error)
}

type reportService struct {
	repo repository.ReportRepository
	rdb  *redis.Client
}

func NewReportService(repo repository.ReportRepository, rdb *redis.Client) ReportService {
	return &reportService{repo: repo, rdb: rdb}
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	f, err := time.Parse("2006-01-02", from)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from date")
	}
	t, err := time.Parse("2006-01-02", to)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to date")
	}
	if t.Before(f) {
		return time.Time{}, time.Time{}, errors.New("to date precedes from date")
	}
	return f, t, nil
}

// cached runs the cache-aside pattern: hit Redis first, fall through to
// compute, then populate best-effort. A nil client disables caching.
func cached[T any](ctx context.Context, rdb *redis.Client, key string, compute func() (*T, error)) (*T, error) {
	if rdb != nil {
		if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
			var out T
			if json.Unmarshal(raw, &out) == nil {
				return &out, nil
			}
		}
	}
	out, err := compute()
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		if b, err := json.Marshal(out); err == nil {
			_ = rdb.Set(ctx, key, b, reportCacheTTL).Err()
		}
	}
	return out, nil
}

func (s *reportService) GetSummary(ctx context.Context, from, to string) (*dto.SummaryResponse, error) {
	f, t, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s.rdb, "report:summary:"+from+":"+to, func() (*dto.SummaryResponse, error) {
		sales, err := s.repo.SalesTotals(ctx, f, t)
		if err != nil {
			return nil, err
		}
		expenses, err := s.repo.ExpenseTotals(ctx, f, t)
		if err != nil {
			return nil, err
		}
		totalExpenses := decimal.Zero
		for _, e := range expenses {
			totalExpenses = totalExpenses.Add(e.Total)
		}
		gross := sales.TotalSales.Sub(sales.TotalCost)
		return &dto.SummaryResponse{
			From:          from,
			To:            to,
			BillCount:     sales.BillCount,
			TotalSales:    sales.TotalSales,
			TotalCost:     sales.TotalCost,
			TotalExpenses: totalExpenses,
			GrossProfit:   gross,
			NetProfit:     gross.Sub(totalExpenses),
		}, nil
	})
}

func (s *reportService) GetDailySales(ctx context.Context, days int) (*dto.DailySalesResponse, error) {
	if days < 1 {
		days = 7
	}
	rows, err := s.repo.DailySales(ctx, days)
	if err != nil {
		return nil, err
	}
	resp := &dto.DailySalesResponse{Days: make([]dto.DailySalesRow, 0, len(rows))}
	for _, r := range rows {
		resp.Days = append(resp.Days, dto.DailySalesRow{
			Date:       r.Day.Format("2006-01-02"),
			BillCount:  r.BillCount,
			TotalSales: r.TotalSales,
		})
	}
	return resp, nil
}

func (s *reportService) GetGST(ctx context.Context, from, to string) (*dto.GSTReportResponse, error) {
	f, t, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s.rdb, "report:gst:"+from+":"+to, func() (*dto.GSTReportResponse, error) {
		sales, err := s.repo.SalesTotals(ctx, f, t)
		if err != nil {
			return nil, err
		}
		inputGST, err := s.repo.InputGST(ctx, f, t)
		if err != nil {
			return nil, err
		}
		output := sales.OutputCGST.Add(sales.OutputSGST)
		return &dto.GSTReportResponse{
			From:       from,
			To:         to,
			OutputCGST: sales.OutputCGST,
			OutputSGST: sales.OutputSGST,
			InputGST:   inputGST,
			NetPayable: output.Sub(inputGST),
		}, nil
	})
}

func (s *reportService) GetProfitLoss(ctx context.Context, from, to string) (*dto.ProfitLossResponse, error) {
	f, t, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s.rdb, "report:pnl:"+from+":"+to, func() (*dto.ProfitLossResponse, error) {
		sales, err := s.repo.SalesTotals(ctx, f, t)
		if err != nil {
			return nil, err
		}
		expenses, err := s.repo.ExpenseTotals(ctx, f, t)
		if err != nil {
			return nil, err
		}
		byCategory := make(map[string]decimal.Decimal, len(expenses))
		totalExpenses := decimal.Zero
		for _, e := range expenses {
			byCategory[e.Category] = e.Total
			totalExpenses = totalExpenses.Add(e.Total)
		}
		gross := sales.TotalSales.Sub(sales.TotalCost)
		return &dto.ProfitLossResponse{
			From:              from,
			To:                to,
			Revenue:           sales.TotalSales,
			CostOfGoods:       sales.TotalCost,
			GrossProfit:       gross,
			ExpenseByCategory: byCategory,
			TotalExpenses:     totalExpenses,
			NetProfit:         gross.Sub(totalExpenses),
		}, nil
	})
}
