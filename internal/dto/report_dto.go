package dto

import "github.com/shopspring/decimal"

// DateRangeFilter is shared by the report endpoints.
type DateRangeFilter struct {
	From string `form:"from" validate:"required,datetime=2006-01-02"`
	To   string `form:"to"   validate:"required,datetime=2006-01-02"`
}

type DailySalesFilter struct {
	Days int `form:"days,default=7" validate:"min=1,max=90"`
}

type SummaryResponse struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	BillCount     int64           `json:"bill_count"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

type DailySalesRow struct {
	Date       string          `json:"date"`
	BillCount  int64           `json:"bill_count"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

type DailySalesResponse struct {
	Days []DailySalesRow `json:"days"`
}

type GSTReportResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	// Output tax collected on sales.
	OutputCGST decimal.Decimal `json:"output_cgst"`
	OutputSGST decimal.Decimal `json:"output_sgst"`
	// Input tax paid on vendor purchases.
	InputGST decimal.Decimal `json:"input_gst"`
	// NetPayable = output - input (negative means credit carried forward).
	NetPayable decimal.Decimal `json:"net_payable"`
}

type ProfitLossResponse struct {
	From              string                     `json:"from"`
	To                string                     `json:"to"`
	Revenue           decimal.Decimal            `json:"revenue"`
	CostOfGoods       decimal.Decimal            `json:"cost_of_goods"`
	GrossProfit       decimal.Decimal            `json:"gross_profit"`
	ExpenseByCategory map[string]decimal.Decimal `json:"expense_by_category"`
	TotalExpenses     decimal.Decimal            `json:"total_expenses"`
	NetProfit         decimal.Decimal            `json:"net_profit"`
}
