package dto

import "github.com/shopspring/decimal"

// SalesReportResponse aggregates completed sales for a preset period
// (today | week | month).
type SalesReportResponse struct {
	Period         string                     `json:"period"`
	From           string                     `json:"from"`
	To             string                     `json:"to"`
	TotalSales     decimal.Decimal            `json:"total_sales"`
	TotalCost      decimal.Decimal            `json:"total_cost"`
	Profit         decimal.Decimal            `json:"profit"`
	SalesCount     int                        `json:"sales_count"`
	TotalsByMethod map[string]decimal.Decimal `json:"totals_by_method"`
}
