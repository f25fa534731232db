package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tenaypos/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterMovementRequest struct {
	Type        string          `json:"type"        validate:"required,oneof=opening income expense customerPayment adjustment"`
	Amount      decimal.Decimal `json:"amount"      validate:"required"`
	Description string          `json:"description" validate:"required,min=3"`
}

type CreateCashCutRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount" validate:"min=0"`
	ClosingAmount decimal.Decimal `json:"closing_amount" validate:"min=0"`
	Notes         *string         `json:"notes"`
}

// MovementFilter is bound from the query string of GET /v1/cashbox/movements.
type MovementFilter struct {
	Date  string `form:"date"` // YYYY-MM-DD; empty = since last cut
	Type  string `form:"type"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// CutFilter is bound from the query string of GET /v1/cashbox/cuts.
type CutFilter struct {
	From  string `form:"from"` // RFC 3339 or YYYY-MM-DD
	To    string `form:"to"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovementResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Direction   string          `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Username    string          `json:"username"`
	CreatedAt   string          `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// MovementBreakdown sums the window's manual movements per type so the
// dashboard can show where the drawer money came from and went.
type MovementBreakdown struct {
	Openings         decimal.Decimal `json:"openings"`
	Incomes          decimal.Decimal `json:"incomes"`
	Expenses         decimal.Decimal `json:"expenses"`
	CustomerPayments decimal.Decimal `json:"customer_payments"`
	Adjustments      decimal.Decimal `json:"adjustments"`
}

// CashboxSummaryResponse is the live read-only view of the open window,
// from the last cut's range end until now. TotalIn covers every inbound
// movement, opening floats included.
type CashboxSummaryResponse struct {
	Since           string                     `json:"since"`
	Until           string                     `json:"until"`
	CashFromSales   decimal.Decimal            `json:"cash_from_sales"`
	TotalIn         decimal.Decimal            `json:"total_in"`
	TotalOut        decimal.Decimal            `json:"total_out"`
	TheoreticalCash decimal.Decimal            `json:"theoretical_cash"`
	TotalSales      decimal.Decimal            `json:"total_sales"`
	SalesCount      int                        `json:"sales_count"`
	TotalsByMethod  map[string]decimal.Decimal `json:"totals_by_method"`
	Breakdown       MovementBreakdown          `json:"breakdown"`
	LastCut         *CashCutResponse           `json:"last_cut,omitempty"`
}

type CashCutResponse struct {
	ID                  string                     `json:"id"`
	Folio               string                     `json:"folio"`
	RangeStart          string                     `json:"range_start"`
	RangeEnd            string                     `json:"range_end"`
	OpeningAmount       decimal.Decimal            `json:"opening_amount"`
	ClosingAmount       decimal.Decimal            `json:"closing_amount"`
	ExpectedCash        decimal.Decimal            `json:"expected_cash"`
	Difference          decimal.Decimal            `json:"difference"`
	TotalSales          decimal.Decimal            `json:"total_sales"`
	TotalCost           decimal.Decimal            `json:"total_cost"`
	Profit              decimal.Decimal            `json:"profit"`
	SalesCount          int                        `json:"sales_count"`
	CancelledSalesCount int                        `json:"cancelled_sales_count"`
	CancelledSalesTotal decimal.Decimal            `json:"cancelled_sales_total"`
	TotalsByMethod      map[string]decimal.Decimal `json:"totals_by_method"`
	Notes               *string                    `json:"notes,omitempty"`
	Username            string                     `json:"username"`
	CreatedAt           string                     `json:"created_at"`
}

type CashCutListResponse struct {
	Data  []CashCutResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

func MovementFromModel(m *model.CashMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID.String(),
		Type:        string(m.Type),
		Direction:   m.Direction,
		Amount:      m.Amount,
		Description: m.Description,
		Username:    m.Username,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

func CashCutFromModel(c *model.CashCut) CashCutResponse {
	return CashCutResponse{
		ID:                  c.ID.String(),
		Folio:               c.Folio,
		RangeStart:          c.RangeStart.Format(time.RFC3339),
		RangeEnd:            c.RangeEnd.Format(time.RFC3339),
		OpeningAmount:       c.OpeningAmount,
		ClosingAmount:       c.ClosingAmount,
		ExpectedCash:        c.ExpectedCash,
		Difference:          c.Difference,
		TotalSales:          c.TotalSales,
		TotalCost:           c.TotalCost,
		Profit:              c.Profit,
		SalesCount:          c.SalesCount,
		CancelledSalesCount: c.CancelledSalesCount,
		CancelledSalesTotal: c.CancelledSalesTotal,
		TotalsByMethod:      c.TotalsByMethod,
		Notes:               c.Notes,
		Username:            c.Username,
		CreatedAt:           c.CreatedAt.Format(time.RFC3339),
	}
}
