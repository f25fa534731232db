package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tenaypos/internal/model"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date   string `form:"date"`                     // YYYY-MM-DD; empty = today
	Status string `form:"status,default=completed"` // completed | cancelled | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID   *string         `json:"product_id"   validate:"omitempty,uuid"`
	Name        string          `json:"name"         validate:"required"`
	VariantText *string         `json:"variant_text"`
	Quantity    int             `json:"quantity"     validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"        validate:"required"`
}

type SalePaymentRequest struct {
	Method string          `json:"method" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type RegisterSaleRequest struct {
	Items    []SaleItemRequest    `json:"items"    validate:"required,min=1,dive"`
	Payments []SalePaymentRequest `json:"payments" validate:"required,min=1,dive"`
	Subtotal decimal.Decimal      `json:"subtotal" validate:"required"`
	Discount decimal.Decimal      `json:"discount" validate:"min=0"`
	Total    decimal.Decimal      `json:"total"    validate:"required"`
	// CustomerID is required when any payment method is store credit.
	CustomerID *string `json:"customer_id" validate:"omitempty,uuid"`
}

type CancelSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	Name        string          `json:"name"`
	VariantText *string         `json:"variant_text,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SalePaymentResponse struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

type SaleResponse struct {
	ID           string                `json:"id"`
	Folio        string                `json:"folio"`
	Items        []SaleItemResponse    `json:"items"`
	Payments     []SalePaymentResponse `json:"payments"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	Discount     decimal.Decimal       `json:"discount"`
	Total        decimal.Decimal       `json:"total"`
	CustomerID   *string               `json:"customer_id,omitempty"`
	CustomerName *string               `json:"customer_name,omitempty"`
	Cashier      string                `json:"cashier"`
	Status       string                `json:"status"`
	CancelReason *string               `json:"cancel_reason,omitempty"`
	CreatedAt    string                `json:"created_at"`
}

// SaleFromModel maps a persisted sale, items and payments included.
func SaleFromModel(s *model.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			Name:        it.Name,
			VariantText: it.VariantText,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal,
		})
	}
	pays := make([]SalePaymentResponse, 0, len(s.Payments))
	for _, p := range s.Payments {
		pays = append(pays, SalePaymentResponse{Method: p.Method, Amount: p.Amount})
	}
	var custID *string
	if s.CustomerID != nil {
		id := s.CustomerID.String()
		custID = &id
	}
	return SaleResponse{
		ID:           s.ID.String(),
		Folio:        s.Folio,
		Items:        items,
		Payments:     pays,
		Subtotal:     s.Subtotal,
		Discount:     s.Discount,
		Total:        s.Total,
		CustomerID:   custID,
		CustomerName: s.CustomerName,
		Cashier:      s.Cashier,
		Status:       s.Status,
		CancelReason: s.CancelReason,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
}
