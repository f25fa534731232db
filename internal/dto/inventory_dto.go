package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tenaypos/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AddStockRequest receives merchandise. Cost and prices are optional: when
// present the product record is updated along with the entry.
type AddStockRequest struct {
	ProductID      string           `json:"product_id" validate:"required,uuid"`
	Quantity       int              `json:"quantity"   validate:"required,min=1"`
	Cost           *decimal.Decimal `json:"cost"`
	PriceRetail    *decimal.Decimal `json:"price_retail"`
	PriceWholesale *decimal.Decimal `json:"price_wholesale"`
	Reason         string           `json:"reason"`
}

// AdjustStockRequest corrects stock after a physical count. Either a signed
// delta or an absolute new_stock must be given.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Delta     *int   `json:"delta"`
	NewStock  *int   `json:"new_stock"  validate:"omitempty,min=0"`
	Reason    string `json:"reason"     validate:"required,min=3"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// KardexFilter locates the product by id or by sku/barcode.
type KardexFilter struct {
	ProductID string `form:"product_id"`
	Code      string `form:"code"`
	Type      string `form:"type"  validate:"omitempty,oneof=entry adjustment sale cancelRestore"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventoryMovementResponse struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	Type          string  `json:"type"`
	Quantity      int     `json:"quantity"`
	PreviousStock int     `json:"previous_stock"`
	NewStock      int     `json:"new_stock"`
	Reason        string  `json:"reason,omitempty"`
	Reference     *string `json:"reference,omitempty"`
	User          string  `json:"user"`
	CreatedAt     string  `json:"created_at"`
}

type KardexResponse struct {
	Product ProductResponse             `json:"product"`
	Data    []InventoryMovementResponse `json:"data"`
	Total   int64                       `json:"total"`
	Page    int                         `json:"page"`
	Limit   int                         `json:"limit"`
}

// InventoryReportRow values the current stock of one product.
type InventoryReportRow struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	LowStock    bool            `json:"low_stock"`
	ValueCost   decimal.Decimal `json:"value_cost"`
	ValueRetail decimal.Decimal `json:"value_retail"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
}

type InventoryReportResponse struct {
	Rows             []InventoryReportRow `json:"rows"`
	TotalUnits       int                  `json:"total_units"`
	TotalValueCost   decimal.Decimal      `json:"total_value_cost"`
	TotalValueRetail decimal.Decimal      `json:"total_value_retail"`
	TotalGrossProfit decimal.Decimal      `json:"total_gross_profit"`
	LowStockCount    int                  `json:"low_stock_count"`
}

func InventoryMovementFromModel(m *model.InventoryMovement) InventoryMovementResponse {
	return InventoryMovementResponse{
		ID:            m.ID.String(),
		ProductID:     m.ProductID.String(),
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		Reference:     m.Reference,
		User:          m.Username,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}
