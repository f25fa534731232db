package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tenaypos/internal/model"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

type ProductFilter struct {
	Query    string `form:"q"`
	Category string `form:"category"`
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type VariantRequest struct {
	Kind           string           `json:"kind"  validate:"required,oneof=ropa maquillaje perfume"`
	Size           *string          `json:"size"`
	Color          *string          `json:"color"`
	Tone           *string          `json:"tone"`
	Scent          *string          `json:"scent"`
	Cost           decimal.Decimal  `json:"cost"            validate:"min=0"`
	PriceRetail    decimal.Decimal  `json:"price_retail"    validate:"required"`
	PriceWholesale *decimal.Decimal `json:"price_wholesale"`
	Stock          int              `json:"stock"           validate:"min=0"`
}

type CreateProductRequest struct {
	Name           string           `json:"name"     validate:"required,min=2"`
	SKU            string           `json:"sku"      validate:"required,min=2"`
	Barcode        *string          `json:"barcode"`
	Category       *string          `json:"category"`
	Cost           decimal.Decimal  `json:"cost"            validate:"min=0"`
	PriceRetail    decimal.Decimal  `json:"price_retail"    validate:"required"`
	PriceWholesale *decimal.Decimal `json:"price_wholesale"`
	Stock          int              `json:"stock"           validate:"min=0"`
	MinStock       int              `json:"min_stock"       validate:"min=0"`
	Variants       []VariantRequest `json:"variants"        validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	Name           *string          `json:"name"     validate:"omitempty,min=2"`
	Barcode        *string          `json:"barcode"`
	Category       *string          `json:"category"`
	Cost           *decimal.Decimal `json:"cost"`
	PriceRetail    *decimal.Decimal `json:"price_retail"`
	PriceWholesale *decimal.Decimal `json:"price_wholesale"`
	Stock          *int             `json:"stock"     validate:"omitempty,min=0"`
	MinStock       *int             `json:"min_stock" validate:"omitempty,min=0"`
	IsActive       *bool            `json:"is_active"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VariantResponse struct {
	ID             string           `json:"id"`
	Kind           string           `json:"kind"`
	Size           *string          `json:"size,omitempty"`
	Color          *string          `json:"color,omitempty"`
	Tone           *string          `json:"tone,omitempty"`
	Scent          *string          `json:"scent,omitempty"`
	Cost           decimal.Decimal  `json:"cost"`
	PriceRetail    decimal.Decimal  `json:"price_retail"`
	PriceWholesale *decimal.Decimal `json:"price_wholesale,omitempty"`
	Stock          int              `json:"stock"`
}

type ProductResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	SKU            string            `json:"sku"`
	Barcode        *string           `json:"barcode,omitempty"`
	Category       *string           `json:"category,omitempty"`
	Cost           decimal.Decimal   `json:"cost"`
	PriceRetail    decimal.Decimal   `json:"price_retail"`
	PriceWholesale *decimal.Decimal  `json:"price_wholesale,omitempty"`
	Stock          int               `json:"stock"`
	MinStock       int               `json:"min_stock"`
	IsActive       bool              `json:"is_active"`
	Variants       []VariantResponse `json:"variants"`
	CreatedAt      string            `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceLookupResponse serves the barcode scanner path on the sale screen.
type PriceLookupResponse struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	PriceRetail decimal.Decimal `json:"price_retail"`
	Stock       int             `json:"stock"`
}

func ProductFromModel(p *model.Product) ProductResponse {
	vars := make([]VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		vars = append(vars, VariantResponse{
			ID:             v.ID.String(),
			Kind:           v.Kind,
			Size:           v.Size,
			Color:          v.Color,
			Tone:           v.Tone,
			Scent:          v.Scent,
			Cost:           v.Cost,
			PriceRetail:    v.PriceRetail,
			PriceWholesale: v.PriceWholesale,
			Stock:          v.Stock,
		})
	}
	return ProductResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		SKU:            p.SKU,
		Barcode:        p.Barcode,
		Category:       p.Category,
		Cost:           p.Cost,
		PriceRetail:    p.PriceRetail,
		PriceWholesale: p.PriceWholesale,
		Stock:          p.Stock,
		MinStock:       p.MinStock,
		IsActive:       p.IsActive,
		Variants:       vars,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}
