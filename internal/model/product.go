package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Cost and prices at the product level apply to
// simple products; variant-level values override them per variant.
type Product struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string           `gorm:"index;not null"`
	SKU            string           `gorm:"uniqueIndex;not null"`
	Barcode        *string          `gorm:"index"`
	Category       *string
	Cost           decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	PriceRetail    decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	PriceWholesale *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Stock          int              `gorm:"not null;default:0"`
	MinStock       int              `gorm:"not null;default:0"`
	IsActive       bool             `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
}

// ProductVariant covers the clothing / makeup / perfume axes the store sells.
type ProductVariant struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID      uuid.UUID        `gorm:"type:uuid;index;not null"`
	Kind           string           `gorm:"type:varchar(20);not null"` // ropa | maquillaje | perfume
	Size           *string
	Color          *string
	Tone           *string
	Scent          *string
	Cost           decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	PriceRetail    decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	PriceWholesale *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Stock          int              `gorm:"not null;default:0"`
}
