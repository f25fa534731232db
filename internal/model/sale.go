package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses. A sale is never deleted; cancellation flips the status and
// restores inventory.
const (
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

// Sale is one checkout transaction. Created atomically with its items and
// payments; the only mutation permitted afterwards is cancellation.
type Sale struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Folio    string          `gorm:"uniqueIndex;not null"`
	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Credit sales reference the customer whose balance they increase.
	CustomerID   *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName *string

	Cashier      string     `gorm:"not null"`
	Status       string     `gorm:"type:varchar(20);not null;default:'completed';index"`
	CancelReason *string
	CancelledAt  *time.Time

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Items    []SaleItem    `gorm:"foreignKey:SaleID"`
	Payments []SalePayment `gorm:"foreignKey:SaleID"`
	Customer *Customer     `gorm:"foreignKey:CustomerID"`
}

// SaleItem snapshots name, price and cost at sale time so later catalog edits
// never rewrite history.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
	Name        string          `gorm:"not null"`
	VariantText *string
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Cost        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

type SalePayment struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Method string          `gorm:"type:varchar(40);not null"`
	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
