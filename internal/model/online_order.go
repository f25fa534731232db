package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Online-order statuses.
const (
	OrderPending   = "pending"
	OrderProcessed = "processed"
	OrderCancelled = "cancelled"
)

// Notification states for the async WhatsApp/email relay.
const (
	NotifyPending = "pending"
	NotifySent    = "sent"
	NotifyError   = "error"
)

// OnlineOrder is an order placed from the public storefront. The total is
// approximate: stock and final pricing are confirmed when the order is turned
// into a POS sale (LinkedSaleID).
type OnlineOrder struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerName    string          `gorm:"not null"`
	CustomerPhone   string          `gorm:"not null"`
	CustomerAddress *string
	CustomerEmail   *string
	TotalApprox     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	LinkedSaleID    *uuid.UUID      `gorm:"type:uuid"`

	// Async notification bookkeeping (worker pool + retry cron)
	NotifyStatus string     `gorm:"type:varchar(20);not null;default:'pending'"`
	RetryCount   int        `gorm:"not null;default:0"`
	NextRetryAt  *time.Time
	LastError    *string

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Items []OnlineOrderItem `gorm:"foreignKey:OrderID"`
}

type OnlineOrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID *uuid.UUID      `gorm:"type:uuid"`
	Name      string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
