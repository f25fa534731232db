package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MethodTotals maps a payment-method display name to its aggregated amount.
// Stored as JSONB.
type MethodTotals map[string]decimal.Decimal

func (m MethodTotals) Value() (driver.Value, error) {
	if m == nil {
		m = MethodTotals{}
	}
	return json.Marshal(m)
}

func (m *MethodTotals) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = MethodTotals{}
		return nil
	default:
		return errors.New("method_totals: unsupported scan source")
	}
}

// CashCut is the immutable shift-close record: an aggregation of all sales in
// a half-open window (rangeStart, rangeEnd] reconciled against a counted
// drawer amount. Cuts partition time: each RangeStart equals the previous
// cut's RangeEnd (or the epoch for the first). Append-only.
type CashCut struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Folio      string    `gorm:"uniqueIndex;not null"`
	RangeStart time.Time `gorm:"not null"`
	RangeEnd   time.Time `gorm:"not null;index"`

	OpeningAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ClosingAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExpectedCash  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Difference = ClosingAmount - ExpectedCash
	Difference decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	TotalSales decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCost  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Profit     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	SalesCount          int             `gorm:"not null"`
	CancelledSalesCount int             `gorm:"not null"`
	CancelledSalesTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	TotalsByMethod MethodTotals `gorm:"type:jsonb;not null"`

	Notes    *string
	UserID   uuid.UUID `gorm:"type:uuid;not null"`
	Username string    `gorm:"not null"`

	CreatedAt time.Time `gorm:"index"`
}
