package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashMovementType classifies a manual drawer adjustment.
type CashMovementType string

const (
	MovementOpening         CashMovementType = "opening"
	MovementIncome          CashMovementType = "income"
	MovementExpense         CashMovementType = "expense"
	MovementCustomerPayment CashMovementType = "customerPayment"
	MovementAdjustment      CashMovementType = "adjustment"
)

// Movement directions.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Valid reports whether t is one of the known movement types.
func (t CashMovementType) Valid() bool {
	switch t {
	case MovementOpening, MovementIncome, MovementExpense, MovementCustomerPayment, MovementAdjustment:
		return true
	}
	return false
}

// Direction is a pure function of the type: expenses leave the drawer,
// everything else enters it.
func (t CashMovementType) Direction() string {
	if t == MovementExpense {
		return DirectionOut
	}
	return DirectionIn
}

// CashMovement is an immutable entry in the physical drawer ledger,
// independent of sales. Never edited or deleted.
type CashMovement struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type        CashMovementType `gorm:"type:varchar(20);not null;index"`
	Direction   string           `gorm:"type:varchar(3);not null"`
	Amount      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Description string

	UserID   uuid.UUID `gorm:"type:uuid;not null"`
	Username string    `gorm:"not null"`

	// Optional links to the originating sale or customer
	SaleID     *uuid.UUID `gorm:"type:uuid"`
	CustomerID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"index"`
}
