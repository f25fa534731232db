package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer holds a running credit balance, increased by sales paid with
// "Crédito" and decreased by explicit payments (abonos).
type Customer struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string          `gorm:"not null;index"`
	Phone          *string
	Email          *string
	Address        *string
	Notes          *string
	CreditLimit    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsActive       bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CustomerPayment records one abono against a customer's balance.
type CustomerPayment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID       `gorm:"type:uuid;index;not null"`
	SaleID     *uuid.UUID      `gorm:"type:uuid"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method     string          `gorm:"type:varchar(40);not null"`
	Note       *string
	UserID     uuid.UUID `gorm:"type:uuid;not null"`
	Username   string    `gorm:"not null"`
	CreatedAt  time.Time
}
