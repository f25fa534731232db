package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tenaypos/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateCustomerRequest struct {
	Name        string          `json:"name"    validate:"required,min=2"`
	Phone       *string         `json:"phone"`
	Email       *string         `json:"email"   validate:"omitempty,email"`
	Address     *string         `json:"address"`
	Notes       *string         `json:"notes"`
	CreditLimit decimal.Decimal `json:"credit_limit" validate:"min=0"`
}

type UpdateCustomerRequest struct {
	Name        *string          `json:"name"    validate:"omitempty,min=2"`
	Phone       *string          `json:"phone"`
	Email       *string          `json:"email"   validate:"omitempty,email"`
	Address     *string          `json:"address"`
	Notes       *string          `json:"notes"`
	CreditLimit *decimal.Decimal `json:"credit_limit" validate:"omitempty,min=0"`
	IsActive    *bool            `json:"is_active"`
}

type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Method string          `json:"method" validate:"required"`
	Note   *string         `json:"note"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          *string         `json:"phone,omitempty"`
	Email          *string         `json:"email,omitempty"`
	Address        *string         `json:"address,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      string          `json:"created_at"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type CustomerPaymentResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Note       *string         `json:"note,omitempty"`
	Username   string          `json:"username"`
	CreatedAt  string          `json:"created_at"`
}

func CustomerFromModel(c *model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		Address:        c.Address,
		Notes:          c.Notes,
		CreditLimit:    c.CreditLimit,
		CurrentBalance: c.CurrentBalance,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}

func PaymentFromModel(p *model.CustomerPayment) CustomerPaymentResponse {
	return CustomerPaymentResponse{
		ID:         p.ID.String(),
		CustomerID: p.CustomerID.String(),
		Amount:     p.Amount,
		Method:     p.Method,
		Note:       p.Note,
		Username:   p.Username,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}
