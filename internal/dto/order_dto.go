package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tenaypos/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID *string         `json:"product_id" validate:"omitempty,uuid"`
	Name      string          `json:"name"       validate:"required"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"      validate:"required"`
}

// PlaceOrderRequest is the only unauthenticated write in the API (public
// storefront checkout).
type PlaceOrderRequest struct {
	CustomerName    string             `json:"customer_name"  validate:"required,min=2"`
	CustomerPhone   string             `json:"customer_phone" validate:"required,min=8"`
	CustomerAddress *string            `json:"customer_address"`
	CustomerEmail   *string            `json:"customer_email" validate:"omitempty,email"`
	Items           []OrderItemRequest `json:"items"          validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status       string  `json:"status"         validate:"required,oneof=pending processed cancelled"`
	LinkedSaleID *string `json:"linked_sale_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	TotalApprox   decimal.Decimal     `json:"total_approx"`
	Status        string              `json:"status"`
	NotifyStatus  string              `json:"notify_status"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     string              `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func OrderFromModel(o *model.OnlineOrder) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Subtotal: it.Subtotal,
		})
	}
	return OrderResponse{
		ID:            o.ID.String(),
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		TotalApprox:   o.TotalApprox,
		Status:        o.Status,
		NotifyStatus:  o.NotifyStatus,
		Items:         items,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
}
