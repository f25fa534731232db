package service

import (
	"context"

	"tenaypos/internal/apierror"
	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/repository"
	"tenaypos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	// Place is the public storefront intake. The order is persisted first;
	// the WhatsApp/email notification runs async and never blocks checkout.
	Place(ctx context.Context, req dto.PlaceOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, status string, page, limit int) (*dto.OrderListResponse, error)
	UpdateStatus(ctx context.Context, actor model.Actor, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
}

type orderService struct {
	repo       repository.OrderRepository
	dispatcher *worker.Dispatcher
}

func NewOrderService(repo repository.OrderRepository, dispatcher *worker.Dispatcher) OrderService {
	return &orderService{repo: repo, dispatcher: dispatcher}
}

func (s *orderService) Place(ctx context.Context, req dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	order := model.OnlineOrder{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CustomerEmail:   req.CustomerEmail,
		Status:          model.OrderPending,
		NotifyStatus:    model.NotifyPending,
		TotalApprox:     decimal.Zero,
	}
	for _, item := range req.Items {
		if !item.Price.IsPositive() {
			return nil, apierror.Validation("Cada artículo debe tener un precio mayor a cero")
		}
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		var pid *uuid.UUID
		if item.ProductID != nil {
			parsed, err := uuid.Parse(*item.ProductID)
			if err != nil {
				return nil, apierror.Validation("product_id no válido")
			}
			pid = &parsed
		}
		order.Items = append(order.Items, model.OnlineOrderItem{
			ProductID: pid,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  subtotal,
		})
		order.TotalApprox = order.TotalApprox.Add(subtotal)
	}

	if err := s.repo.Create(ctx, &order); err != nil {
		return nil, apierror.Persistence("Error registrando el pedido", err)
	}

	payload := worker.NotifyJobPayload{OrderID: order.ID.String()}
	if err := s.dispatcher.EnqueueNotify(ctx, payload); err != nil {
		// The retry cron will pick the order up; checkout already succeeded.
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("no se pudo encolar la notificación del pedido")
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("customer", order.CustomerName).
		Str("total_approx", order.TotalApprox.String()).
		Msg("pedido en línea recibido")

	resp := dto.OrderFromModel(&order)
	return &resp, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Pedido no encontrado")
	}
	resp := dto.OrderFromModel(order)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, status string, page, limit int) (*dto.OrderListResponse, error) {
	orders, total, err := s.repo.List(ctx, status, page, limit)
	if err != nil {
		return nil, apierror.Persistence("Error consultando pedidos", err)
	}
	data := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, dto.OrderFromModel(&orders[i]))
	}
	return &dto.OrderListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, actor model.Actor, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !actor.Permissions.CanSell {
		return nil, apierror.Forbidden("No tienes permiso para gestionar pedidos")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Pedido no encontrado")
	}
	order.Status = req.Status
	if req.LinkedSaleID != nil {
		sid, err := uuid.Parse(*req.LinkedSaleID)
		if err != nil {
			return nil, apierror.Validation("linked_sale_id no válido")
		}
		order.LinkedSaleID = &sid
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, apierror.Persistence("Error actualizando el pedido", err)
	}
	resp := dto.OrderFromModel(order)
	return &resp, nil
}
