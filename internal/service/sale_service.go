package service

import (
	"context"
	"fmt"

	"tenaypos/internal/apierror"
	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// paymentTolerance absorbs rounding noise when comparing the payment sum
// against the sale total.
var paymentTolerance = decimal.NewFromFloat(0.01)

type SaleService interface {
	Register(ctx context.Context, actor model.Actor, req dto.RegisterSaleRequest) (*dto.SaleResponse, error)
	Cancel(ctx context.Context, actor model.Actor, id uuid.UUID, reason string) error
	Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo          repository.SaleRepository
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	inventoryRepo repository.InventoryMovementRepository
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	inventoryRepo repository.InventoryMovementRepository,
) SaleService {
	return &saleService{
		repo:          repo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		inventoryRepo: inventoryRepo,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *saleService) Register(ctx context.Context, actor model.Actor, req dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	if !actor.Permissions.CanSell {
		return nil, apierror.Forbidden("No tienes permiso para registrar ventas")
	}

	// 1. Arithmetic consistency: subtotal - discount = total, payments = total
	if !req.Subtotal.Sub(req.Discount).Equal(req.Total) {
		return nil, apierror.Validation("El total no coincide con subtotal menos descuento")
	}
	paid := decimal.Zero
	creditAmount := decimal.Zero
	for _, p := range req.Payments {
		if !p.Amount.IsPositive() {
			return nil, apierror.Validation("Cada pago debe ser mayor a cero")
		}
		method, _ := model.ParsePaymentMethod(p.Method)
		if method == model.MethodStoreCredit {
			creditAmount = creditAmount.Add(p.Amount)
		}
		paid = paid.Add(p.Amount)
	}
	if paid.Sub(req.Total).Abs().GreaterThan(paymentTolerance) {
		return nil, apierror.Validation("La suma de pagos no coincide con el total de la venta")
	}

	// 2. Credit sales need a customer to charge
	var customer *model.Customer
	if creditAmount.IsPositive() {
		if req.CustomerID == nil {
			return nil, apierror.Validation("Las ventas a crédito requieren un cliente")
		}
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, apierror.Validation("customer_id no válido")
		}
		customer, err = s.customerRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, apierror.NotFound("Cliente no encontrado")
		}
		if customer.CreditLimit.IsPositive() &&
			customer.CurrentBalance.Add(creditAmount).GreaterThan(customer.CreditLimit) {
			return nil, apierror.Validation("El cliente excede su límite de crédito")
		}
	}

	// 3. Resolve catalog products (pre-flight, outside TX)
	type resolvedItem struct {
		productID *uuid.UUID
		cost      decimal.Decimal
		stock     int
	}
	resolved := make([]resolvedItem, len(req.Items))
	for i, item := range req.Items {
		if item.ProductID == nil {
			continue // free-form line, no stock tracking
		}
		pid, err := uuid.Parse(*item.ProductID)
		if err != nil {
			return nil, apierror.Validation("product_id no válido")
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound(fmt.Sprintf("Producto %s no encontrado", *item.ProductID))
		}
		if !p.IsActive {
			return nil, apierror.Validation(fmt.Sprintf("El producto %s está inactivo", p.Name))
		}
		if p.Stock < item.Quantity {
			return nil, apierror.Validation(fmt.Sprintf("Stock insuficiente para %s", p.Name))
		}
		resolved[i] = resolvedItem{productID: &pid, cost: p.Cost, stock: p.Stock}
	}

	// 4. ACID transaction: folio, sale, stock, credit, drawer movement
	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		num, err := s.repo.NextFolio(ctx, tx)
		if err != nil {
			return apierror.Persistence("Error generando folio", err)
		}

		sale = model.Sale{
			Folio:    model.FormatFolio(model.SaleFolioPrefix, num),
			Subtotal: req.Subtotal,
			Discount: req.Discount,
			Total:    req.Total,
			Cashier:  actor.Username,
			Status:   model.SaleCompleted,
		}
		if customer != nil {
			sale.CustomerID = &customer.ID
			sale.CustomerName = &customer.Name
		}
		for i, item := range req.Items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:   resolved[i].productID,
				Name:        item.Name,
				VariantText: item.VariantText,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Cost:        resolved[i].cost,
				Subtotal:    item.Price.Mul(qty),
			})
		}
		for _, p := range req.Payments {
			method, _ := model.ParsePaymentMethod(p.Method)
			sale.Payments = append(sale.Payments, model.SalePayment{
				Method: method.String(),
				Amount: p.Amount,
			})
		}

		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return apierror.Persistence("Error registrando la venta", err)
		}
		for i, item := range req.Items {
			if resolved[i].productID == nil {
				continue
			}
			if err := s.productRepo.AdjustStockTx(ctx, tx, *resolved[i].productID, -item.Quantity); err != nil {
				return apierror.Persistence("Error descontando stock", err)
			}
			mov := model.InventoryMovement{
				ProductID:     *resolved[i].productID,
				Type:          model.InventorySale,
				Quantity:      -item.Quantity,
				PreviousStock: resolved[i].stock,
				NewStock:      resolved[i].stock - item.Quantity,
				Reason:        "Venta " + sale.Folio,
				ReferenceID:   &sale.ID,
				Reference:     &sale.Folio,
				UserID:        actor.ID,
				Username:      actor.Username,
			}
			if err := s.inventoryRepo.CreateTx(ctx, tx, &mov); err != nil {
				return apierror.Persistence("Error registrando el kardex", err)
			}
		}
		if customer != nil && creditAmount.IsPositive() {
			if err := s.customerRepo.AdjustBalanceTx(ctx, tx, customer.ID, creditAmount); err != nil {
				return apierror.Persistence("Error actualizando saldo del cliente", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("folio", sale.Folio).
		Str("total", sale.Total.String()).
		Str("cashier", actor.Username).
		Msg("venta registrada")

	resp := dto.SaleFromModel(&sale)
	return &resp, nil
}

func (s *saleService) Cancel(ctx context.Context, actor model.Actor, id uuid.UUID, reason string) error {
	if !actor.Permissions.CanCancelSales {
		return apierror.Forbidden("No tienes permiso para cancelar ventas")
	}

	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("Venta no encontrada")
	}
	if sale.Status == model.SaleCancelled {
		return apierror.Validation("La venta ya está cancelada")
	}

	// Current stock per catalog line, read up front so the kardex rows carry
	// the balance before and after the restore.
	stockBefore := make(map[uuid.UUID]int)
	for _, it := range sale.Items {
		if it.ProductID == nil {
			continue
		}
		p, err := s.productRepo.FindByID(ctx, *it.ProductID)
		if err != nil {
			return apierror.Persistence("Error consultando producto", err)
		}
		stockBefore[*it.ProductID] = p.Stock
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatusTx(ctx, tx, id, model.SaleCancelled, reason); err != nil {
			return apierror.Persistence("Error cancelando la venta", err)
		}
		// Restore stock for catalog lines
		for _, it := range sale.Items {
			if it.ProductID == nil {
				continue
			}
			if err := s.productRepo.AdjustStockTx(ctx, tx, *it.ProductID, it.Quantity); err != nil {
				return apierror.Persistence("Error restaurando stock", err)
			}
			prev := stockBefore[*it.ProductID]
			stockBefore[*it.ProductID] = prev + it.Quantity
			mov := model.InventoryMovement{
				ProductID:     *it.ProductID,
				Type:          model.InventoryCancelRestore,
				Quantity:      it.Quantity,
				PreviousStock: prev,
				NewStock:      prev + it.Quantity,
				Reason:        "Cancelación " + sale.Folio,
				ReferenceID:   &sale.ID,
				Reference:     &sale.Folio,
				UserID:        actor.ID,
				Username:      actor.Username,
			}
			if err := s.inventoryRepo.CreateTx(ctx, tx, &mov); err != nil {
				return apierror.Persistence("Error registrando el kardex", err)
			}
		}
		// Reverse the credit charge, if any
		if sale.CustomerID != nil {
			creditAmount := decimal.Zero
			for _, p := range sale.Payments {
				method, _ := model.ParsePaymentMethod(p.Method)
				if method == model.MethodStoreCredit {
					creditAmount = creditAmount.Add(p.Amount)
				}
			}
			if creditAmount.IsPositive() {
				if err := s.customerRepo.AdjustBalanceTx(ctx, tx, *sale.CustomerID, creditAmount.Neg()); err != nil {
					return apierror.Persistence("Error revirtiendo saldo del cliente", err)
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	log.Info().
		Str("folio", sale.Folio).
		Str("user", actor.Username).
		Str("reason", reason).
		Msg("venta cancelada")

	return nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Venta no encontrada")
	}
	resp := dto.SaleFromModel(sale)
	return &resp, nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Persistence("Error consultando ventas", err)
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, dto.SaleFromModel(&sales[i]))
	}
	return &dto.SaleListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}
