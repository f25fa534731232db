package service

import (
	"context"

	"tenaypos/internal/apierror"
	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryService interface {
	AddStock(ctx context.Context, actor model.Actor, req dto.AddStockRequest) (*dto.InventoryMovementResponse, error)
	AdjustStock(ctx context.Context, actor model.Actor, req dto.AdjustStockRequest) (*dto.InventoryMovementResponse, error)
	Kardex(ctx context.Context, actor model.Actor, filter dto.KardexFilter) (*dto.KardexResponse, error)
	Report(ctx context.Context, actor model.Actor) (*dto.InventoryReportResponse, error)
}

type inventoryService struct {
	movementRepo repository.InventoryMovementRepository
	productRepo  repository.ProductRepository
}

func NewInventoryService(
	movementRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) InventoryService {
	return &inventoryService{movementRepo: movementRepo, productRepo: productRepo}
}

// AddStock receives merchandise: stock goes up and an entry lands in the
// kardex. Optional cost/price fields update the product on the way in.
func (s *inventoryService) AddStock(ctx context.Context, actor model.Actor, req dto.AddStockRequest) (*dto.InventoryMovementResponse, error) {
	if !actor.Permissions.CanManageProducts {
		return nil, apierror.Forbidden("No tienes permiso para gestionar inventario")
	}

	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation("product_id no válido")
	}
	product, err := s.productRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}

	if req.Cost != nil || req.PriceRetail != nil || req.PriceWholesale != nil {
		if req.Cost != nil {
			product.Cost = *req.Cost
		}
		if req.PriceRetail != nil {
			product.PriceRetail = *req.PriceRetail
		}
		if req.PriceWholesale != nil {
			product.PriceWholesale = req.PriceWholesale
		}
		if err := s.productRepo.Update(ctx, product); err != nil {
			return nil, apierror.Persistence("Error actualizando el producto", err)
		}
	}

	reason := req.Reason
	if reason == "" {
		reason = "Entrada de mercancía"
	}
	movement := model.InventoryMovement{
		ProductID:     product.ID,
		Type:          model.InventoryEntry,
		Quantity:      req.Quantity,
		PreviousStock: product.Stock,
		NewStock:      product.Stock + req.Quantity,
		Reason:        reason,
		UserID:        actor.ID,
		Username:      actor.Username,
	}
	txErr := runTx(ctx, s.movementRepo.DB(), func(tx *gorm.DB) error {
		if err := s.productRepo.AdjustStockTx(ctx, tx, product.ID, req.Quantity); err != nil {
			return apierror.Persistence("Error actualizando stock", err)
		}
		if err := s.movementRepo.CreateTx(ctx, tx, &movement); err != nil {
			return apierror.Persistence("Error registrando el movimiento", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("product", product.SKU).
		Int("quantity", req.Quantity).
		Str("user", actor.Username).
		Msg("entrada de inventario")

	resp := dto.InventoryMovementFromModel(&movement)
	return &resp, nil
}

// AdjustStock corrects stock after a physical count, by signed delta or by
// absolute target.
func (s *inventoryService) AdjustStock(ctx context.Context, actor model.Actor, req dto.AdjustStockRequest) (*dto.InventoryMovementResponse, error) {
	if !actor.Permissions.CanManageProducts {
		return nil, apierror.Forbidden("No tienes permiso para gestionar inventario")
	}

	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation("product_id no válido")
	}
	product, err := s.productRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}

	var delta int
	switch {
	case req.Delta != nil:
		delta = *req.Delta
	case req.NewStock != nil:
		delta = *req.NewStock - product.Stock
	default:
		return nil, apierror.Validation("Se requiere delta o new_stock")
	}
	if delta == 0 {
		return nil, apierror.Validation("El ajuste no cambia el stock")
	}
	if product.Stock+delta < 0 {
		return nil, apierror.Validation("El ajuste dejaría el stock en negativo")
	}

	movement := model.InventoryMovement{
		ProductID:     product.ID,
		Type:          model.InventoryAdjust,
		Quantity:      delta,
		PreviousStock: product.Stock,
		NewStock:      product.Stock + delta,
		Reason:        req.Reason,
		UserID:        actor.ID,
		Username:      actor.Username,
	}
	txErr := runTx(ctx, s.movementRepo.DB(), func(tx *gorm.DB) error {
		if err := s.productRepo.AdjustStockTx(ctx, tx, product.ID, delta); err != nil {
			return apierror.Persistence("Error actualizando stock", err)
		}
		if err := s.movementRepo.CreateTx(ctx, tx, &movement); err != nil {
			return apierror.Persistence("Error registrando el movimiento", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("product", product.SKU).
		Int("delta", delta).
		Str("user", actor.Username).
		Msg("ajuste de inventario")

	resp := dto.InventoryMovementFromModel(&movement)
	return &resp, nil
}

// Kardex lists the movement history of one product, located by id or by
// sku/barcode.
func (s *inventoryService) Kardex(ctx context.Context, actor model.Actor, filter dto.KardexFilter) (*dto.KardexResponse, error) {
	if !actor.Permissions.CanSeeReports && !actor.Permissions.CanManageProducts {
		return nil, apierror.Forbidden("No tienes permiso para consultar el kardex")
	}

	var product *model.Product
	switch {
	case filter.ProductID != "":
		pid, err := uuid.Parse(filter.ProductID)
		if err != nil {
			return nil, apierror.Validation("product_id no válido")
		}
		product, err = s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("Producto no encontrado")
		}
	case filter.Code != "":
		var err error
		product, err = s.productRepo.FindByCode(ctx, filter.Code)
		if err != nil {
			return nil, apierror.NotFound("Producto no encontrado")
		}
	default:
		return nil, apierror.Validation("Se requiere product_id o code")
	}

	movs, total, err := s.movementRepo.List(ctx, repository.InventoryMovementFilter{
		ProductID: &product.ID,
		Type:      filter.Type,
		Page:      filter.Page,
		Limit:     filter.Limit,
	})
	if err != nil {
		return nil, apierror.Persistence("Error consultando el kardex", err)
	}

	data := make([]dto.InventoryMovementResponse, 0, len(movs))
	for i := range movs {
		data = append(data, dto.InventoryMovementFromModel(&movs[i]))
	}
	return &dto.KardexResponse{
		Product: dto.ProductFromModel(product),
		Data:    data,
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
	}, nil
}

// Report values the active catalog at cost and at retail.
func (s *inventoryService) Report(ctx context.Context, actor model.Actor) (*dto.InventoryReportResponse, error) {
	if !actor.Permissions.CanSeeReports {
		return nil, apierror.Forbidden("No tienes permiso para ver reportes")
	}

	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, apierror.Persistence("Error consultando productos", err)
	}

	resp := dto.InventoryReportResponse{
		Rows:             make([]dto.InventoryReportRow, 0, len(products)),
		TotalValueCost:   decimal.Zero,
		TotalValueRetail: decimal.Zero,
		TotalGrossProfit: decimal.Zero,
	}
	for i := range products {
		p := &products[i]
		stock := decimal.NewFromInt(int64(p.Stock))
		row := dto.InventoryReportRow{
			ProductID:   p.ID.String(),
			Name:        p.Name,
			SKU:         p.SKU,
			Stock:       p.Stock,
			MinStock:    p.MinStock,
			LowStock:    p.Stock <= p.MinStock,
			ValueCost:   p.Cost.Mul(stock),
			ValueRetail: p.PriceRetail.Mul(stock),
			GrossProfit: p.PriceRetail.Sub(p.Cost).Mul(stock),
		}
		resp.Rows = append(resp.Rows, row)
		resp.TotalUnits += p.Stock
		resp.TotalValueCost = resp.TotalValueCost.Add(row.ValueCost)
		resp.TotalValueRetail = resp.TotalValueRetail.Add(row.ValueRetail)
		resp.TotalGrossProfit = resp.TotalGrossProfit.Add(row.GrossProfit)
		if row.LowStock {
			resp.LowStockCount++
		}
	}
	return &resp, nil
}
