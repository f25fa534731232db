package service_test

import (
	"context"
	"testing"

	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStock(t *testing.T) {
	invRepo := &fakeInventoryRepo{}
	productRepo := newFakeProductRepo()
	svc := service.NewInventoryService(invRepo, productRepo)

	p := seedProduct(productRepo, 4)
	newCost := decimal.NewFromFloat(55)
	resp, err := svc.AddStock(context.Background(), adminActor(), dto.AddStockRequest{
		ProductID: p.ID.String(),
		Quantity:  10,
		Cost:      &newCost,
		Reason:    "Compra proveedor",
	})
	require.NoError(t, err)

	assert.Equal(t, 14, p.Stock)
	assert.Equal(t, "55", p.Cost.String(), "entry may update the purchase cost")
	assert.Equal(t, string(model.InventoryEntry), resp.Type)
	assert.Equal(t, 4, resp.PreviousStock)
	assert.Equal(t, 14, resp.NewStock)
}

func TestAddStock_RequiresPermission(t *testing.T) {
	svc := service.NewInventoryService(&fakeInventoryRepo{}, newFakeProductRepo())

	_, err := svc.AddStock(context.Background(), cashierActor(), dto.AddStockRequest{
		ProductID: "00000000-0000-0000-0000-000000000000",
		Quantity:  1,
	})
	assert.ErrorContains(t, err, "permiso")
}

func TestAdjustStock_ByDelta(t *testing.T) {
	invRepo := &fakeInventoryRepo{}
	productRepo := newFakeProductRepo()
	svc := service.NewInventoryService(invRepo, productRepo)

	p := seedProduct(productRepo, 10)
	delta := -3
	resp, err := svc.AdjustStock(context.Background(), adminActor(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Delta:     &delta,
		Reason:    "Merma por daño",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, string(model.InventoryAdjust), resp.Type)
	assert.Equal(t, -3, resp.Quantity)
}

func TestAdjustStock_ByAbsoluteTarget(t *testing.T) {
	invRepo := &fakeInventoryRepo{}
	productRepo := newFakeProductRepo()
	svc := service.NewInventoryService(invRepo, productRepo)

	p := seedProduct(productRepo, 10)
	target := 6
	resp, err := svc.AdjustStock(context.Background(), adminActor(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		NewStock:  &target,
		Reason:    "Conteo físico",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, p.Stock)
	assert.Equal(t, -4, resp.Quantity)
}

func TestAdjustStock_NoChangeRejected(t *testing.T) {
	productRepo := newFakeProductRepo()
	svc := service.NewInventoryService(&fakeInventoryRepo{}, productRepo)

	p := seedProduct(productRepo, 10)
	same := 10
	_, err := svc.AdjustStock(context.Background(), adminActor(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		NewStock:  &same,
		Reason:    "Conteo físico",
	})
	assert.ErrorContains(t, err, "no cambia")
	assert.Equal(t, 10, p.Stock)
}

func TestAdjustStock_NegativeResultRejected(t *testing.T) {
	productRepo := newFakeProductRepo()
	svc := service.NewInventoryService(&fakeInventoryRepo{}, productRepo)

	p := seedProduct(productRepo, 2)
	delta := -5
	_, err := svc.AdjustStock(context.Background(), adminActor(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Delta:     &delta,
		Reason:    "Merma",
	})
	assert.ErrorContains(t, err, "negativo")
	assert.Equal(t, 2, p.Stock)
}

func TestKardex_LookupBySKU(t *testing.T) {
	invRepo := &fakeInventoryRepo{}
	productRepo := newFakeProductRepo()
	svc := service.NewInventoryService(invRepo, productRepo)

	p := seedProduct(productRepo, 4)
	_, err := svc.AddStock(context.Background(), adminActor(), dto.AddStockRequest{
		ProductID: p.ID.String(), Quantity: 6,
	})
	require.NoError(t, err)

	resp, err := svc.Kardex(context.Background(), adminActor(), dto.KardexFilter{
		Code: p.SKU, Page: 1, Limit: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID.String(), resp.Product.ID)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 10, resp.Data[0].NewStock)
}

func TestKardex_RequiresProductReference(t *testing.T) {
	svc := service.NewInventoryService(&fakeInventoryRepo{}, newFakeProductRepo())

	_, err := svc.Kardex(context.Background(), adminActor(), dto.KardexFilter{Page: 1, Limit: 50})
	assert.ErrorContains(t, err, "product_id o code")
}

func TestSaleWritesKardexEntries(t *testing.T) {
	invRepo := &fakeInventoryRepo{}
	saleRepo := &fakeSaleRepo{}
	productRepo := newFakeProductRepo()
	saleSvc := service.NewSaleService(saleRepo, productRepo, newFakeCustomerRepo(), invRepo)

	p := seedProduct(productRepo, 5)
	resp, err := saleSvc.Register(context.Background(), cashierActor(), saleRequest(p, 2))
	require.NoError(t, err)

	require.Len(t, invRepo.movs, 1)
	mov := invRepo.movs[0]
	assert.Equal(t, model.InventorySale, mov.Type)
	assert.Equal(t, -2, mov.Quantity)
	assert.Equal(t, 5, mov.PreviousStock)
	assert.Equal(t, 3, mov.NewStock)
	require.NotNil(t, mov.Reference)
	assert.Equal(t, resp.Folio, *mov.Reference)
}

func TestCancelWritesRestoreEntry(t *testing.T) {
	invRepo := &fakeInventoryRepo{}
	saleRepo := &fakeSaleRepo{}
	productRepo := newFakeProductRepo()
	saleSvc := service.NewSaleService(saleRepo, productRepo, newFakeCustomerRepo(), invRepo)

	p := seedProduct(productRepo, 5)
	resp, err := saleSvc.Register(context.Background(), cashierActor(), saleRequest(p, 2))
	require.NoError(t, err)

	err = saleSvc.Cancel(context.Background(), adminActor(), uuid.MustParse(resp.ID), "Error de captura")
	require.NoError(t, err)

	require.Len(t, invRepo.movs, 2)
	restore := invRepo.movs[1]
	assert.Equal(t, model.InventoryCancelRestore, restore.Type)
	assert.Equal(t, 2, restore.Quantity)
	assert.Equal(t, 3, restore.PreviousStock)
	assert.Equal(t, 5, restore.NewStock)
}

func TestInventoryReport(t *testing.T) {
	productRepo := newFakeProductRepo()
	svc := service.NewInventoryService(&fakeInventoryRepo{}, productRepo)

	p := seedProduct(productRepo, 4) // cost 50, retail 100
	p.MinStock = 5

	resp, err := svc.Report(context.Background(), adminActor())
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	row := resp.Rows[0]
	assert.Equal(t, "200", row.ValueCost.String())
	assert.Equal(t, "400", row.ValueRetail.String())
	assert.Equal(t, "200", row.GrossProfit.String())
	assert.True(t, row.LowStock)
	assert.Equal(t, 1, resp.LowStockCount)
	assert.Equal(t, 4, resp.TotalUnits)
}
