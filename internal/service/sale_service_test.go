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

func seedProduct(repo *fakeProductRepo, stock int) *model.Product {
	p := &model.Product{
		ID:          uuid.New(),
		Name:        "Blusa manga larga",
		SKU:         "BLU-001",
		Cost:        decimal.NewFromFloat(50),
		PriceRetail: decimal.NewFromFloat(100),
		Stock:       stock,
		IsActive:    true,
	}
	repo.products[p.ID] = p
	return p
}

func saleRequest(p *model.Product, qty int) dto.RegisterSaleRequest {
	pid := p.ID.String()
	total := p.PriceRetail.Mul(decimal.NewFromInt(int64(qty)))
	return dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: &pid, Name: p.Name, Quantity: qty, Price: p.PriceRetail},
		},
		Payments: []dto.SalePaymentRequest{
			{Method: "efectivo", Amount: total},
		},
		Subtotal: total,
		Total:    total,
	}
}

func TestRegisterSale(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	productRepo := newFakeProductRepo()
	customerRepo := newFakeCustomerRepo()
	svc := service.NewSaleService(saleRepo, productRepo, customerRepo, &fakeInventoryRepo{})

	p := seedProduct(productRepo, 5)
	resp, err := svc.Register(context.Background(), cashierActor(), saleRequest(p, 2))
	require.NoError(t, err)

	assert.Equal(t, "FA-000001", resp.Folio)
	assert.Equal(t, model.SaleCompleted, resp.Status)
	assert.Equal(t, "200", resp.Total.String())
	assert.Equal(t, 3, p.Stock, "stock must drop by the sold quantity")
	// Raw "efectivo" is stored canonicalized
	require.Len(t, resp.Payments, 1)
	assert.Equal(t, model.MethodCash.String(), resp.Payments[0].Method)
}

func TestRegisterSale_RequiresPermission(t *testing.T) {
	svc := service.NewSaleService(&fakeSaleRepo{}, newFakeProductRepo(), newFakeCustomerRepo(), &fakeInventoryRepo{})

	actor := cashierActor()
	actor.Permissions.CanSell = false
	_, err := svc.Register(context.Background(), actor, dto.RegisterSaleRequest{})
	assert.ErrorContains(t, err, "permiso")
}

func TestRegisterSale_TotalMismatch(t *testing.T) {
	productRepo := newFakeProductRepo()
	svc := service.NewSaleService(&fakeSaleRepo{}, productRepo, newFakeCustomerRepo(), &fakeInventoryRepo{})

	p := seedProduct(productRepo, 5)
	req := saleRequest(p, 1)
	req.Discount = decimal.NewFromFloat(10) // subtotal - 10 != total
	_, err := svc.Register(context.Background(), cashierActor(), req)
	assert.ErrorContains(t, err, "no coincide")
}

func TestRegisterSale_PaymentSumMismatch(t *testing.T) {
	productRepo := newFakeProductRepo()
	svc := service.NewSaleService(&fakeSaleRepo{}, productRepo, newFakeCustomerRepo(), &fakeInventoryRepo{})

	p := seedProduct(productRepo, 5)
	req := saleRequest(p, 1)
	req.Payments[0].Amount = decimal.NewFromFloat(90) // total is 100
	_, err := svc.Register(context.Background(), cashierActor(), req)
	assert.ErrorContains(t, err, "suma de pagos")
}

func TestRegisterSale_PaymentToleranceAbsorbsRounding(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	productRepo := newFakeProductRepo()
	svc := service.NewSaleService(saleRepo, productRepo, newFakeCustomerRepo(), &fakeInventoryRepo{})

	p := seedProduct(productRepo, 5)
	req := saleRequest(p, 1)
	req.Payments[0].Amount = decimal.NewFromFloat(100.01)
	_, err := svc.Register(context.Background(), cashierActor(), req)
	assert.NoError(t, err, "a one-cent rounding difference must pass")
}

func TestRegisterSale_InsufficientStock(t *testing.T) {
	productRepo := newFakeProductRepo()
	svc := service.NewSaleService(&fakeSaleRepo{}, productRepo, newFakeCustomerRepo(), &fakeInventoryRepo{})

	p := seedProduct(productRepo, 1)
	_, err := svc.Register(context.Background(), cashierActor(), saleRequest(p, 3))
	assert.ErrorContains(t, err, "Stock insuficiente")
	assert.Equal(t, 1, p.Stock, "failed sale must not touch stock")
}

func TestRegisterSale_FreeFormLineSkipsStock(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	svc := service.NewSaleService(saleRepo, newFakeProductRepo(), newFakeCustomerRepo(), &fakeInventoryRepo{})

	total := decimal.NewFromFloat(150)
	resp, err := svc.Register(context.Background(), cashierActor(), dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{Name: "Arreglo de costura", Quantity: 1, Price: total},
		},
		Payments: []dto.SalePaymentRequest{{Method: "Efectivo", Amount: total}},
		Subtotal: total,
		Total:    total,
	})
	require.NoError(t, err)
	assert.Equal(t, "150", resp.Total.String())
}

func TestRegisterSale_CreditRequiresCustomer(t *testing.T) {
	productRepo := newFakeProductRepo()
	svc := service.NewSaleService(&fakeSaleRepo{}, productRepo, newFakeCustomerRepo(), &fakeInventoryRepo{})

	p := seedProduct(productRepo, 5)
	req := saleRequest(p, 1)
	req.Payments[0].Method = "credito"
	_, err := svc.Register(context.Background(), cashierActor(), req)
	assert.ErrorContains(t, err, "requieren un cliente")
}

func TestRegisterSale_CreditChargesBalance(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	productRepo := newFakeProductRepo()
	customerRepo := newFakeCustomerRepo()
	svc := service.NewSaleService(saleRepo, productRepo, customerRepo, &fakeInventoryRepo{})

	p := seedProduct(productRepo, 5)
	customer := &model.Customer{
		ID: uuid.New(), Name: "Doña Mary",
		CreditLimit:    decimal.NewFromFloat(1000),
		CurrentBalance: decimal.Zero,
		IsActive:       true,
	}
	customerRepo.customers[customer.ID] = customer

	req := saleRequest(p, 1)
	req.Payments[0].Method = "credito"
	cid := customer.ID.String()
	req.CustomerID = &cid

	resp, err := svc.Register(context.Background(), cashierActor(), req)
	require.NoError(t, err)
	assert.Equal(t, "100", customer.CurrentBalance.String())
	assert.Equal(t, customer.Name, *resp.CustomerName)
}

func TestRegisterSale_CreditLimitExceeded(t *testing.T) {
	productRepo := newFakeProductRepo()
	customerRepo := newFakeCustomerRepo()
	svc := service.NewSaleService(&fakeSaleRepo{}, productRepo, customerRepo, &fakeInventoryRepo{})

	p := seedProduct(productRepo, 5)
	customer := &model.Customer{
		ID: uuid.New(), Name: "Doña Mary",
		CreditLimit:    decimal.NewFromFloat(1000),
		CurrentBalance: decimal.NewFromFloat(950),
		IsActive:       true,
	}
	customerRepo.customers[customer.ID] = customer

	req := saleRequest(p, 1) // 100 on credit, balance would hit 1050
	req.Payments[0].Method = "credito"
	cid := customer.ID.String()
	req.CustomerID = &cid

	_, err := svc.Register(context.Background(), cashierActor(), req)
	assert.ErrorContains(t, err, "límite de crédito")
	assert.Equal(t, "950", customer.CurrentBalance.String())
}

func TestCancelSale_RestoresStockAndCredit(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	productRepo := newFakeProductRepo()
	customerRepo := newFakeCustomerRepo()
	svc := service.NewSaleService(saleRepo, productRepo, customerRepo, &fakeInventoryRepo{})

	p := seedProduct(productRepo, 5)
	customer := &model.Customer{
		ID: uuid.New(), Name: "Doña Mary",
		CreditLimit: decimal.NewFromFloat(1000),
		IsActive:    true,
	}
	customerRepo.customers[customer.ID] = customer

	req := saleRequest(p, 2)
	req.Payments[0].Method = "credito"
	cid := customer.ID.String()
	req.CustomerID = &cid

	resp, err := svc.Register(context.Background(), cashierActor(), req)
	require.NoError(t, err)
	require.Equal(t, 3, p.Stock)
	require.Equal(t, "200", customer.CurrentBalance.String())

	saleID := uuid.MustParse(resp.ID)
	err = svc.Cancel(context.Background(), adminActor(), saleID, "Cliente se arrepintió")
	require.NoError(t, err)

	assert.Equal(t, 5, p.Stock, "cancellation must restore stock")
	assert.Equal(t, "0", customer.CurrentBalance.String(), "credit charge must be reversed")

	stored, err := saleRepo.FindByID(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleCancelled, stored.Status)
	assert.Equal(t, "Cliente se arrepintió", *stored.CancelReason)
}

func TestCancelSale_AlreadyCancelled(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	productRepo := newFakeProductRepo()
	svc := service.NewSaleService(saleRepo, productRepo, newFakeCustomerRepo(), &fakeInventoryRepo{})

	p := seedProduct(productRepo, 5)
	resp, err := svc.Register(context.Background(), cashierActor(), saleRequest(p, 1))
	require.NoError(t, err)

	saleID := uuid.MustParse(resp.ID)
	require.NoError(t, svc.Cancel(context.Background(), adminActor(), saleID, "Error de captura"))

	err = svc.Cancel(context.Background(), adminActor(), saleID, "Otra vez")
	assert.ErrorContains(t, err, "ya está cancelada")
	assert.Equal(t, 5, p.Stock, "double cancel must not restore stock twice")
}

func TestCancelSale_RequiresPermission(t *testing.T) {
	svc := service.NewSaleService(&fakeSaleRepo{}, newFakeProductRepo(), newFakeCustomerRepo(), &fakeInventoryRepo{})

	err := svc.Cancel(context.Background(), cashierActor(), uuid.New(), "motivo cualquiera")
	assert.ErrorContains(t, err, "permiso")
}
