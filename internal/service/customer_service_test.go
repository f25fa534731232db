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

func seedCustomer(repo *fakeCustomerRepo, balance float64) *model.Customer {
	c := &model.Customer{
		ID:             uuid.New(),
		Name:           "Doña Mary",
		CreditLimit:    decimal.NewFromFloat(1000),
		CurrentBalance: decimal.NewFromFloat(balance),
		IsActive:       true,
	}
	repo.customers[c.ID] = c
	return c
}

func TestRegisterPayment_CashAbonoEntersDrawer(t *testing.T) {
	customerRepo := newFakeCustomerRepo()
	movRepo := &fakeMovementRepo{}
	svc := service.NewCustomerService(customerRepo, movRepo)

	c := seedCustomer(customerRepo, 300)
	resp, err := svc.RegisterPayment(context.Background(), adminActor(), c.ID, dto.RegisterPaymentRequest{
		Amount: decimal.NewFromFloat(200),
		Method: "efectivo",
	})
	require.NoError(t, err)

	assert.Equal(t, "100", c.CurrentBalance.String())
	assert.Equal(t, model.MethodCash.String(), resp.Method)
	require.Len(t, movRepo.movs, 1, "cash abono must land in the drawer ledger")
	assert.Equal(t, model.MovementCustomerPayment, movRepo.movs[0].Type)
	assert.Equal(t, "200", movRepo.movs[0].Amount.String())
	assert.Equal(t, "Abono de Doña Mary", movRepo.movs[0].Description)
}

func TestRegisterPayment_TransferSkipsDrawer(t *testing.T) {
	customerRepo := newFakeCustomerRepo()
	movRepo := &fakeMovementRepo{}
	svc := service.NewCustomerService(customerRepo, movRepo)

	c := seedCustomer(customerRepo, 300)
	_, err := svc.RegisterPayment(context.Background(), adminActor(), c.ID, dto.RegisterPaymentRequest{
		Amount: decimal.NewFromFloat(100),
		Method: "transferencia",
	})
	require.NoError(t, err)

	assert.Equal(t, "200", c.CurrentBalance.String())
	assert.Empty(t, movRepo.movs, "non-cash abonos never touch the physical drawer")
}

func TestRegisterPayment_CannotExceedBalance(t *testing.T) {
	customerRepo := newFakeCustomerRepo()
	svc := service.NewCustomerService(customerRepo, &fakeMovementRepo{})

	c := seedCustomer(customerRepo, 50)
	_, err := svc.RegisterPayment(context.Background(), adminActor(), c.ID, dto.RegisterPaymentRequest{
		Amount: decimal.NewFromFloat(80),
		Method: "efectivo",
	})
	assert.ErrorContains(t, err, "excede el saldo")
	assert.Equal(t, "50", c.CurrentBalance.String())
}

func TestRegisterPayment_RejectsNonPositiveAmount(t *testing.T) {
	customerRepo := newFakeCustomerRepo()
	svc := service.NewCustomerService(customerRepo, &fakeMovementRepo{})

	c := seedCustomer(customerRepo, 100)
	_, err := svc.RegisterPayment(context.Background(), adminActor(), c.ID, dto.RegisterPaymentRequest{
		Amount: decimal.Zero,
		Method: "efectivo",
	})
	assert.ErrorContains(t, err, "mayor a cero")
}
