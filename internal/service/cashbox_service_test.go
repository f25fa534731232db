package service_test

import (
	"context"
	"testing"
	"time"

	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMovement_DirectionDerivesFromType(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	svc := service.NewCashboxService(movRepo, &fakeCutRepo{})
	actor := adminActor()

	in, err := svc.RegisterMovement(context.Background(), actor, dto.RegisterMovementRequest{
		Type: "income", Amount: decimal.NewFromFloat(100), Description: "Fondo extra",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DirectionIn, in.Direction)

	out, err := svc.RegisterMovement(context.Background(), actor, dto.RegisterMovementRequest{
		Type: "expense", Amount: decimal.NewFromFloat(30), Description: "Pago de flete",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DirectionOut, out.Direction)

	require.Len(t, movRepo.movs, 2)
	assert.Equal(t, actor.Username, movRepo.movs[0].Username)
}

func TestRegisterMovement_InvalidType(t *testing.T) {
	svc := service.NewCashboxService(&fakeMovementRepo{}, &fakeCutRepo{})

	_, err := svc.RegisterMovement(context.Background(), adminActor(), dto.RegisterMovementRequest{
		Type: "withdrawal", Amount: decimal.NewFromFloat(10), Description: "Tipo desconocido",
	})
	assert.ErrorContains(t, err, "no válido")
}

func TestRegisterMovement_RejectsNonPositiveAmount(t *testing.T) {
	svc := service.NewCashboxService(&fakeMovementRepo{}, &fakeCutRepo{})

	_, err := svc.RegisterMovement(context.Background(), adminActor(), dto.RegisterMovementRequest{
		Type: "income", Amount: decimal.Zero, Description: "Monto cero",
	})
	assert.ErrorContains(t, err, "mayor a cero")
}

func TestRegisterMovement_RequiresPermission(t *testing.T) {
	svc := service.NewCashboxService(&fakeMovementRepo{}, &fakeCutRepo{})

	actor := cashierActor() // can sell, cannot manage the drawer
	_, err := svc.RegisterMovement(context.Background(), actor, dto.RegisterMovementRequest{
		Type: "income", Amount: decimal.NewFromFloat(50), Description: "Intento sin permiso",
	})
	assert.ErrorContains(t, err, "permiso")
}

func TestListMovements_DefaultsToOpenWindow(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	cutRepo := &fakeCutRepo{}
	svc := service.NewCashboxService(movRepo, cutRepo)

	cutEnd := time.Now().Add(-time.Hour)
	cutRepo.cuts = append(cutRepo.cuts, model.CashCut{
		ID: uuid.New(), Folio: "CC-000001",
		RangeStart: cutEnd.Add(-8 * time.Hour), RangeEnd: cutEnd,
	})
	movRepo.movs = append(movRepo.movs,
		model.CashMovement{ID: uuid.New(), Type: model.MovementIncome, Direction: model.DirectionIn,
			Amount: decimal.NewFromFloat(10), Username: "caja1", CreatedAt: cutEnd.Add(-time.Minute)},
		model.CashMovement{ID: uuid.New(), Type: model.MovementIncome, Direction: model.DirectionIn,
			Amount: decimal.NewFromFloat(20), Username: "caja1", CreatedAt: cutEnd.Add(time.Minute)},
	)

	resp, err := svc.ListMovements(context.Background(), dto.MovementFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1, "movements before the last cut belong to a closed window")
	assert.Equal(t, "20", resp.Data[0].Amount.String())
}

func TestListMovements_DateFilterOverridesWindow(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	cutRepo := &fakeCutRepo{}
	svc := service.NewCashboxService(movRepo, cutRepo)

	// A cut closed an hour ago; the queried day predates it. The explicit
	// date must win over the open-window default.
	cutEnd := time.Now().Add(-time.Hour)
	cutRepo.cuts = append(cutRepo.cuts, model.CashCut{
		ID: uuid.New(), Folio: "CC-000001",
		RangeStart: cutEnd.Add(-8 * time.Hour), RangeEnd: cutEnd,
	})

	twoDaysAgo := time.Now().AddDate(0, 0, -2)
	movRepo.movs = append(movRepo.movs,
		model.CashMovement{ID: uuid.New(), Type: model.MovementExpense, Direction: model.DirectionOut,
			Amount: decimal.NewFromFloat(45), Username: "caja1", CreatedAt: twoDaysAgo},
		model.CashMovement{ID: uuid.New(), Type: model.MovementIncome, Direction: model.DirectionIn,
			Amount: decimal.NewFromFloat(20), Username: "caja1", CreatedAt: cutEnd.Add(time.Minute)},
	)

	resp, err := svc.ListMovements(context.Background(), dto.MovementFilter{
		Date: twoDaysAgo.Format("2006-01-02"), Page: 1, Limit: 50,
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "45", resp.Data[0].Amount.String())
}
