package service

import (
	"context"
	"time"

	"tenaypos/internal/apierror"
	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/repository"

	"github.com/rs/zerolog/log"
)

type CashboxService interface {
	RegisterMovement(ctx context.Context, actor model.Actor, req dto.RegisterMovementRequest) (*dto.MovementResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
}

type cashboxService struct {
	repo    repository.CashMovementRepository
	cutRepo repository.CashCutRepository
}

func NewCashboxService(repo repository.CashMovementRepository, cutRepo repository.CashCutRepository) CashboxService {
	return &cashboxService{repo: repo, cutRepo: cutRepo}
}

func (s *cashboxService) RegisterMovement(ctx context.Context, actor model.Actor, req dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if !actor.Permissions.CanManageCashbox {
		return nil, apierror.Forbidden("No tienes permiso para registrar movimientos de caja")
	}

	mtype := model.CashMovementType(req.Type)
	if !mtype.Valid() {
		return nil, apierror.Validation("Tipo de movimiento no válido")
	}
	if !req.Amount.IsPositive() {
		return nil, apierror.Validation("El monto debe ser mayor a cero")
	}

	mov := model.CashMovement{
		Type:        mtype,
		Direction:   mtype.Direction(),
		Amount:      req.Amount,
		Description: req.Description,
		UserID:      actor.ID,
		Username:    actor.Username,
	}
	if err := s.repo.Create(ctx, &mov); err != nil {
		return nil, apierror.Persistence("Error registrando el movimiento", err)
	}

	log.Info().
		Str("type", string(mov.Type)).
		Str("amount", mov.Amount.String()).
		Str("user", actor.Username).
		Msg("movimiento de caja registrado")

	resp := dto.MovementFromModel(&mov)
	return &resp, nil
}

func (s *cashboxService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	last, err := s.cutRepo.FindLast(ctx)
	if err != nil {
		return nil, apierror.Persistence("Error consultando el último corte", err)
	}
	since := time.Unix(0, 0).UTC()
	if last != nil {
		since = last.RangeEnd
	}

	movs, total, err := s.repo.List(ctx, filter, since)
	if err != nil {
		return nil, apierror.Persistence("Error consultando movimientos", err)
	}
	data := make([]dto.MovementResponse, 0, len(movs))
	for i := range movs {
		data = append(data, dto.MovementFromModel(&movs[i]))
	}
	return &dto.MovementListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}
