package service

import (
	"context"

	"tenaypos/internal/apierror"
	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/repository"
)

type StoreConfigService interface {
	Get(ctx context.Context) (*dto.StoreConfigResponse, error)
	Update(ctx context.Context, actor model.Actor, req dto.UpdateStoreConfigRequest) (*dto.StoreConfigResponse, error)
}

type storeConfigService struct {
	repo repository.StoreConfigRepository
}

func NewStoreConfigService(repo repository.StoreConfigRepository) StoreConfigService {
	return &storeConfigService{repo: repo}
}

func (s *storeConfigService) Get(ctx context.Context) (*dto.StoreConfigResponse, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return nil, apierror.Persistence("Error consultando la configuración", err)
	}
	resp := dto.StoreConfigFromModel(c)
	return &resp, nil
}

func (s *storeConfigService) Update(ctx context.Context, actor model.Actor, req dto.UpdateStoreConfigRequest) (*dto.StoreConfigResponse, error) {
	if !actor.Permissions.CanAccessConfig {
		return nil, apierror.Forbidden("No tienes permiso para modificar la configuración")
	}

	c, err := s.repo.Get(ctx)
	if err != nil {
		return nil, apierror.Persistence("Error consultando la configuración", err)
	}
	if req.StoreName != nil {
		c.StoreName = *req.StoreName
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.TaxID != nil {
		c.TaxID = req.TaxID
	}
	if req.TicketFooter != nil {
		c.TicketFooter = *req.TicketFooter
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apierror.Persistence("Error guardando la configuración", err)
	}
	resp := dto.StoreConfigFromModel(c)
	return &resp, nil
}
