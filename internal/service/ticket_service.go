package service

import (
	"context"

	"tenaypos/internal/apierror"
	"tenaypos/internal/infra"
	"tenaypos/internal/repository"

	"github.com/google/uuid"
)

// TicketService renders printable PDFs on demand (sale ticket reprint and
// cash-cut archive reports).
type TicketService interface {
	SaleTicketPDF(ctx context.Context, saleID uuid.UUID) (string, error)
	CashCutPDF(ctx context.Context, cutID uuid.UUID) (string, error)
}

type ticketService struct {
	saleRepo    repository.SaleRepository
	cutRepo     repository.CashCutRepository
	configRepo  repository.StoreConfigRepository
	storagePath string
}

func NewTicketService(
	saleRepo repository.SaleRepository,
	cutRepo repository.CashCutRepository,
	configRepo repository.StoreConfigRepository,
	storagePath string,
) TicketService {
	return &ticketService{
		saleRepo:    saleRepo,
		cutRepo:     cutRepo,
		configRepo:  configRepo,
		storagePath: storagePath,
	}
}

func (s *ticketService) SaleTicketPDF(ctx context.Context, saleID uuid.UUID) (string, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return "", apierror.NotFound("Venta no encontrada")
	}
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return "", apierror.Persistence("Error consultando la configuración", err)
	}
	path, err := infra.GenerateSaleTicketPDF(sale, cfg, s.storagePath)
	if err != nil {
		return "", apierror.Persistence("Error generando el ticket", err)
	}
	return path, nil
}

func (s *ticketService) CashCutPDF(ctx context.Context, cutID uuid.UUID) (string, error) {
	cut, err := s.cutRepo.FindByID(ctx, cutID)
	if err != nil {
		return "", apierror.NotFound("Corte de caja no encontrado")
	}
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return "", apierror.Persistence("Error consultando la configuración", err)
	}
	path, err := infra.GenerateCashCutPDF(cut, cfg, s.storagePath)
	if err != nil {
		return "", apierror.Persistence("Error generando el reporte del corte", err)
	}
	return path, nil
}
