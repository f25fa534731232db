package service

import (
	"context"
	"time"

	"tenaypos/internal/apierror"
	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/repository"
)

type ReportService interface {
	// SalesReport aggregates completed sales for a preset period:
	// today | week | month.
	SalesReport(ctx context.Context, actor model.Actor, period string) (*dto.SalesReportResponse, error)
}

type reportService struct {
	saleRepo repository.SaleRepository
}

func NewReportService(saleRepo repository.SaleRepository) ReportService {
	return &reportService{saleRepo: saleRepo}
}

// periodBounds resolves a preset period to a half-open window ending now.
func periodBounds(period string, now time.Time) (time.Time, time.Time, bool) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "today":
		return startOfDay, now, true
	case "week":
		return startOfDay.AddDate(0, 0, -int(startOfDay.Weekday())), now, true
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now, true
	}
	return time.Time{}, time.Time{}, false
}

func (s *reportService) SalesReport(ctx context.Context, actor model.Actor, period string) (*dto.SalesReportResponse, error) {
	if !actor.Permissions.CanSeeReports {
		return nil, apierror.Forbidden("No tienes permiso para ver reportes")
	}

	from, to, ok := periodBounds(period, time.Now())
	if !ok {
		return nil, apierror.Validation("Periodo no válido: usa today, week o month")
	}

	sales, err := s.saleRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, apierror.Persistence("Error consultando ventas del periodo", err)
	}

	totals := newRangeTotals()
	totals.aggregateSales(sales)

	return &dto.SalesReportResponse{
		Period:         period,
		From:           from.Format(time.RFC3339),
		To:             to.Format(time.RFC3339),
		TotalSales:     totals.TotalSales,
		TotalCost:      totals.TotalCost,
		Profit:         totals.profit(),
		SalesCount:     totals.SalesCount,
		TotalsByMethod: totals.ByMethod,
	}, nil
}
