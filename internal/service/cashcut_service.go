package service

import (
	"context"
	"time"

	"tenaypos/internal/apierror"
	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CashCutService interface {
	// Create closes the open window (lastCut.RangeEnd, now] into an immutable
	// cut. Serialized by an advisory lock so concurrent requests can never
	// produce overlapping ranges.
	Create(ctx context.Context, actor model.Actor, req dto.CreateCashCutRequest) (*dto.CashCutResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CashCutResponse, error)
	List(ctx context.Context, filter dto.CutFilter) (*dto.CashCutListResponse, error)
	// Summary is the read-only live view of the open window. It never writes.
	Summary(ctx context.Context) (*dto.CashboxSummaryResponse, error)
}

type cashCutService struct {
	repo         repository.CashCutRepository
	saleRepo     repository.SaleRepository
	movementRepo repository.CashMovementRepository
}

func NewCashCutService(
	repo repository.CashCutRepository,
	saleRepo repository.SaleRepository,
	movementRepo repository.CashMovementRepository,
) CashCutService {
	return &cashCutService{repo: repo, saleRepo: saleRepo, movementRepo: movementRepo}
}

// openWindowStart resolves where the current window begins: the previous
// cut's range end, or the epoch when no cut exists yet.
func openWindowStart(last *model.CashCut) time.Time {
	if last == nil {
		return time.Unix(0, 0).UTC()
	}
	return last.RangeEnd
}

func (s *cashCutService) Create(ctx context.Context, actor model.Actor, req dto.CreateCashCutRequest) (*dto.CashCutResponse, error) {
	if !actor.Permissions.CanDoCashCuts {
		return nil, apierror.Forbidden("No tienes permiso para realizar cortes de caja")
	}

	var cut model.CashCut
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AcquireCreateLock(ctx, tx); err != nil {
			return apierror.Persistence("No se pudo bloquear el corte", err)
		}

		last, err := s.repo.FindLastTx(ctx, tx)
		if err != nil {
			return apierror.Persistence("Error consultando el último corte", err)
		}
		from := openWindowStart(last)
		to := time.Now()

		// Range reads go through the transaction so the whole
		// read-compute-insert sequence sees one snapshot.
		sales, err := s.saleRepo.ListRangeTx(ctx, tx, from, to)
		if err != nil {
			return apierror.Persistence("Error consultando ventas del rango", err)
		}
		movs, err := s.movementRepo.ListRangeTx(ctx, tx, from, to)
		if err != nil {
			return apierror.Persistence("Error consultando movimientos del rango", err)
		}

		totals := newRangeTotals()
		totals.aggregateSales(sales)
		totals.addMovements(movs)

		if totals.SalesCount == 0 {
			return apierror.EmptyRange("No hay ventas en el periodo para realizar el corte")
		}

		// Explicit opening amount wins; fall back to registered opening
		// movements so neither path counts the float twice.
		opening := req.OpeningAmount
		if opening.IsZero() {
			opening = totals.Openings
		}
		expected := totals.expectedCash(opening)

		num, err := s.repo.NextFolio(ctx, tx)
		if err != nil {
			return apierror.Persistence("Error generando folio del corte", err)
		}

		cut = model.CashCut{
			Folio:               model.FormatFolio(model.CashCutFolioPrefix, num),
			RangeStart:          from,
			RangeEnd:            to,
			OpeningAmount:       opening,
			ClosingAmount:       req.ClosingAmount,
			ExpectedCash:        expected,
			Difference:          req.ClosingAmount.Sub(expected),
			TotalSales:          totals.TotalSales,
			TotalCost:           totals.TotalCost,
			Profit:              totals.profit(),
			SalesCount:          totals.SalesCount,
			CancelledSalesCount: totals.CancelledCount,
			CancelledSalesTotal: totals.CancelledTotal,
			TotalsByMethod:      totals.ByMethod,
			Notes:               req.Notes,
			UserID:              actor.ID,
			Username:            actor.Username,
		}
		return s.repo.Create(ctx, tx, &cut)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("folio", cut.Folio).
		Str("user", actor.Username).
		Str("expected", cut.ExpectedCash.String()).
		Str("difference", cut.Difference.String()).
		Msg("corte de caja creado")

	resp := dto.CashCutFromModel(&cut)
	return &resp, nil
}

func (s *cashCutService) Get(ctx context.Context, id uuid.UUID) (*dto.CashCutResponse, error) {
	cut, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Corte de caja no encontrado")
	}
	resp := dto.CashCutFromModel(cut)
	return &resp, nil
}

func (s *cashCutService) List(ctx context.Context, filter dto.CutFilter) (*dto.CashCutListResponse, error) {
	from, err := parseFilterTime(filter.From, false)
	if err != nil {
		return nil, apierror.Validation("Fecha 'from' no válida")
	}
	to, err := parseFilterTime(filter.To, true)
	if err != nil {
		return nil, apierror.Validation("Fecha 'to' no válida")
	}

	cuts, total, err := s.repo.List(ctx, from, to, filter.Page, filter.Limit)
	if err != nil {
		return nil, apierror.Persistence("Error consultando cortes de caja", err)
	}
	data := make([]dto.CashCutResponse, 0, len(cuts))
	for i := range cuts {
		data = append(data, dto.CashCutFromModel(&cuts[i]))
	}
	return &dto.CashCutListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// parseFilterTime accepts RFC 3339 or a bare date. Bare dates on the "to" side
// extend to the end of that day so a single-day filter covers the whole day.
func parseFilterTime(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func (s *cashCutService) Summary(ctx context.Context) (*dto.CashboxSummaryResponse, error) {
	last, err := s.repo.FindLast(ctx)
	if err != nil {
		return nil, apierror.Persistence("Error consultando el último corte", err)
	}
	from := openWindowStart(last)
	to := time.Now()

	sales, err := s.saleRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, apierror.Persistence("Error consultando ventas del rango", err)
	}
	movs, err := s.movementRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, apierror.Persistence("Error consultando movimientos del rango", err)
	}

	totals := newRangeTotals()
	totals.aggregateSales(sales)
	totals.addMovements(movs)

	resp := &dto.CashboxSummaryResponse{
		Since:           from.Format(time.RFC3339),
		Until:           to.Format(time.RFC3339),
		CashFromSales:   totals.CashFromSales,
		TotalIn:         totals.TotalIn,
		TotalOut:        totals.TotalOut,
		TheoreticalCash: totals.theoreticalCash(),
		TotalSales:      totals.TotalSales,
		SalesCount:      totals.SalesCount,
		TotalsByMethod:  totals.ByMethod,
		Breakdown: dto.MovementBreakdown{
			Openings:         totals.Openings,
			Incomes:          totals.Incomes,
			Expenses:         totals.Expenses,
			CustomerPayments: totals.CustomerPayments,
			Adjustments:      totals.Adjustments,
		},
	}
	if last != nil {
		lastResp := dto.CashCutFromModel(last)
		resp.LastCut = &lastResp
	}
	return resp, nil
}
