package service

import (
	"github.com/shopspring/decimal"

	"tenaypos/internal/model"
)

// rangeTotals accumulates the reconciliation figures for one time window.
// The same aggregation feeds the live cashbox summary and cut creation; the
// two paths differ only in where the window ends and whether the result is
// persisted.
type rangeTotals struct {
	TotalSales     decimal.Decimal
	TotalCost      decimal.Decimal
	CashFromSales  decimal.Decimal
	SalesCount     int
	CancelledCount int
	CancelledTotal decimal.Decimal
	ByMethod       model.MethodTotals

	// Manual drawer movements, summed by direction and by type. Openings
	// count toward TotalIn (they enter the drawer) and are also tracked in
	// their own bucket so a cut can fall back to them as the opening float.
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal

	Openings         decimal.Decimal
	Incomes          decimal.Decimal
	Expenses         decimal.Decimal
	CustomerPayments decimal.Decimal
	Adjustments      decimal.Decimal
}

func newRangeTotals() *rangeTotals {
	return &rangeTotals{
		TotalSales:       decimal.Zero,
		TotalCost:        decimal.Zero,
		CashFromSales:    decimal.Zero,
		CancelledTotal:   decimal.Zero,
		ByMethod:         model.MethodTotals{},
		TotalIn:          decimal.Zero,
		TotalOut:         decimal.Zero,
		Openings:         decimal.Zero,
		Incomes:          decimal.Zero,
		Expenses:         decimal.Zero,
		CustomerPayments: decimal.Zero,
		Adjustments:      decimal.Zero,
	}
}

// aggregateSales folds a slice of sales into the totals. Cancelled sales are
// counted separately and contribute nothing to revenue, cost or per-method
// sums.
func (t *rangeTotals) aggregateSales(sales []model.Sale) {
	for i := range sales {
		s := &sales[i]
		if s.Status == model.SaleCancelled {
			t.CancelledCount++
			t.CancelledTotal = t.CancelledTotal.Add(s.Total)
			continue
		}
		t.SalesCount++
		t.TotalSales = t.TotalSales.Add(s.Total)
		for _, it := range s.Items {
			t.TotalCost = t.TotalCost.Add(it.Cost.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		for _, p := range s.Payments {
			method, _ := model.ParsePaymentMethod(p.Method)
			t.ByMethod[method.String()] = t.ByMethod[method.String()].Add(p.Amount)
			if method.IsCash() {
				t.CashFromSales = t.CashFromSales.Add(p.Amount)
			}
		}
	}
}

// addMovements folds manual drawer movements into the totals. Direction
// derives from the movement type: expenses leave the drawer, everything else
// enters it.
func (t *rangeTotals) addMovements(movs []model.CashMovement) {
	for i := range movs {
		m := &movs[i]
		if m.Type.Direction() == model.DirectionOut {
			t.TotalOut = t.TotalOut.Add(m.Amount)
		} else {
			t.TotalIn = t.TotalIn.Add(m.Amount)
		}

		switch m.Type {
		case model.MovementOpening:
			t.Openings = t.Openings.Add(m.Amount)
		case model.MovementIncome:
			t.Incomes = t.Incomes.Add(m.Amount)
		case model.MovementExpense:
			t.Expenses = t.Expenses.Add(m.Amount)
		case model.MovementCustomerPayment:
			t.CustomerPayments = t.CustomerPayments.Add(m.Amount)
		case model.MovementAdjustment:
			t.Adjustments = t.Adjustments.Add(m.Amount)
		}
	}
}

// expectedCash is the drawer amount a shift cut should count: opening float
// plus cash-method sales. Manual movements are reported on the cut but stay
// out of the formula; only the live summary folds them in.
func (t *rangeTotals) expectedCash(opening decimal.Decimal) decimal.Decimal {
	return opening.Add(t.CashFromSales)
}

// theoreticalCash is the live-summary drawer estimate: cash sales plus every
// manual inflow (openings included) minus every outflow.
func (t *rangeTotals) theoreticalCash() decimal.Decimal {
	return t.CashFromSales.Add(t.TotalIn).Sub(t.TotalOut)
}

func (t *rangeTotals) profit() decimal.Decimal {
	return t.TotalSales.Sub(t.TotalCost)
}
