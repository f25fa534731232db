package service_test

import (
	"context"
	"testing"
	"time"

	"tenaypos/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesReport_Today(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	svc := service.NewReportService(saleRepo)

	now := time.Now()
	saleRepo.sales = append(saleRepo.sales,
		cashSale(120, now.Add(-time.Minute)),
		cashSale(80, now.Add(-2*time.Minute)),
		// Yesterday stays out of the "today" window
		cashSale(999, now.AddDate(0, 0, -1)),
	)
	cancelled := cashSale(50, now.Add(-3*time.Minute))
	cancelled.Status = "cancelled"
	saleRepo.sales = append(saleRepo.sales, cancelled)

	resp, err := svc.SalesReport(context.Background(), adminActor(), "today")
	require.NoError(t, err)

	assert.Equal(t, "today", resp.Period)
	assert.Equal(t, 2, resp.SalesCount)
	assert.Equal(t, "200", resp.TotalSales.String())
	assert.True(t, resp.Profit.Equal(decimal.NewFromFloat(200)), "no costs recorded, profit equals revenue")
}

func TestSalesReport_InvalidPeriod(t *testing.T) {
	svc := service.NewReportService(&fakeSaleRepo{})

	_, err := svc.SalesReport(context.Background(), adminActor(), "year")
	assert.ErrorContains(t, err, "Periodo no válido")
}

func TestSalesReport_RequiresPermission(t *testing.T) {
	svc := service.NewReportService(&fakeSaleRepo{})

	_, err := svc.SalesReport(context.Background(), cashierActor(), "today")
	assert.ErrorContains(t, err, "permiso")
}
