package handler

import (
	"net/http"

	"tenaypos/internal/middleware"
	"tenaypos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  Agrega ventas completadas del periodo: today, week o month.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        period query string false "today | week | month" default(today)
// @Success      200 {object} dto.SalesReportResponse
// @Failure      403 {object} apierror.APIError
// @Router       /v1/reports/sales [get]
func (h *ReportsHandler) Sales(c *gin.Context) {
	period := c.DefaultQuery("period", "today")
	resp, err := h.svc.SalesReport(c.Request.Context(), middleware.GetActor(c), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
