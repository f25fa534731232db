package handler

import (
	"net/http"

	"tenaypos/internal/dto"
	"tenaypos/internal/middleware"
	"tenaypos/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) AddStock(c *gin.Context) {
	var req dto.AddStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddStock(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Kardex godoc
// @Summary      Kardex de un producto
// @Description  Historial de movimientos de stock, por id o por sku/código de barras.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        product_id query string false "ID del producto"
// @Param        code       query string false "SKU o código de barras"
// @Success      200 {object} dto.KardexResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/inventory/kardex [get]
func (h *InventoryHandler) Kardex(c *gin.Context) {
	var filter dto.KardexFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Kardex(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Report(c *gin.Context) {
	resp, err := h.svc.Report(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
