package handler

import (
	"net/http"

	"tenaypos/internal/apierror"
	"tenaypos/internal/dto"
	"tenaypos/internal/middleware"
	"tenaypos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CashboxHandler struct {
	movements service.CashboxService
	cuts      service.CashCutService
	tickets   service.TicketService
}

func NewCashboxHandler(movements service.CashboxService, cuts service.CashCutService, tickets service.TicketService) *CashboxHandler {
	return &CashboxHandler{movements: movements, cuts: cuts, tickets: tickets}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de caja
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegisterMovementRequest true "Movimiento"
// @Success      201 {object} dto.MovementResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/cashbox/movements [post]
func (h *CashboxHandler) RegisterMovement(c *gin.Context) {
	var req dto.RegisterMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.movements.RegisterMovement(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CashboxHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.movements.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary      Resumen en vivo de la caja
// @Description  Estado teórico de la caja desde el último corte hasta ahora. Solo lectura.
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CashboxSummaryResponse
// @Router       /v1/cashbox/summary [get]
func (h *CashboxHandler) Summary(c *gin.Context) {
	resp, err := h.cuts.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCut godoc
// @Summary      Realizar corte de caja
// @Description  Cierra la ventana abierta en un corte inmutable con folio consecutivo. Serializado contra cortes concurrentes.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateCashCutRequest true "Montos contados"
// @Success      201 {object} dto.CashCutResponse
// @Failure      400 {object} apierror.APIError
// @Failure      403 {object} apierror.APIError
// @Router       /v1/cashbox/cuts [post]
func (h *CashboxHandler) CreateCut(c *gin.Context) {
	var req dto.CreateCashCutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.cuts.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CashboxHandler) GetCut(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.cuts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CashboxHandler) ListCuts(c *gin.Context) {
	var filter dto.CutFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.cuts.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CutPDF serves the printable report for an archived cut.
func (h *CashboxHandler) CutPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	path, err := h.tickets.CashCutPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "corte.pdf")
}
