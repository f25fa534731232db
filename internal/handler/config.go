package handler

import (
	"net/http"

	"tenaypos/internal/dto"
	"tenaypos/internal/middleware"
	"tenaypos/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct{ svc service.StoreConfigService }

func NewConfigHandler(svc service.StoreConfigService) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

func (h *ConfigHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfigHandler) Update(c *gin.Context) {
	var req dto.UpdateStoreConfigRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
