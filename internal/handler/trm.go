package handler

import (
	"net/http"
	"time"

	"viotex/internal/apierror"
	"viotex/internal/dto"
	"viotex/internal/service"

	"github.com/gin-gonic/gin"
)

type TRMHandler struct{ svc service.TRMService }

func NewTRMHandler(svc service.TRMService) *TRMHandler { return &TRMHandler{svc: svc} }

// Obtener godoc
// @Summary TRM vigente (COP por USD)
// @Tags trm
// @Produce json
// @Success 200 {object} dto.TRMResponse
// @Failure 503 {object} apierror.APIError "Sin tasa disponible"
// @Router /v1/trm [get]
func (h *TRMHandler) Obtener(c *gin.Context) {
	tasa, fuente, err := h.svc.Obtener(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("TRM no disponible"))
		return
	}
	c.JSON(http.StatusOK, dto.TRMResponse{
		Tasa:       tasa,
		Fuente:     fuente,
		ObtenidaEn: time.Now().UTC().Format(time.RFC3339),
	})
}
