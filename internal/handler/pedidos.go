package handler

import (
	"errors"
	"net/http"

	"viotex/internal/apierror"
	"viotex/internal/dto"
	"viotex/internal/middleware"
	"viotex/internal/repository"
	"viotex/internal/service"
	"viotex/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("token mal formado"))
		return
	}

	resp, err := h.svc.CrearDesdeCotizacion(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PedidosHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) ListarItems(c *gin.Context) {
	var filter dto.PedidoItemFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListarItems(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar items"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary Mover un item de pedido a otro estado
// @Description El rol del JWT decide que transiciones estan permitidas. Una
// @Description transicion prohibida responde 403 con la lista de estados legales.
// @Tags pedidos
// @Accept json
// @Produce json
// @Param id path string true "UUID del item"
// @Param body body dto.CambiarEstadoRequest true "Estado solicitado"
// @Success 200 {object} dto.PedidoItemResponse
// @Failure 403 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError "El item cambio de estado, recargar"
// @Router /v1/pedidos/items/{id}/estado [patch]
func (h *PedidosHandler) CambiarEstado(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("token mal formado"))
		return
	}

	resp, err := h.svc.CambiarEstado(c.Request.Context(), itemID, usuarioID, claims.Rol, req)
	if err != nil {
		var prohibida *workflow.TransicionProhibidaError
		switch {
		case errors.As(err, &prohibida):
			c.JSON(http.StatusForbidden, apierror.New(prohibida.Error()))
		case errors.Is(err, repository.ErrEstadoDesactualizado):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EstadosPermitidos lista los movimientos legales para el rol del solicitante,
// dado el estado actual del item.
func (h *PedidosHandler) EstadosPermitidos(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.EstadosPermitidos(c.Request.Context(), itemID, claims.Rol)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) Historial(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar historial"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
