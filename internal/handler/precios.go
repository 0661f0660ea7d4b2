package handler

import (
	"errors"
	"net/http"

	"viotex/internal/apierror"
	"viotex/internal/dto"
	"viotex/internal/pricing"
	"viotex/internal/service"

	"github.com/gin-gonic/gin"
)

type PreciosHandler struct{ svc service.PrecioService }

func NewPreciosHandler(svc service.PrecioService) *PreciosHandler {
	return &PreciosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear configuracion de precios de un producto
// @Tags precios
// @Accept json
// @Produce json
// @Param body body dto.PrecioRequest true "Configuracion de precios"
// @Success 201 {object} dto.PrecioResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/precios [post]
func (h *PreciosHandler) Crear(c *gin.Context) {
	var req dto.PrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PreciosHandler) Obtener(c *gin.Context) {
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

func (h *PreciosHandler) Listar(c *gin.Context) {
	var filter dto.PrecioFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar precios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PreciosHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PreciosHandler) Desactivar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al desactivar precio"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Consultar godoc
// @Summary Resolver el precio unitario para cantidad + clasificacion + moneda
// @Tags precios
// @Produce json
// @Param producto_id query string true "UUID del producto"
// @Param cantidad query int true "Cantidad"
// @Param clasificacion query string true "AUTORIZADO | MAYORISTA | VIOMAR | COLANTA"
// @Param moneda query string false "COP | USD"
// @Success 200 {object} dto.ConsultaPrecioResponse
// @Failure 404 {object} apierror.APIError "Precio no resuelto"
// @Router /v1/precios/consulta [get]
func (h *PreciosHandler) Consultar(c *gin.Context) {
	var req dto.ConsultaPrecioRequest
	if !bindQueryAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ConsultarPrecio(c.Request.Context(), req)
	if err != nil {
		// Precio sin resolver es un 404 del recurso "precio", no un 500.
		status := http.StatusNotFound
		if errors.Is(err, pricing.ErrCantidadInvalida) {
			status = http.StatusBadRequest
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
