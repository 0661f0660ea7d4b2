package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type PedidoItemFilter struct {
	PedidoID string `form:"pedido_id" validate:"omitempty,uuid"`
	Estado   string `form:"estado"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPedidoRequest struct {
	CotizacionID string `json:"cotizacion_id" validate:"required,uuid"`
}

type CambiarEstadoRequest struct {
	Estado string  `json:"estado" validate:"required"`
	Motivo *string `json:"motivo" validate:"omitempty,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PedidoItemResponse struct {
	ID             string          `json:"id"`
	PedidoID       string          `json:"pedido_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	TipoPedido     string          `json:"tipo_pedido"`
	Estado         string          `json:"estado"`
	UpdatedAt      string          `json:"updated_at"`
}

type PedidoResponse struct {
	ID           string               `json:"id"`
	Numero       int                  `json:"numero"`
	CotizacionID *string              `json:"cotizacion_id,omitempty"`
	ClienteID    string               `json:"cliente_id"`
	Cliente      string               `json:"cliente,omitempty"`
	Items        []PedidoItemResponse `json:"items"`
	CreatedAt    string               `json:"created_at"`
}

type PedidoItemListResponse struct {
	Data  []PedidoItemResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// EstadosPermitidosResponse enumera los movimientos legales para el rol del
// solicitante dado el estado actual del item — la UI solo pinta estos botones.
type EstadosPermitidosResponse struct {
	ItemID     string   `json:"item_id"`
	Estado     string   `json:"estado"`
	Rol        string   `json:"rol"`
	Permitidos []string `json:"permitidos"`
}

type HistorialEstadoResponse struct {
	EstadoAnterior string  `json:"estado_anterior"`
	EstadoNuevo    string  `json:"estado_nuevo"`
	Rol            string  `json:"rol"`
	UsuarioID      string  `json:"usuario_id"`
	Motivo         *string `json:"motivo,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
