package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type CotizacionFilter struct {
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Estado    string `form:"estado,default=vigente"` // vigente | anulada | all
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AdicionRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	// Cantidad en 0 toma la cantidad de la linea padre (convencion del taller).
	Cantidad int `json:"cantidad" validate:"min=0"`
}

type LineaRequest struct {
	ProductoID   string          `json:"producto_id"   validate:"required,uuid"`
	Cantidad     int             `json:"cantidad"      validate:"required,min=1"`
	DescuentoPct decimal.Decimal `json:"descuento_pct" validate:"min=0,max=100"`
	// PrecioManual solo pesa para clientes AUTORIZADO; se ignora para el resto.
	PrecioManual string           `json:"precio_manual" validate:"omitempty"`
	TipoPedido   string           `json:"tipo_pedido,omitempty" validate:"omitempty,oneof=NORMAL COMPLETACION REFERENTE REPOSICION BODEGA"`
	Negociacion  *string          `json:"negociacion"`
	Adiciones    []AdicionRequest `json:"adiciones" validate:"omitempty,dive"`
}

type CargoRequest struct {
	Habilitado bool            `json:"habilitado"`
	Valor      decimal.Decimal `json:"valor" validate:"min=0"`
}

type CrearCotizacionRequest struct {
	ClienteID string         `json:"cliente_id" validate:"required,uuid"`
	Moneda    string         `json:"moneda,omitempty" validate:"omitempty,oneof=COP USD"`
	Lineas    []LineaRequest `json:"lineas"     validate:"required,min=1,dive"`
	Envio     CargoRequest   `json:"envio"`
	Seguro    CargoRequest   `json:"seguro"`
	// EmailCliente: si llega, el worker envia el PDF de la cotizacion por correo.
	EmailCliente *string `json:"email_cliente" validate:"omitempty,email"`
}

type AnularCotizacionRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AdicionResponse struct {
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type LineaResponse struct {
	Producto       string            `json:"producto"`
	Cantidad       int               `json:"cantidad"`
	PrecioUnitario decimal.Decimal   `json:"precio_unitario"`
	DescuentoPct   decimal.Decimal   `json:"descuento_pct"`
	TotalLinea     decimal.Decimal   `json:"total_linea"`
	TotalAdiciones decimal.Decimal   `json:"total_adiciones"`
	TotalGeneral   decimal.Decimal   `json:"total_general"`
	TipoPedido     string            `json:"tipo_pedido"`
	Adiciones      []AdicionResponse `json:"adiciones,omitempty"`
}

type TotalesResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	IVA      decimal.Decimal `json:"iva"`
	Envio    decimal.Decimal `json:"envio"`
	Seguro   decimal.Decimal `json:"seguro"`
	Total    decimal.Decimal `json:"total"`
	Anticipo decimal.Decimal `json:"anticipo"`
}

type CotizacionResponse struct {
	ID            string           `json:"id"`
	Numero        int              `json:"numero"`
	ClienteID     string           `json:"cliente_id"`
	Cliente       string           `json:"cliente,omitempty"`
	Moneda        string           `json:"moneda"`
	TipoDocumento string           `json:"tipo_documento"`
	Lineas        []LineaResponse  `json:"lineas"`
	Totales       TotalesResponse  `json:"totales"`
	TRMUsada      *decimal.Decimal `json:"trm_usada,omitempty"`
	Estado        string           `json:"estado"`
	CreatedAt     string           `json:"created_at"`
}

type CotizacionListResponse struct {
	Data  []CotizacionResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// PreviewCotizacionResponse es el resultado de una cotizacion sin persistir.
// Las lineas incompletas (precio sin resolver) llegan enumeradas para que la
// UI bloquee el guardado y señale que falta.
type PreviewCotizacionResponse struct {
	Lineas            []LineaResponse `json:"lineas"`
	Totales           TotalesResponse `json:"totales"`
	LineasIncompletas []int           `json:"lineas_incompletas,omitempty"`
}

// ─── TRM ─────────────────────────────────────────────────────────────────────

type TRMResponse struct {
	Tasa       decimal.Decimal `json:"tasa"`
	Fuente     string          `json:"fuente"` // "cache" | "api"
	ObtenidaEn string          `json:"obtenida_en"`
}
