package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// PrecioFilter is bound from query string of GET /v1/precios.
type PrecioFilter struct {
	Nombre     string `form:"nombre"`
	Referencia string `form:"referencia"`
	EsAdicion  string `form:"es_adicion"` // "true" | "false" | "" (todos)
	Activo     string `form:"activo"`     // "false" | "all" | default activos
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PrecioRequest crea o reemplaza la configuracion de precios de un producto.
// Los campos opcionales en nil significan "sin precio definido" (distinto de 0).
type PrecioRequest struct {
	Referencia string `json:"referencia" validate:"required,min=1,max=50"`
	Nombre     string `json:"nombre"     validate:"required,min=2,max=200"`
	EsAdicion  bool   `json:"es_adicion"`

	PrecioTramo1 *decimal.Decimal `json:"precio_tramo1" validate:"omitempty"`
	PrecioTramo2 *decimal.Decimal `json:"precio_tramo2" validate:"omitempty"`
	PrecioTramo3 *decimal.Decimal `json:"precio_tramo3" validate:"omitempty"`

	PrecioMayorista *decimal.Decimal `json:"precio_mayorista" validate:"omitempty"`
	PrecioColanta   *decimal.Decimal `json:"precio_colanta"   validate:"omitempty"`
	PrecioViomar    *decimal.Decimal `json:"precio_viomar"    validate:"omitempty"`
	PrecioUSD       *decimal.Decimal `json:"precio_usd"       validate:"omitempty"`

	VigenciaInicio *string `json:"vigencia_inicio" validate:"omitempty,datetime=2006-01-02"`
	VigenciaFin    *string `json:"vigencia_fin"    validate:"omitempty,datetime=2006-01-02"`
	EsEditable     bool    `json:"es_editable"`
}

// ConsultaPrecioRequest resuelve el precio unitario para un contexto de pedido.
type ConsultaPrecioRequest struct {
	ProductoID    string `form:"producto_id"   json:"producto_id"   validate:"required,uuid"`
	Cantidad      int    `form:"cantidad"      json:"cantidad"      validate:"required,min=1"`
	Moneda        string `form:"moneda,default=COP" json:"moneda"   validate:"omitempty,oneof=COP USD"`
	Clasificacion string `form:"clasificacion" json:"clasificacion" validate:"required,oneof=AUTORIZADO MAYORISTA VIOMAR COLANTA"`
	PrecioManual  string `form:"precio_manual" json:"precio_manual" validate:"omitempty"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PrecioResponse struct {
	ID         string `json:"id"`
	Referencia string `json:"referencia"`
	Nombre     string `json:"nombre"`
	EsAdicion  bool   `json:"es_adicion"`

	PrecioTramo1 *decimal.Decimal `json:"precio_tramo1"`
	PrecioTramo2 *decimal.Decimal `json:"precio_tramo2"`
	PrecioTramo3 *decimal.Decimal `json:"precio_tramo3"`

	PrecioMayorista *decimal.Decimal `json:"precio_mayorista"`
	PrecioColanta   *decimal.Decimal `json:"precio_colanta"`
	PrecioViomar    *decimal.Decimal `json:"precio_viomar"`
	PrecioUSD       *decimal.Decimal `json:"precio_usd"`

	VigenciaInicio *string `json:"vigencia_inicio"`
	VigenciaFin    *string `json:"vigencia_fin"`
	EsEditable     bool    `json:"es_editable"`
	Activo         bool    `json:"activo"`
}

type PrecioListResponse struct {
	Data  []PrecioResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ConsultaPrecioResponse es el precio resuelto para el contexto consultado.
type ConsultaPrecioResponse struct {
	ProductoID     string          `json:"producto_id"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	Moneda         string          `json:"moneda"`
	Clasificacion  string          `json:"clasificacion"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	// Editable indica que la UI debe habilitar el campo de precio manual
	// (cliente AUTORIZADO sobre un registro es_editable).
	Editable bool `json:"editable"`
}
