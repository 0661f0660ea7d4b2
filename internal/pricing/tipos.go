// Package pricing contiene el nucleo puro de resolucion de precios y calculo
// de cotizaciones: sin reloj, sin red, sin estado global. Toda la aritmetica
// monetaria usa shopspring/decimal; el redondeo a 2 decimales ocurre unicamente
// en la capa de presentacion (ver Redondear).
package pricing

import "github.com/shopspring/decimal"

// Clasificacion del cliente — determina la rama del resolver que aplica.
// AUTORIZADO es la unica clasificacion que admite precio manual.
type Clasificacion string

const (
	ClasifAutorizado Clasificacion = "AUTORIZADO"
	ClasifMayorista  Clasificacion = "MAYORISTA"
	ClasifViomar     Clasificacion = "VIOMAR"
	ClasifColanta    Clasificacion = "COLANTA"
)

// EsValida reporta si la clasificacion es una de las cuatro conocidas.
func (c Clasificacion) EsValida() bool {
	switch c {
	case ClasifAutorizado, ClasifMayorista, ClasifViomar, ClasifColanta:
		return true
	}
	return false
}

// Moneda de la cotizacion. COP es la moneda base; USD activa el precio plano
// en moneda extranjera del registro (sin tramos ni clasificacion).
type Moneda string

const (
	MonedaCOP Moneda = "COP"
	MonedaUSD Moneda = "USD"
)

// TipoPedido clasifica el pedido. Es metadato de contexto: restringe que
// campos puede editar la UI, pero nunca altera la matematica de precios.
type TipoPedido string

const (
	PedidoNormal       TipoPedido = "NORMAL"
	PedidoCompletacion TipoPedido = "COMPLETACION"
	PedidoReferente    TipoPedido = "REFERENTE"
	PedidoReposicion   TipoPedido = "REPOSICION"
	PedidoBodega       TipoPedido = "BODEGA"
)

// TipoDocumento del cliente. El IVA aplica solo a persona natural ("P");
// regimen comun ("R", NIT) factura sin IVA. Regla de negocio, no de redondeo.
type TipoDocumento string

const (
	DocPersonaNatural TipoDocumento = "P"
	DocRegimenComun   TipoDocumento = "R"
)

// RegistroPrecio es la foto de solo lectura de la configuracion de precios de
// un producto o adicion, tal como la entrega el catalogo. El nucleo deriva
// valores de ella pero jamas la muta. Los campos opcionales usan NullDecimal:
// ausente (Valid=false) es distinto de cero.
type RegistroPrecio struct {
	// Precios por tramo de cantidad (mercado domestico):
	// tramo 1: cantidad <= 499, tramo 2: 500-1000, tramo 3: > 1000.
	PrecioTramo1 decimal.NullDecimal
	PrecioTramo2 decimal.NullDecimal
	PrecioTramo3 decimal.NullDecimal

	// Precios fijos por clasificacion, independientes de la cantidad.
	PrecioMayorista decimal.NullDecimal
	PrecioColanta   decimal.NullDecimal
	PrecioViomar    decimal.NullDecimal

	// Precio plano en moneda extranjera.
	PrecioUSD decimal.NullDecimal

	// EsEditable marca el registro como editable para AUTORIZADO (la UI
	// habilita el campo de precio manual).
	EsEditable bool
}
