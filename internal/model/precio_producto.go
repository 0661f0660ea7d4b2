package model

import (
	"time"

	"viotex/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PrecioProducto es la configuracion de precios de un producto o adicion del
// catalogo. El nucleo de pricing la lee como foto inmutable (ver Registro);
// solo la administracion de catalogo la edita.
//
// Los precios opcionales usan NullDecimal: NULL en la base significa "sin
// precio definido", que no es lo mismo que precio cero.
type PrecioProducto struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Referencia no es unica a secas: puede haber versiones historicas
	// inactivas. El indice parcial uni_precio_referencia_activo garantiza
	// una sola version activa.
	Referencia string `gorm:"index;not null"`
	Nombre     string    `gorm:"index;not null"`
	// EsAdicion distingue adiciones (bordado, estampado, marquilla) de
	// productos principales.
	EsAdicion bool `gorm:"not null;default:false"`

	// Tramos domesticos por cantidad: <=499, 500-1000, >1000.
	PrecioTramo1 decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	PrecioTramo2 decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	PrecioTramo3 decimal.NullDecimal `gorm:"type:decimal(12,2)"`

	// Precios fijos por clasificacion de cliente.
	PrecioMayorista decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	PrecioColanta   decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	PrecioViomar    decimal.NullDecimal `gorm:"type:decimal(12,2)"`

	// Precio plano en dolares.
	PrecioUSD decimal.NullDecimal `gorm:"type:decimal(10,2)"`

	// Ventana de vigencia opcional. El repositorio filtra a registros
	// vigentes; el nucleo de pricing no interpreta fechas.
	VigenciaInicio *time.Time
	VigenciaFin    *time.Time

	// EsEditable habilita el precio manual para clientes AUTORIZADO.
	EsEditable bool `gorm:"not null;default:false"`
	Activo     bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName evita el plural ingles de GORM ("precio_productos").
func (PrecioProducto) TableName() string { return "precios_productos" }

// Registro devuelve la foto de solo lectura que consume el resolver.
func (p *PrecioProducto) Registro() pricing.RegistroPrecio {
	return pricing.RegistroPrecio{
		PrecioTramo1:    p.PrecioTramo1,
		PrecioTramo2:    p.PrecioTramo2,
		PrecioTramo3:    p.PrecioTramo3,
		PrecioMayorista: p.PrecioMayorista,
		PrecioColanta:   p.PrecioColanta,
		PrecioViomar:    p.PrecioViomar,
		PrecioUSD:       p.PrecioUSD,
		EsEditable:      p.EsEditable,
	}
}

// Vigente reporta si el registro esta activo y dentro de su ventana de
// validez en el instante dado.
func (p *PrecioProducto) Vigente(en time.Time) bool {
	if !p.Activo {
		return false
	}
	if p.VigenciaInicio != nil && en.Before(*p.VigenciaInicio) {
		return false
	}
	if p.VigenciaFin != nil && en.After(*p.VigenciaFin) {
		return false
	}
	return true
}
