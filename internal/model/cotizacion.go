package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cotizacion agrupa lineas cotizadas para un cliente. Los totales son
// derivados: siempre se recalculan desde las lineas con el nucleo de pricing
// y se persisten como foto para auditoria — nunca son entrada autoritativa.
type Cotizacion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero    int       `gorm:"uniqueIndex;not null"`
	ClienteID uuid.UUID `gorm:"type:uuid;index;not null"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null"`

	Moneda        string `gorm:"type:varchar(3);not null;default:'COP'"`
	TipoDocumento string `gorm:"type:varchar(1);not null"`

	Subtotal decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	IVA      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Envio    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Seguro   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Anticipo decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	// TRMUsada queda registrada cuando la cotizacion es en USD, para que la
	// auditoria pueda reproducir la conversion.
	TRMUsada decimal.NullDecimal `gorm:"type:decimal(10,4)"`

	Estado    string `gorm:"type:varchar(15);not null;default:'vigente'"` // vigente | anulada
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Cliente         `gorm:"foreignKey:ClienteID"`
	Lineas  []CotizacionLinea `gorm:"foreignKey:CotizacionID"`
}

// TableName evita el plural ingles de GORM ("cotizacions").
func (Cotizacion) TableName() string { return "cotizaciones" }

// CotizacionLinea es un producto cotizado, con su precio ya resuelto.
type CotizacionLinea struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionID uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID   uuid.UUID `gorm:"type:uuid;not null"`
	Descripcion  string    `gorm:"not null"`

	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DescuentoPct   decimal.Decimal `gorm:"type:decimal(5,2);not null"`

	// Contexto del pedido — metadato, no afecta la matematica.
	TipoPedido  string  `gorm:"type:varchar(15);not null;default:'NORMAL'"`
	Negociacion *string

	// Foto del calculo por linea.
	TotalLinea     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalAdiciones decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalGeneral   decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Adiciones []CotizacionAdicion `gorm:"foreignKey:LineaID"`
}

// CotizacionAdicion es una linea anidada (bordado, estampado...) dentro de una
// linea de cotizacion. No recibe el descuento de la linea padre.
type CotizacionAdicion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LineaID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID  uuid.UUID `gorm:"type:uuid;not null"`
	Descripcion string    `gorm:"not null"`

	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (CotizacionAdicion) TableName() string { return "cotizacion_adiciones" }
