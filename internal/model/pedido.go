package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pedido nace de una cotizacion vigente. El estado vive en los items, no en el
// pedido: cada item avanza por la maquina de estados de forma independiente.
type Pedido struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero       int        `gorm:"uniqueIndex;not null"`
	CotizacionID *uuid.UUID `gorm:"type:uuid;index"`
	ClienteID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	UsuarioID    uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Cliente *Cliente     `gorm:"foreignKey:ClienteID"`
	Items   []PedidoItem `gorm:"foreignKey:PedidoID"`
}

// PedidoItem es la unidad que recorre el flujo de produccion.
// Estado se muta UNICAMENTE a traves del workflow (internal/workflow) y el
// repositorio lo escribe con chequeo optimista sobre el estado anterior.
type PedidoItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID  uuid.UUID `gorm:"type:uuid;not null"`
	Descripcion string    `gorm:"not null"`

	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TipoPedido     string          `gorm:"type:varchar(15);not null;default:'NORMAL'"`

	Estado    string `gorm:"type:varchar(25);index;not null;default:'PENDIENTE'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HistorialEstado registra cada transicion aplicada a un item, con el rol y el
// usuario que la ejecuto. Inmutable: solo inserts.
type HistorialEstado struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoItemID   uuid.UUID `gorm:"type:uuid;index;not null"`
	EstadoAnterior string    `gorm:"type:varchar(25);not null"`
	EstadoNuevo    string    `gorm:"type:varchar(25);not null"`
	Rol            string    `gorm:"type:varchar(20);not null"`
	UsuarioID      uuid.UUID `gorm:"type:uuid;not null"`
	Motivo         *string
	CreatedAt      time.Time
}
