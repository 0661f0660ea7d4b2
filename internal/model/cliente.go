package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente de la operacion de confeccion.
// Clasificacion: AUTORIZADO | MAYORISTA | VIOMAR | COLANTA — decide la rama del
// resolver de precios. TipoDocumento: "P" (persona natural, cotiza con IVA) o
// "R" (regimen comun / NIT, sin IVA).
type Cliente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"index;not null"`
	Documento     string    `gorm:"uniqueIndex;not null"`
	TipoDocumento string    `gorm:"type:varchar(1);not null;default:'P'"`
	Clasificacion string    `gorm:"type:varchar(20);not null"`
	Email         *string
	Telefono      *string
	Ciudad        *string
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
