package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre        string  `json:"nombre"         validate:"required,min=2,max=150"`
	Documento     string  `json:"documento"      validate:"required,min=5,max=20"`
	TipoDocumento string  `json:"tipo_documento" validate:"required,oneof=P R"`
	Clasificacion string  `json:"clasificacion"  validate:"required,oneof=AUTORIZADO MAYORISTA VIOMAR COLANTA"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Telefono      *string `json:"telefono"`
	Ciudad        *string `json:"ciudad"`
}

type ActualizarClienteRequest struct {
	Nombre        string  `json:"nombre"         validate:"omitempty,min=2,max=150"`
	TipoDocumento string  `json:"tipo_documento" validate:"omitempty,oneof=P R"`
	Clasificacion string  `json:"clasificacion"  validate:"omitempty,oneof=AUTORIZADO MAYORISTA VIOMAR COLANTA"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Telefono      *string `json:"telefono"`
	Ciudad        *string `json:"ciudad"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"nombre"`
	Documento     string  `json:"documento"`
	TipoDocumento string  `json:"tipo_documento"`
	Clasificacion string  `json:"clasificacion"`
	Email         *string `json:"email"`
	Telefono      *string `json:"telefono"`
	Ciudad        *string `json:"ciudad"`
	Activo        bool    `json:"activo"`
}
