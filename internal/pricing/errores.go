package pricing

import "errors"

// Taxonomia de fallas del nucleo. Todas son recuperables por el llamador:
// corregir la entrada, reintentar la consulta de tasa, o bloquear el guardado.
var (
	// ErrPrecioNoResuelto: ningun paso del resolver pudo determinar un precio.
	// Distinto de precio cero ("gratis") — debe bloquear el guardado aguas abajo.
	ErrPrecioNoResuelto = errors.New("precio no resuelto para el producto")

	// ErrTRMNoDisponible: no se obtuvo tasa de cambio. El llamador no debe
	// recurrir a una tasa vieja ni a cero.
	ErrTRMNoDisponible = errors.New("TRM no disponible")

	ErrCantidadInvalida  = errors.New("la cantidad debe ser mayor a cero")
	ErrDescuentoInvalido = errors.New("el descuento debe estar entre 0 y 100")
)
