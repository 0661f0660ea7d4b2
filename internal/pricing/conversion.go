package pricing

import "github.com/shopspring/decimal"

// recargoExterior es el recargo fijo del 19% que se aplica al precio base en
// COP antes de convertir a moneda extranjera. Cubre manejo internacional y es
// independiente del IVA.
var recargoExterior = decimal.NewFromFloat(0.19)

// Conversion es el resultado de convertir un monto base a moneda extranjera.
// TasaUsada viaja junto al monto para que el llamador la persista en auditoria.
type Conversion struct {
	Monto     decimal.Decimal
	TasaUsada decimal.Decimal
}

// ConvertirAExterior aplica el recargo del 19% al monto en COP y lo convierte
// a USD dividiendo por la TRM (pesos por dolar). Pura dada la tasa: la
// obtencion de la TRM vive en el servicio, no aqui.
//
// Ej.: 100000 COP -> 119000 ajustado -> TRM 4000 -> 29.75 USD.
func ConvertirAExterior(montoCOP, trm decimal.Decimal) (Conversion, error) {
	if !trm.IsPositive() {
		return Conversion{}, ErrTRMNoDisponible
	}
	ajustado := montoCOP.Add(montoCOP.Mul(recargoExterior))
	return Conversion{
		Monto:     ajustado.Div(trm),
		TasaUsada: trm,
	}, nil
}
