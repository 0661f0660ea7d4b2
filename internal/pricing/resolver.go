package pricing

import "github.com/shopspring/decimal"

// ResolverPrecio selecciona el precio unitario aplicable a partir del registro
// de precios y el contexto del pedido. Funcion pura de sus argumentos.
//
// Precedencia:
//  1. Moneda USD: precio plano en moneda extranjera (sin tramos, sin clasificacion).
//  2. MAYORISTA / COLANTA: precio fijo de la clasificacion; si no existe, no
//     se resuelve (no caen al esquema por tramos).
//  3. VIOMAR: precio fijo si esta presente; si no, cae a tramos. Es la unica
//     clasificacion con precio fijo Y tabla de tramos.
//  4. AUTORIZADO: precioManual numerico no vacio gana; si no, el tramo actua
//     como sugerencia (la UI marca el campo como editable).
//  5. Resto: tramo por cantidad con caida al tramo inferior, nunca al superior.
//
// Devuelve ErrPrecioNoResuelto cuando ningun paso determina precio.
func ResolverPrecio(reg RegistroPrecio, cantidad int, moneda Moneda, clasif Clasificacion, precioManual string) (decimal.Decimal, error) {
	if cantidad <= 0 {
		return decimal.Zero, ErrCantidadInvalida
	}

	if moneda == MonedaUSD {
		if precioPresente(reg.PrecioUSD) {
			return reg.PrecioUSD.Decimal, nil
		}
		return decimal.Zero, ErrPrecioNoResuelto
	}

	switch clasif {
	case ClasifMayorista:
		if precioPresente(reg.PrecioMayorista) {
			return reg.PrecioMayorista.Decimal, nil
		}
		return decimal.Zero, ErrPrecioNoResuelto

	case ClasifColanta:
		if precioPresente(reg.PrecioColanta) {
			return reg.PrecioColanta.Decimal, nil
		}
		return decimal.Zero, ErrPrecioNoResuelto

	case ClasifViomar:
		if precioPresente(reg.PrecioViomar) {
			return reg.PrecioViomar.Decimal, nil
		}

	case ClasifAutorizado:
		if precioManual != "" {
			if p, err := decimal.NewFromString(precioManual); err == nil && !p.IsNegative() {
				return p, nil
			}
		}
	}

	return precioPorTramo(reg, cantidad)
}

// TramoParaCantidad devuelve el indice (1..3) del tramo que corresponde a la
// cantidad segun los cortes del dominio: <=499, 500-1000, >1000.
func TramoParaCantidad(cantidad int) int {
	switch {
	case cantidad <= 499:
		return 1
	case cantidad <= 1000:
		return 2
	default:
		return 3
	}
}

// precioPorTramo selecciona el precio del tramo; si el tramo elegido no tiene
// precio cae al inmediatamente inferior y finalmente al tramo 1.
func precioPorTramo(reg RegistroPrecio, cantidad int) (decimal.Decimal, error) {
	tramos := [3]decimal.NullDecimal{reg.PrecioTramo1, reg.PrecioTramo2, reg.PrecioTramo3}
	for i := TramoParaCantidad(cantidad); i >= 1; i-- {
		if precioPresente(tramos[i-1]) {
			return tramos[i-1].Decimal, nil
		}
	}
	return decimal.Zero, ErrPrecioNoResuelto
}

// precioPresente: un precio opcional cuenta como definido solo si existe y es
// positivo. Cero almacenado equivale a "sin precio" en el catalogo.
func precioPresente(p decimal.NullDecimal) bool {
	return p.Valid && p.Decimal.IsPositive()
}
