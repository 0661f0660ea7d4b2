package pricing

import "github.com/shopspring/decimal"

var (
	cien = decimal.NewFromInt(100)

	// tasaIVA: IVA del 19%, aplica solo a documentos de persona natural.
	tasaIVA = decimal.NewFromFloat(0.19)

	// fraccionAnticipo: el anticipo es siempre el 50% del gran total.
	// Politica de negocio fija, no configurable por cotizacion.
	fraccionAnticipo = decimal.NewFromFloat(0.5)
)

// Adicion es una linea anidada (bordado, estampado, marquilla...) dentro de
// una linea de cotizacion. Su cantidad suele reflejar la del padre pero puede
// divergir. Las adiciones NO reciben el descuento de la linea padre.
type Adicion struct {
	Cantidad int
	// PrecioUnitario sin resolver (Valid=false) aporta 0 al total de
	// adiciones y marca la linea como incompleta.
	PrecioUnitario decimal.NullDecimal
}

// Linea es un producto solicitado dentro de una cotizacion, ya con su precio
// unitario resuelto (o ingresado manualmente para AUTORIZADO).
type Linea struct {
	Cantidad       int
	PrecioUnitario decimal.Decimal
	DescuentoPct   decimal.Decimal // 0..100
	Adiciones      []Adicion
}

// ResultadoLinea descompone el calculo de una linea.
// Incompleta=true indica que alguna adicion quedo sin precio; este paquete no
// lo convierte en error — el llamador decide bloquear el guardado.
type ResultadoLinea struct {
	SubtotalBruto  decimal.Decimal // cantidad x precio unitario
	Descuento      decimal.Decimal
	TotalLinea     decimal.Decimal // subtotal bruto - descuento
	TotalAdiciones decimal.Decimal
	TotalGeneral   decimal.Decimal // total linea + total adiciones
	Incompleta     bool
}

// CalcularLinea computa los totales de una linea.
// Invariante: TotalGeneral = TotalLinea + TotalAdiciones, exacto en decimal.
func CalcularLinea(l Linea) (ResultadoLinea, error) {
	if l.Cantidad <= 0 {
		return ResultadoLinea{}, ErrCantidadInvalida
	}
	if l.DescuentoPct.IsNegative() || l.DescuentoPct.GreaterThan(cien) {
		return ResultadoLinea{}, ErrDescuentoInvalido
	}

	subtotal := l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
	descuento := subtotal.Mul(l.DescuentoPct.Div(cien))
	totalLinea := subtotal.Sub(descuento)

	adiciones := decimal.Zero
	incompleta := false
	for _, a := range l.Adiciones {
		if a.Cantidad <= 0 {
			return ResultadoLinea{}, ErrCantidadInvalida
		}
		if !a.PrecioUnitario.Valid {
			incompleta = true
			continue
		}
		adiciones = adiciones.Add(a.PrecioUnitario.Decimal.Mul(decimal.NewFromInt(int64(a.Cantidad))))
	}

	return ResultadoLinea{
		SubtotalBruto:  subtotal,
		Descuento:      descuento,
		TotalLinea:     totalLinea,
		TotalAdiciones: adiciones,
		TotalGeneral:   totalLinea.Add(adiciones),
		Incompleta:     incompleta,
	}, nil
}

// Cargo es un recargo opcional de la cotizacion (envio o seguro).
type Cargo struct {
	Habilitado bool
	Valor      decimal.Decimal
}

// Totales es el agregado derivado de una lista de lineas. Nunca se almacena
// como entrada autoritativa: siempre se recalcula de las lineas.
type Totales struct {
	Subtotal decimal.Decimal
	IVA      decimal.Decimal
	Envio    decimal.Decimal
	Seguro   decimal.Decimal
	Total    decimal.Decimal
	Anticipo decimal.Decimal
}

// CalcularTotales agrega los totales de linea en los totales de la cotizacion.
// El IVA (19%) aplica unicamente cuando el documento del cliente es de persona
// natural; ningun otro campo lo activa.
func CalcularTotales(lineas []ResultadoLinea, envio, seguro Cargo, doc TipoDocumento) Totales {
	subtotal := decimal.Zero
	for _, l := range lineas {
		subtotal = subtotal.Add(l.TotalGeneral)
	}

	iva := decimal.Zero
	if doc == DocPersonaNatural {
		iva = subtotal.Mul(tasaIVA)
	}

	valorEnvio := decimal.Zero
	if envio.Habilitado {
		valorEnvio = envio.Valor
	}
	valorSeguro := decimal.Zero
	if seguro.Habilitado {
		valorSeguro = seguro.Valor
	}

	total := subtotal.Add(iva).Add(valorEnvio).Add(valorSeguro)

	return Totales{
		Subtotal: subtotal,
		IVA:      iva,
		Envio:    valorEnvio,
		Seguro:   valorSeguro,
		Total:    total,
		Anticipo: total.Mul(fraccionAnticipo),
	}
}

// Redondear lleva un monto a 2 decimales. Solo para presentacion: los calculos
// intermedios nunca redondean.
func Redondear(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
