package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcularLinea_SinDescuentoNiAdiciones(t *testing.T) {
	r, err := CalcularLinea(Linea{Cantidad: 10, PrecioUnitario: d("45000")})
	require.NoError(t, err)
	assert.True(t, d("450000").Equal(r.SubtotalBruto))
	assert.True(t, r.Descuento.IsZero())
	assert.True(t, d("450000").Equal(r.TotalLinea))
	assert.True(t, r.TotalAdiciones.IsZero())
	assert.True(t, d("450000").Equal(r.TotalGeneral))
	assert.False(t, r.Incompleta)
}

func TestCalcularLinea_ConDescuento(t *testing.T) {
	r, err := CalcularLinea(Linea{Cantidad: 100, PrecioUnitario: d("50000"), DescuentoPct: d("10")})
	require.NoError(t, err)
	assert.True(t, d("5000000").Equal(r.SubtotalBruto))
	assert.True(t, d("500000").Equal(r.Descuento))
	assert.True(t, d("4500000").Equal(r.TotalLinea))
}

func TestCalcularLinea_AdicionesNoRecibenDescuento(t *testing.T) {
	r, err := CalcularLinea(Linea{
		Cantidad:       10,
		PrecioUnitario: d("50000"),
		DescuentoPct:   d("50"),
		Adiciones: []Adicion{
			{Cantidad: 10, PrecioUnitario: nd("3000")},
			{Cantidad: 5, PrecioUnitario: nd("2000")},
		},
	})
	require.NoError(t, err)
	// Linea: 500000 - 250000 = 250000. Adiciones a precio pleno: 30000 + 10000.
	assert.True(t, d("250000").Equal(r.TotalLinea))
	assert.True(t, d("40000").Equal(r.TotalAdiciones))
	assert.True(t, d("290000").Equal(r.TotalGeneral))
}

func TestCalcularLinea_InvarianteTotalGeneral(t *testing.T) {
	casos := []Linea{
		{Cantidad: 1, PrecioUnitario: d("0.01")},
		{Cantidad: 999, PrecioUnitario: d("12345.67"), DescuentoPct: d("33.33")},
		{Cantidad: 3, PrecioUnitario: d("100"), DescuentoPct: d("100"),
			Adiciones: []Adicion{{Cantidad: 3, PrecioUnitario: nd("7.77")}}},
	}
	for _, l := range casos {
		r, err := CalcularLinea(l)
		require.NoError(t, err)
		assert.True(t, r.TotalGeneral.Equal(r.TotalLinea.Add(r.TotalAdiciones)))
		assert.True(t, r.TotalLinea.LessThanOrEqual(r.SubtotalBruto))
	}
}

func TestCalcularLinea_AdicionSinPrecioMarcaIncompleta(t *testing.T) {
	r, err := CalcularLinea(Linea{
		Cantidad:       10,
		PrecioUnitario: d("50000"),
		Adiciones: []Adicion{
			{Cantidad: 10}, // sin precio resuelto
			{Cantidad: 10, PrecioUnitario: nd("1000")},
		},
	})
	require.NoError(t, err)
	assert.True(t, r.Incompleta)
	// La adicion sin precio aporta 0, no bloquea el calculo.
	assert.True(t, d("10000").Equal(r.TotalAdiciones))
}

func TestCalcularLinea_DescuentoFueraDeRango(t *testing.T) {
	_, err := CalcularLinea(Linea{Cantidad: 1, PrecioUnitario: d("100"), DescuentoPct: d("-1")})
	assert.ErrorIs(t, err, ErrDescuentoInvalido)

	_, err = CalcularLinea(Linea{Cantidad: 1, PrecioUnitario: d("100"), DescuentoPct: d("100.01")})
	assert.ErrorIs(t, err, ErrDescuentoInvalido)
}

func TestCalcularLinea_CantidadInvalida(t *testing.T) {
	_, err := CalcularLinea(Linea{Cantidad: 0, PrecioUnitario: d("100")})
	assert.ErrorIs(t, err, ErrCantidadInvalida)

	_, err = CalcularLinea(Linea{Cantidad: 1, PrecioUnitario: d("100"),
		Adiciones: []Adicion{{Cantidad: 0, PrecioUnitario: nd("10")}}})
	assert.ErrorIs(t, err, ErrCantidadInvalida)
}

// ── Totales ──────────────────────────────────────────────────────────────────

func lineasDeSubtotal(subtotales ...string) []ResultadoLinea {
	out := make([]ResultadoLinea, len(subtotales))
	for i, s := range subtotales {
		out[i] = ResultadoLinea{TotalGeneral: d(s)}
	}
	return out
}

func TestCalcularTotales_EscenarioPersonaNatural(t *testing.T) {
	// Subtotal 1'000.000, doc 'P', envio 20.000, seguro deshabilitado.
	tot := CalcularTotales(
		lineasDeSubtotal("600000", "400000"),
		Cargo{Habilitado: true, Valor: d("20000")},
		Cargo{Habilitado: false, Valor: d("99999")},
		DocPersonaNatural,
	)
	assert.True(t, d("1000000").Equal(tot.Subtotal))
	assert.True(t, d("190000").Equal(tot.IVA))
	assert.True(t, d("20000").Equal(tot.Envio))
	assert.True(t, tot.Seguro.IsZero())
	assert.True(t, d("1210000").Equal(tot.Total))
	assert.True(t, d("605000").Equal(tot.Anticipo))
}

func TestCalcularTotales_RegimenComunSinIVA(t *testing.T) {
	tot := CalcularTotales(lineasDeSubtotal("1000000"), Cargo{}, Cargo{}, DocRegimenComun)
	assert.True(t, tot.IVA.IsZero())
	assert.True(t, d("1000000").Equal(tot.Total))
}

func TestCalcularTotales_AnticipoEsMitadExacta(t *testing.T) {
	casos := [][]string{
		{"1"},
		{"333333.33"},
		{"100", "200", "300.55"},
	}
	for _, subtotales := range casos {
		tot := CalcularTotales(lineasDeSubtotal(subtotales...), Cargo{}, Cargo{}, DocPersonaNatural)
		assert.True(t, tot.Anticipo.Equal(tot.Total.Mul(decimal.NewFromFloat(0.5))))
	}
}

func TestCalcularTotales_SinLineas(t *testing.T) {
	tot := CalcularTotales(nil, Cargo{}, Cargo{}, DocPersonaNatural)
	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.Total.IsZero())
	assert.True(t, tot.Anticipo.IsZero())
}

func TestCalcularTotales_Determinista(t *testing.T) {
	// Recalcular sobre la misma lista de lineas produce salida identica.
	lineas := lineasDeSubtotal("123456.78", "876543.21")
	envio := Cargo{Habilitado: true, Valor: d("15000")}
	a := CalcularTotales(lineas, envio, Cargo{}, DocPersonaNatural)
	b := CalcularTotales(lineas, envio, Cargo{}, DocPersonaNatural)
	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, a.IVA.Equal(b.IVA))
	assert.True(t, a.Total.Equal(b.Total))
	assert.True(t, a.Anticipo.Equal(b.Anticipo))
}

func TestRedondear(t *testing.T) {
	assert.Equal(t, "29.75", Redondear(d("29.745")).StringFixed(2))
	assert.Equal(t, "10.00", Redondear(d("10")).StringFixed(2))
}
