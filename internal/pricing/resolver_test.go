package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func nd(v string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(v), Valid: true}
}

// registroTramos: tramo1=50000, tramo2=45000, tramo3=40000, sin precios fijos.
func registroTramos() RegistroPrecio {
	return RegistroPrecio{
		PrecioTramo1: nd("50000"),
		PrecioTramo2: nd("45000"),
		PrecioTramo3: nd("40000"),
	}
}

func TestResolverPrecio_TramosPorCantidad(t *testing.T) {
	reg := registroTramos()

	casos := []struct {
		cantidad int
		esperado string
	}{
		{1, "50000"},
		{499, "50000"},
		{500, "45000"},
		{600, "45000"},
		{1000, "45000"},
		{1001, "40000"},
		{1200, "40000"},
	}
	for _, c := range casos {
		p, err := ResolverPrecio(reg, c.cantidad, MonedaCOP, ClasifViomar, "")
		require.NoError(t, err, "cantidad %d", c.cantidad)
		assert.True(t, d(c.esperado).Equal(p), "cantidad %d: esperado %s, obtenido %s", c.cantidad, c.esperado, p)
	}
}

func TestResolverPrecio_CantidadInvalida(t *testing.T) {
	_, err := ResolverPrecio(registroTramos(), 0, MonedaCOP, ClasifViomar, "")
	assert.ErrorIs(t, err, ErrCantidadInvalida)

	_, err = ResolverPrecio(registroTramos(), -5, MonedaCOP, ClasifViomar, "")
	assert.ErrorIs(t, err, ErrCantidadInvalida)
}

func TestResolverPrecio_CaidaATramoInferior(t *testing.T) {
	// Tramo 3 ausente: cantidad > 1000 cae al tramo 2.
	reg := RegistroPrecio{PrecioTramo1: nd("50000"), PrecioTramo2: nd("45000")}
	p, err := ResolverPrecio(reg, 1500, MonedaCOP, ClasifViomar, "")
	require.NoError(t, err)
	assert.True(t, d("45000").Equal(p))

	// Solo tramo 1 definido: cualquier cantidad cae al tramo 1.
	reg = RegistroPrecio{PrecioTramo1: nd("50000")}
	p, err = ResolverPrecio(reg, 5000, MonedaCOP, ClasifViomar, "")
	require.NoError(t, err)
	assert.True(t, d("50000").Equal(p))
}

func TestResolverPrecio_NuncaCaeATramoSuperior(t *testing.T) {
	// Tramo 1 ausente y cantidad de tramo 1: no debe tomar tramo 2 ni 3.
	reg := RegistroPrecio{PrecioTramo2: nd("45000"), PrecioTramo3: nd("40000")}
	_, err := ResolverPrecio(reg, 100, MonedaCOP, ClasifViomar, "")
	assert.ErrorIs(t, err, ErrPrecioNoResuelto)
}

func TestResolverPrecio_SinPrecios(t *testing.T) {
	_, err := ResolverPrecio(RegistroPrecio{}, 100, MonedaCOP, ClasifViomar, "")
	assert.ErrorIs(t, err, ErrPrecioNoResuelto)
}

func TestResolverPrecio_MonedaExtranjeraEsPlana(t *testing.T) {
	reg := registroTramos()
	reg.PrecioUSD = nd("12.50")
	reg.PrecioMayorista = nd("30000")

	// USD ignora clasificacion y cantidad.
	for _, cantidad := range []int{1, 600, 5000} {
		for _, clasif := range []Clasificacion{ClasifAutorizado, ClasifMayorista, ClasifViomar, ClasifColanta} {
			p, err := ResolverPrecio(reg, cantidad, MonedaUSD, clasif, "99999")
			require.NoError(t, err)
			assert.True(t, d("12.50").Equal(p))
		}
	}
}

func TestResolverPrecio_MonedaExtranjeraSinPrecioUSD(t *testing.T) {
	_, err := ResolverPrecio(registroTramos(), 100, MonedaUSD, ClasifMayorista, "")
	assert.ErrorIs(t, err, ErrPrecioNoResuelto)
}

func TestResolverPrecio_FijosPorClasificacion(t *testing.T) {
	reg := registroTramos()
	reg.PrecioMayorista = nd("38000")
	reg.PrecioColanta = nd("36000")

	p, err := ResolverPrecio(reg, 600, MonedaCOP, ClasifMayorista, "")
	require.NoError(t, err)
	assert.True(t, d("38000").Equal(p), "mayorista ignora tramos")

	p, err = ResolverPrecio(reg, 600, MonedaCOP, ClasifColanta, "")
	require.NoError(t, err)
	assert.True(t, d("36000").Equal(p))
}

func TestResolverPrecio_FijoAusenteNoCaeATramos(t *testing.T) {
	// MAYORISTA y COLANTA sin precio fijo no resuelven, aunque existan tramos.
	reg := registroTramos()
	_, err := ResolverPrecio(reg, 600, MonedaCOP, ClasifMayorista, "")
	assert.ErrorIs(t, err, ErrPrecioNoResuelto)

	_, err = ResolverPrecio(reg, 600, MonedaCOP, ClasifColanta, "")
	assert.ErrorIs(t, err, ErrPrecioNoResuelto)
}

func TestResolverPrecio_ViomarFijoGanaSobreTramos(t *testing.T) {
	reg := registroTramos()
	reg.PrecioViomar = nd("42000")
	p, err := ResolverPrecio(reg, 600, MonedaCOP, ClasifViomar, "")
	require.NoError(t, err)
	assert.True(t, d("42000").Equal(p))
}

func TestResolverPrecio_ViomarSinFijoUsaTramos(t *testing.T) {
	// Escenario de referencia: tramos 50000/45000/40000, VIOMAR sin fijo.
	reg := registroTramos()

	p, err := ResolverPrecio(reg, 600, MonedaCOP, ClasifViomar, "")
	require.NoError(t, err)
	assert.True(t, d("45000").Equal(p))

	p, err = ResolverPrecio(reg, 1200, MonedaCOP, ClasifViomar, "")
	require.NoError(t, err)
	assert.True(t, d("40000").Equal(p))
}

func TestResolverPrecio_AutorizadoManualGana(t *testing.T) {
	reg := registroTramos()
	p, err := ResolverPrecio(reg, 600, MonedaCOP, ClasifAutorizado, "47500.50")
	require.NoError(t, err)
	assert.True(t, d("47500.50").Equal(p))
}

func TestResolverPrecio_AutorizadoSinManualSugiereTramo(t *testing.T) {
	reg := registroTramos()
	p, err := ResolverPrecio(reg, 600, MonedaCOP, ClasifAutorizado, "")
	require.NoError(t, err)
	assert.True(t, d("45000").Equal(p))
}

func TestResolverPrecio_AutorizadoManualNoNumericoCaeATramo(t *testing.T) {
	reg := registroTramos()
	p, err := ResolverPrecio(reg, 100, MonedaCOP, ClasifAutorizado, "abc")
	require.NoError(t, err)
	assert.True(t, d("50000").Equal(p))
}

func TestResolverPrecio_ManualIgnoradoParaOtrasClasificaciones(t *testing.T) {
	reg := registroTramos()
	reg.PrecioMayorista = nd("38000")

	// El precio manual solo pesa para AUTORIZADO.
	p, err := ResolverPrecio(reg, 600, MonedaCOP, ClasifMayorista, "1")
	require.NoError(t, err)
	assert.True(t, d("38000").Equal(p))

	p, err = ResolverPrecio(reg, 600, MonedaCOP, ClasifViomar, "1")
	require.NoError(t, err)
	assert.True(t, d("45000").Equal(p))
}

func TestTramoParaCantidad_Monotono(t *testing.T) {
	// Aumentar la cantidad nunca disminuye el indice del tramo.
	anterior := 0
	for _, q := range []int{1, 10, 499, 500, 750, 1000, 1001, 2000, 100000} {
		idx := TramoParaCantidad(q)
		assert.GreaterOrEqual(t, idx, anterior, "cantidad %d", q)
		anterior = idx
	}
}
