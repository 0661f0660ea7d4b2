package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedNext_TerminalesVaciosParaTodoRol(t *testing.T) {
	for _, rol := range Roles {
		assert.Empty(t, AllowedNext(rol, EstadoCompletado), "rol %s", rol)
		assert.Empty(t, AllowedNext(rol, EstadoCancelado), "rol %s", rol)
	}
	// Tambien para un rol desconocido.
	assert.Empty(t, AllowedNext(Rol("CONTABILIDAD"), EstadoCompletado))
}

func TestAllowedNext_RolDesconocidoNiegaPorDefecto(t *testing.T) {
	for _, e := range Estados {
		assert.Empty(t, AllowedNext(Rol("practicante"), e), "estado %s", e)
		assert.Empty(t, AllowedNext(Rol(""), e), "estado %s", e)
	}
}

func TestIntentar_MismoEstadoEsNoOpAceptado(t *testing.T) {
	for _, rol := range Roles {
		for _, e := range Estados {
			assert.NoError(t, Intentar(rol, e, e), "rol %s estado %s", rol, e)
		}
	}
	// Idempotencia aplica incluso a roles desconocidos.
	assert.NoError(t, Intentar(Rol("nadie"), EstadoEnMontaje, EstadoEnMontaje))
}

func TestIntentar_ConfeccionAvanzaUnPaso(t *testing.T) {
	require.NoError(t, Intentar(RolConfeccion, EstadoEnMontaje, EstadoEnImpresion))
	require.NoError(t, Intentar(RolConfeccion, EstadoEnCorte, EstadoEnMontaje))
	require.NoError(t, Intentar(RolConfeccion, EstadoEnConfeccion, EstadoEnControlCalidad))
}

func TestIntentar_ConfeccionNoPuedeSaltarAEnviado(t *testing.T) {
	err := Intentar(RolConfeccion, EstadoEnMontaje, EstadoEnviado)
	require.Error(t, err)

	var tpErr *TransicionProhibidaError
	require.True(t, errors.As(err, &tpErr))
	assert.Equal(t, RolConfeccion, tpErr.Rol)
	assert.Equal(t, EstadoEnMontaje, tpErr.Actual)
	assert.Equal(t, EstadoEnviado, tpErr.Solicitado)
	// El error explica que movimiento si es legal.
	assert.Equal(t, []Estado{EstadoEnImpresion}, tpErr.Permitidos)
}

func TestIntentar_SubRutaDeCambioSoloAdministrador(t *testing.T) {
	// Entrar a la sub-ruta de cambio.
	require.NoError(t, Intentar(RolAdministrador, EstadoEnConfeccion, EstadoEnRevisionCambio))
	// Resolverla en ambos sentidos.
	require.NoError(t, Intentar(RolAdministrador, EstadoEnRevisionCambio, EstadoAprobadoCambio))
	require.NoError(t, Intentar(RolAdministrador, EstadoEnRevisionCambio, EstadoRechazadoCambio))
	// Salidas: retrabajo en diseno o retomar confeccion.
	require.NoError(t, Intentar(RolAdministrador, EstadoAprobadoCambio, EstadoEnDiseno))
	require.NoError(t, Intentar(RolAdministrador, EstadoRechazadoCambio, EstadoEnConfeccion))

	// Ningun otro rol entra ni sale de la sub-ruta.
	for _, rol := range Roles {
		if rol == RolAdministrador {
			continue
		}
		assert.Error(t, Intentar(rol, EstadoEnConfeccion, EstadoEnRevisionCambio), "rol %s", rol)
		assert.Error(t, Intentar(rol, EstadoEnRevisionCambio, EstadoAprobadoCambio), "rol %s", rol)
		assert.Error(t, Intentar(rol, EstadoAprobadoCambio, EstadoEnDiseno), "rol %s", rol)
	}
}

func TestIntentar_SoloAdministradorCancela(t *testing.T) {
	require.NoError(t, Intentar(RolAdministrador, EstadoPendiente, EstadoCancelado))
	require.NoError(t, Intentar(RolAdministrador, EstadoEnviado, EstadoCancelado))

	for _, rol := range Roles {
		if rol == RolAdministrador {
			continue
		}
		assert.Error(t, Intentar(rol, EstadoPendiente, EstadoCancelado), "rol %s", rol)
	}
}

func TestIntentar_DesdeTerminalProhibidoParaTodoRol(t *testing.T) {
	for _, rol := range Roles {
		for _, terminal := range []Estado{EstadoCompletado, EstadoCancelado} {
			err := Intentar(rol, terminal, EstadoPendiente)
			assert.Error(t, err, "rol %s desde %s", rol, terminal)
		}
	}
}

func TestIntentar_FlujoCompletoDePrincipioAFin(t *testing.T) {
	pasos := []struct {
		rol   Rol
		desde Estado
		hacia Estado
	}{
		{RolVendedor, EstadoPendiente, EstadoEnRevision},
		{RolVendedor, EstadoEnRevision, EstadoAprobado},
		{RolDiseno, EstadoAprobado, EstadoEnDiseno},
		{RolDiseno, EstadoEnDiseno, EstadoEnCorte},
		{RolConfeccion, EstadoEnCorte, EstadoEnMontaje},
		{RolConfeccion, EstadoEnMontaje, EstadoEnImpresion},
		{RolConfeccion, EstadoEnImpresion, EstadoEnSublimacion},
		{RolConfeccion, EstadoEnSublimacion, EstadoEnConfeccion},
		{RolConfeccion, EstadoEnConfeccion, EstadoEnControlCalidad},
		{RolEmpaque, EstadoEnControlCalidad, EstadoEnEmpaque},
		{RolEmpaque, EstadoEnEmpaque, EstadoEmpacado},
		{RolDespachos, EstadoEmpacado, EstadoEnviado},
		{RolDespachos, EstadoEnviado, EstadoEntregado},
		{RolVendedor, EstadoEntregado, EstadoCompletado},
	}
	for _, p := range pasos {
		require.NoError(t, Intentar(p.rol, p.desde, p.hacia), "%s: %s -> %s", p.rol, p.desde, p.hacia)
		// El administrador tambien puede ejecutar cada paso.
		require.NoError(t, Intentar(RolAdministrador, p.desde, p.hacia), "admin: %s -> %s", p.desde, p.hacia)
	}
}

func TestIntentar_RolNoAvanzaFueraDeSuCarril(t *testing.T) {
	// Vendedor no toca produccion; despachos no aprueba pedidos.
	assert.Error(t, Intentar(RolVendedor, EstadoEnCorte, EstadoEnMontaje))
	assert.Error(t, Intentar(RolDespachos, EstadoEnRevision, EstadoAprobado))
	assert.Error(t, Intentar(RolEmpaque, EstadoEmpacado, EstadoEnviado))
}

func TestTabla_NingunaTransicionApuntaFueraDelEnum(t *testing.T) {
	for rol, porEstado := range tablaTransiciones {
		for desde, hacia := range porEstado {
			assert.True(t, desde.EsValido(), "rol %s: estado origen %s", rol, desde)
			assert.False(t, desde.EsTerminal(), "rol %s: origen terminal %s", rol, desde)
			for _, h := range hacia {
				assert.True(t, h.EsValido(), "rol %s: %s -> %s", rol, desde, h)
			}
		}
	}
}
