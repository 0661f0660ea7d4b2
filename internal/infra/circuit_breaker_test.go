package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errProveedor = errors.New("proveedor caido")

func falla() error { return errProveedor }
func ok() error    { return nil }

func TestCircuitBreaker_AbreTrasFallasConsecutivas(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(falla), errProveedor)
	}
	assert.Equal(t, CBOpen, cb.State())

	// Abierto: fast-fail sin tocar al proveedor.
	assert.ErrorIs(t, cb.Execute(falla), ErrCircuitOpen)
}

func TestCircuitBreaker_ExitoEnCerradoReiniciaElConteo(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	require.Error(t, cb.Execute(falla))
	require.Error(t, cb.Execute(falla))
	require.NoError(t, cb.Execute(ok))
	require.Error(t, cb.Execute(falla))
	require.Error(t, cb.Execute(falla))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenCierraConExitos(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: time.Millisecond})

	require.Error(t, cb.Execute(falla))
	assert.Equal(t, CBOpen, cb.State())

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(ok))
	require.NoError(t, cb.Execute(ok))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenReabreConFalla(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: time.Millisecond})

	require.Error(t, cb.Execute(falla))
	time.Sleep(5 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.ErrorIs(t, cb.Execute(falla), errProveedor)
	assert.Equal(t, CBOpen, cb.State())
}
