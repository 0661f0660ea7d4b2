package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"viotex/internal/config"
	"viotex/internal/infra"
	"viotex/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	tasa     decimal.Decimal
	err      error
	llamadas int
}

func (s *stubFetcher) Obtener(context.Context) (decimal.Decimal, error) {
	s.llamadas++
	return s.tasa, s.err
}

func newTRMFixture(fetcher *stubFetcher) (TRMService, *infra.CircuitBreaker) {
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		OpenTimeout:      time.Minute,
	})
	// Sin Redis el servicio consulta directo; el cache es una optimizacion.
	svc := NewTRMService(fetcher, cb, nil, &config.Config{TRMCacheTTL: time.Hour})
	return svc, cb
}

func TestTRMService_ObtenerDesdeProveedor(t *testing.T) {
	fetcher := &stubFetcher{tasa: decimal.RequireFromString("4050.75")}
	svc, _ := newTRMFixture(fetcher)

	tasa, fuente, err := svc.Obtener(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4050.75", tasa.String())
	assert.Equal(t, "api", fuente)
}

func TestTRMService_FallaDelProveedorSeTraduceANoDisponible(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("timeout")}
	svc, _ := newTRMFixture(fetcher)

	_, _, err := svc.Obtener(context.Background())
	require.ErrorIs(t, err, pricing.ErrTRMNoDisponible)
}

func TestTRMService_CircuitoAbiertoNoGolpeaAlProveedor(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("timeout")}
	svc, cb := newTRMFixture(fetcher)

	_, _, _ = svc.Obtener(context.Background())
	_, _, _ = svc.Obtener(context.Background())
	require.Equal(t, infra.CBOpen, cb.State())

	llamadasAntes := fetcher.llamadas
	_, _, err := svc.Obtener(context.Background())
	require.ErrorIs(t, err, pricing.ErrTRMNoDisponible)
	assert.Equal(t, llamadasAntes, fetcher.llamadas, "fast-fail sin llamada al proveedor")
	assert.Equal(t, "open", svc.CBState())
}

func TestTRMService_RefreshPropagaElError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("timeout")}
	svc, _ := newTRMFixture(fetcher)
	assert.Error(t, svc.Refresh(context.Background()))

	fetcher.err = nil
	fetcher.tasa = decimal.RequireFromString("4000")
	assert.NoError(t, svc.Refresh(context.Background()))
}
