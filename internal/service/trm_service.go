package service

import (
	"context"
	"time"

	"viotex/internal/config"
	"viotex/internal/infra"
	"viotex/internal/pricing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const trmCacheKey = "trm:actual"

// RateFetcher obtiene la TRM del proveedor externo. Satisfecho por
// *infra.TRMClient; las pruebas inyectan un stub.
type RateFetcher interface {
	Obtener(ctx context.Context) (decimal.Decimal, error)
}

// TRMService entrega la tasa COP/USD con cache acotado en Redis y un circuit
// breaker frente al proveedor. La tasa cacheada expira sola (TTL): una tasa
// vieja jamas se sirve como si fuera actual, y sin tasa la conversion falla
// con ErrTRMNoDisponible en lugar de degradar a cero.
type TRMService interface {
	// Obtener devuelve la tasa vigente y su fuente ("cache" | "api").
	Obtener(ctx context.Context) (decimal.Decimal, string, error)
	// Refresh fuerza una consulta al proveedor y recalienta el cache.
	Refresh(ctx context.Context) error
	// CBState expone el estado del circuit breaker para el health check.
	CBState() string
}

type trmService struct {
	client RateFetcher
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
	ttl    time.Duration
}

func NewTRMService(client RateFetcher, cb *infra.CircuitBreaker, rdb *redis.Client, cfg *config.Config) TRMService {
	ttl := cfg.TRMCacheTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &trmService{client: client, cb: cb, rdb: rdb, ttl: ttl}
}

func (s *trmService) Obtener(ctx context.Context) (decimal.Decimal, string, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, trmCacheKey).Result(); err == nil {
			if tasa, derr := decimal.NewFromString(cached); derr == nil && tasa.IsPositive() {
				return tasa, "cache", nil
			}
		}
	}

	tasa, err := s.fetch(ctx)
	if err != nil {
		return decimal.Zero, "", pricing.ErrTRMNoDisponible
	}
	return tasa, "api", nil
}

func (s *trmService) Refresh(ctx context.Context) error {
	_, err := s.fetch(ctx)
	return err
}

// fetch consulta al proveedor a traves del circuit breaker y, si responde,
// recalienta el cache con el TTL acotado.
func (s *trmService) fetch(ctx context.Context) (decimal.Decimal, error) {
	var tasa decimal.Decimal
	err := s.cb.Execute(func() error {
		t, ferr := s.client.Obtener(ctx)
		if ferr != nil {
			return ferr
		}
		tasa = t
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("trm: fallo obteniendo tasa del proveedor")
		return decimal.Zero, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, trmCacheKey, tasa.String(), s.ttl).Err(); err != nil {
			log.Warn().Err(err).Msg("trm: no se pudo escribir el cache")
		}
	}
	return tasa, nil
}

func (s *trmService) CBState() string {
	return s.cb.State().String()
}
