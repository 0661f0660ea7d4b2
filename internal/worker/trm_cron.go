package worker

// trm_cron.go
// Background goroutine that keeps the TRM cache warm. Refresca la tasa cada
// intervalo a traves del circuit breaker; si el breaker esta abierto el tick
// se salta entero para no martillar un proveedor caido. El cache expira solo,
// asi que un proveedor caido por mas tiempo que el TTL deja las conversiones
// fallando con ErrTRMNoDisponible en lugar de usar una tasa vieja.

import (
	"context"
	"time"

	"viotex/internal/infra"

	"github.com/rs/zerolog/log"
)

// RateRefresher recalienta el cache de TRM. Satisfecho por service.TRMService.
type RateRefresher interface {
	Refresh(ctx context.Context) error
}

// TRMCronConfig holds the dependencies for the refresh goroutine.
type TRMCronConfig struct {
	TRM      RateRefresher
	CB       *infra.CircuitBreaker
	Interval time.Duration
}

// StartTRMCron launches a goroutine that refreshes the rate on every tick,
// plus once at startup. It respects the context for graceful shutdown.
func StartTRMCron(ctx context.Context, cfg TRMCronConfig) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	go func() {
		log.Info().Dur("interval", interval).Msg("trm_cron: started")

		refresh(ctx, cfg)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("trm_cron: shutting down")
				return
			case <-ticker.C:
				refresh(ctx, cfg)
			}
		}
	}()
}

func refresh(ctx context.Context, cfg TRMCronConfig) {
	if cfg.CB != nil && cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("trm_cron: circuit breaker is open, skipping tick")
		return
	}
	if err := cfg.TRM.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("trm_cron: refresh failed")
		return
	}
	log.Debug().Msg("trm_cron: rate refreshed")
}
