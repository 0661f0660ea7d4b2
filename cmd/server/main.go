package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"viotex/internal/config"
	"viotex/internal/infra"
	"viotex/internal/repository"
	"viotex/internal/router"
	"viotex/internal/service"
	"viotex/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// TRM provider behind a circuit breaker; the refresh cron keeps the
	// Redis-cached rate warm so cotizaciones en USD rara vez golpean al proveedor.
	trmCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	trmClient := infra.NewTRMClient(cfg.TRMAPIURL)
	trmSvc := service.NewTRMService(trmClient, trmCB, rdb, cfg)
	worker.StartTRMCron(ctx, worker.TRMCronConfig{
		TRM:      trmSvc,
		CB:       trmCB,
		Interval: cfg.TRMCronInterval,
	})

	// Worker pool for async jobs (cotizacion PDF, email). Handlers are wired
	// here, in the composition root, with full access to infra dependencies.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	cotizacionRepo := repository.NewCotizacionRepository(db)
	handlers := worker.Handlers{
		Cotizacion: worker.NewCotizacionWorker(cotizacionRepo, dispatcher, cfg.PDFStoragePath),
		Email:      worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	r := router.New(cfg, db, rdb, trmCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("viotex backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
