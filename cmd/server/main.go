// Package main is the entry point for the Horizon projection server.
// It serves the Monte Carlo projection engine over HTTP and exposes
// health and Prometheus endpoints next to it.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/horizon/internal/config"
	"github.com/aristath/horizon/internal/modules/projection"
	"github.com/aristath/horizon/internal/modules/universe"
	"github.com/aristath/horizon/internal/server"
	"github.com/aristath/horizon/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Horizon")

	// The engine factorizes the covariance matrix once, here, and every
	// request reuses it.
	metrics := server.NewMetrics()
	engine := projection.NewEngine(universe.Default(), projection.Options{
		Workers:          cfg.SimulationWorkers,
		MaxSimulations:   cfg.MaxSimulations,
		MetricsCacheSize: cfg.MetricsCacheSize,
		MetricsCacheTTL:  cfg.MetricsCacheTTL,
		Recorder:         metrics,
	}, log)
	defer engine.Close()

	log.Info().
		Int("workers", cfg.SimulationWorkers).
		Int("max_simulations", cfg.MaxSimulations).
		Msg("Projection engine initialized")

	srv := server.New(server.Config{
		Log:                log,
		Port:               cfg.Port,
		DevMode:            cfg.DevMode,
		Engine:             engine,
		DefaultSimulations: cfg.DefaultSimulations,
		Metrics:            metrics,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// In-flight simulations get up to 10 seconds to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
