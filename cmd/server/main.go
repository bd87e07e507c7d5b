// Package main is the entry point for the coherence engine: an HTTP service
// that measures synchronization across financial time series at macro, meso
// and micro scales using analytic-signal and spectral-coherence techniques.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/coherence/internal/clients/synthetic"
	"github.com/aristath/coherence/internal/config"
	"github.com/aristath/coherence/internal/modules/coherence"
	"github.com/aristath/coherence/internal/modules/hierarchy"
	hierarchyhandlers "github.com/aristath/coherence/internal/modules/hierarchy/handlers"
	"github.com/aristath/coherence/internal/server"
	"github.com/aristath/coherence/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLog := logger.New(logger.Config{Level: "error"})
		errLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	universe, err := config.LoadUniverse(cfg.UniversePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load universe configuration")
	}

	log.Info().
		Int("sectors", len(universe.Sectors)).
		Int("symbols", len(universe.AllSymbols())).
		Int("sample_count", cfg.SampleCount).
		Float64("sampling_rate", cfg.SamplingRate).
		Msg("Universe loaded")

	// The synthetic feed gives index and tech symbols a mild upward drift
	// so the macro and meso levels have a shared trend to lock onto.
	var trending []string
	for _, name := range []string{"Macro", "Tech"} {
		if sector, ok := universe.FindSector(name); ok {
			trending = append(trending, sector.Symbols...)
		}
	}
	source := synthetic.New(trending, log)

	analyzer := coherence.NewAnalyzer(cfg.SamplingRate, universe.Bands, log)
	service := hierarchy.NewService(universe, source, analyzer, cfg.SampleCount, log)

	srv := server.New(server.Config{
		Log:              log,
		Port:             cfg.Port,
		DevMode:          cfg.DevMode,
		HierarchyHandler: hierarchyhandlers.NewHandler(service, log),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("HTTP server failed")
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
