package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/hydtwin/citizen-report-etl/internal/adapter/http"
	kafkaadapter "github.com/hydtwin/citizen-report-etl/internal/adapter/kafka"
	"github.com/hydtwin/citizen-report-etl/internal/adapter/openmeteo"
	"github.com/hydtwin/citizen-report-etl/internal/config"
	"github.com/hydtwin/citizen-report-etl/internal/digipin"
	"github.com/hydtwin/citizen-report-etl/internal/domain"
	"github.com/hydtwin/citizen-report-etl/internal/observability"
	"github.com/hydtwin/citizen-report-etl/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	// Best effort; env vars win over .env values.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	codec := digipin.Default()
	coder := pipeline.NewGridCoder(codec, cfg.GridCacheSize, metrics)

	// Rainfall enrichment is feature-flagged via OPENMETEO_ENABLED.
	var forecaster domain.RainfallForecaster
	if cfg.OpenMeteoEnabled {
		client := openmeteo.NewClient(cfg.OpenMeteoTimeout, metrics, logger)
		forecaster = openmeteo.NewCachedForecaster(client, cfg.ForecastCacheSize, metrics)
		metrics.ForecastEnabled.Set(1)
		logger.Info("rainfall enrichment enabled",
			"hours", cfg.ForecastHours,
			"cache_size", cfg.ForecastCacheSize,
			"timeout", cfg.OpenMeteoTimeout,
		)
	} else {
		logger.Info("rainfall enrichment disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(coder, forecaster, cfg.ForecastHours, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, codec, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
