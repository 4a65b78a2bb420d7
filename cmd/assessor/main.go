package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hydromaroc/flood-risk-service/internal/adapter/dem"
	httpadapter "github.com/hydromaroc/flood-risk-service/internal/adapter/http"
	kafkaadapter "github.com/hydromaroc/flood-risk-service/internal/adapter/kafka"
	"github.com/hydromaroc/flood-risk-service/internal/config"
	"github.com/hydromaroc/flood-risk-service/internal/observability"
	"github.com/hydromaroc/flood-risk-service/internal/pipeline"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	demClient := dem.NewClient(cfg.DEMBaseURL, cfg.DEMDataset, cfg.DEMTimeout, metrics, logger)
	provider := dem.NewCachedProvider(demClient, cfg.DEMCacheSize, metrics)
	logger.Info("dem provider ready",
		"base_url", cfg.DEMBaseURL, "dataset", cfg.DEMDataset, "cache_size", cfg.DEMCacheSize)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(provider, metrics, logger, cfg.DEMResolutionM, cfg.LowZoneThresholdM)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start assessment pipeline.
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
