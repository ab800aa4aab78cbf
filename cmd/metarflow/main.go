package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/metarflow-service/internal/adapter/aviationweather"
	httpadapter "github.com/couchcryptid/metarflow-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/metarflow-service/internal/adapter/kafka"
	"github.com/couchcryptid/metarflow-service/internal/config"
	"github.com/couchcryptid/metarflow-service/internal/observability"
	"github.com/couchcryptid/metarflow-service/internal/pipeline"
	"github.com/couchcryptid/metarflow-service/internal/view"
	"github.com/jonboulle/clockwork"
)

// alwaysReady is the readiness checker used when the Kafka pipeline is off.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := view.LoadTemplates(); err != nil {
		logger.Error("failed to load page templates", "error", err)
		os.Exit(1)
	}

	client := aviationweather.NewClient(cfg.FetchBaseURL, cfg.FetchTimeout, cfg.FetchMaxRetries, metrics, logger)
	fetcher := aviationweather.NewCachedFetcher(client, cfg.CacheSize, cfg.CacheTTL, clockwork.NewRealClock(), metrics)
	logger.Info("metar fetcher configured",
		"base_url", cfg.FetchBaseURL,
		"cache_size", cfg.CacheSize,
		"cache_ttl", cfg.CacheTTL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		ready  httpadapter.ReadinessChecker = alwaysReady{}
		reader *kafkaadapter.Reader
		writer *kafkaadapter.Writer
	)
	if cfg.PipelineEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		p := pipeline.New(reader, pipeline.NewTransformer(metrics, logger), writer, logger, metrics, cfg.BatchSize)
		ready = p

		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		logger.Info("kafka decode pipeline disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, fetcher, ready, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
