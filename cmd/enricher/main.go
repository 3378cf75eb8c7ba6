package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/mgegen15-dev/ireland-planner/internal/adapter/http"
	kafkaadapter "github.com/mgegen15-dev/ireland-planner/internal/adapter/kafka"
	"github.com/mgegen15-dev/ireland-planner/internal/adapter/nominatim"
	"github.com/mgegen15-dev/ireland-planner/internal/adapter/proxy"
	"github.com/mgegen15-dev/ireland-planner/internal/batch"
	"github.com/mgegen15-dev/ireland-planner/internal/config"
	"github.com/mgegen15-dev/ireland-planner/internal/enrich"
	"github.com/mgegen15-dev/ireland-planner/internal/observability"
	"github.com/mgegen15-dev/ireland-planner/internal/scrape"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := nominatim.NewClient(cfg.NominatimURL, cfg.NominatimUserAgent, cfg.NominatimTimeout, metrics, logger)
	resolver := nominatim.NewCachedResolver(client, cfg.GeocodeCacheSize, metrics)
	logger.Info("geocoding configured",
		"url", cfg.NominatimURL,
		"cache_size", cfg.GeocodeCacheSize,
		"delay", cfg.GeocodeDelay,
	)

	fetcher := proxy.NewFetcher(cfg.ProxyURLs, cfg.FetchTimeout, metrics, logger)
	scraper := scrape.New(fetcher, resolver, metrics, logger)
	geocoder := batch.New(resolver, cfg.GeocodeDelay, clockwork.NewRealClock(), metrics, logger)

	// Publishing is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var publisher enrich.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("event publishing disabled")
	}

	service := enrich.New(scraper, geocoder, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
