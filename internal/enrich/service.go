// Package enrich wires scraping and batch geocoding behind one service
// facade and optionally publishes results as events.
package enrich

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/mgegen15-dev/ireland-planner/internal/batch"
	"github.com/mgegen15-dev/ireland-planner/internal/domain"
	"github.com/mgegen15-dev/ireland-planner/internal/observability"
	"github.com/mgegen15-dev/ireland-planner/internal/scrape"
)

// Publisher emits enrichment results for downstream consumers.
type Publisher interface {
	PublishScrape(ctx context.Context, rec domain.ScrapedRecord) error
	PublishUpdates(ctx context.Context, updates map[string]domain.GeocodeUpdate) error
}

// Service orchestrates URL scraping and batch geocoding.
type Service struct {
	scraper   *scrape.Scraper
	geocoder  *batch.Geocoder
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Service. publisher may be nil when event publishing is disabled.
func New(scraper *scrape.Scraper, geocoder *batch.Geocoder, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		scraper:   scraper,
		geocoder:  geocoder,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the service has handled at least one
// request, or an error describing why it is not yet ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no enrichment requests handled yet")
	}
	return nil
}

// ScrapeURL fetches and extracts metadata for one URL. Publishing failures
// never fail the request.
func (s *Service) ScrapeURL(ctx context.Context, rawURL string) (domain.ScrapedRecord, error) {
	rec, err := s.scraper.Scrape(ctx, rawURL)
	if err != nil {
		return domain.ScrapedRecord{}, err
	}
	s.ready.Store(true)

	if s.publisher != nil {
		if err := s.publisher.PublishScrape(ctx, rec); err != nil {
			s.logger.Warn("publish scrape event failed", "url", rawURL, "error", err)
			s.metrics.PublishErrors.Inc()
		} else {
			s.metrics.EventsPublished.Inc()
		}
	}
	return rec, nil
}

// GeocodeMissing resolves coordinates for items that lack them and returns
// the updates keyed by item ID.
func (s *Service) GeocodeMissing(ctx context.Context, items []domain.BatchItem) map[string]domain.GeocodeUpdate {
	updates := s.geocoder.ResolveMissing(ctx, items)
	s.ready.Store(true)

	if s.publisher != nil && len(updates) > 0 {
		if err := s.publisher.PublishUpdates(ctx, updates); err != nil {
			s.logger.Warn("publish geocode events failed", "count", len(updates), "error", err)
			s.metrics.PublishErrors.Inc()
		} else {
			s.metrics.EventsPublished.Add(float64(len(updates)))
		}
	}
	return updates
}
