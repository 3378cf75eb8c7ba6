// Package batch resolves coordinates for collections of named records:
// itinerary activities, golf courses, and guide entries that were saved
// without a usable latitude/longitude.
package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mgegen15-dev/ireland-planner/internal/domain"
	"github.com/mgegen15-dev/ireland-planner/internal/observability"
)

// Geocoder runs a strictly sequential geocoding pass over a batch of items.
// Sequential-with-delay is a throttling policy: Nominatim allows roughly one
// request per second, so items are never resolved concurrently.
type Geocoder struct {
	resolver domain.Resolver
	clock    clockwork.Clock
	delay    time.Duration
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// New creates a batch Geocoder. The clock is injected so tests can advance
// time instead of waiting out the inter-request delay.
func New(resolver domain.Resolver, delay time.Duration, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Geocoder {
	return &Geocoder{
		resolver: resolver,
		clock:    clock,
		delay:    delay,
		metrics:  metrics,
		logger:   logger,
	}
}

// ResolveMissing geocodes every item that lacks a usable coordinate pair and
// returns updates keyed by item ID. Items that fail to resolve are simply
// omitted; failures are not cached anywhere, so re-running the batch retries
// them. Cancelling the context stops the pass early with whatever resolved
// so far.
func (g *Geocoder) ResolveMissing(ctx context.Context, items []domain.BatchItem) map[string]domain.GeocodeUpdate {
	pending := make([]domain.BatchItem, 0, len(items))
	for _, item := range items {
		if item.MissingCoords() {
			pending = append(pending, item)
		}
	}

	updates := make(map[string]domain.GeocodeUpdate, len(pending))
	if len(pending) == 0 {
		return updates
	}

	g.logger.Info("batch geocoding started", "total", len(items), "pending", len(pending))
	g.metrics.BatchItems.Observe(float64(len(pending)))
	start := time.Now()

	for i, item := range pending {
		if i > 0 && !g.waitBetween(ctx) {
			g.logger.Info("batch geocoding cancelled", "resolved", len(updates))
			return updates
		}

		query := item.Query()
		if query == "" {
			continue
		}

		g.logger.Debug("batch geocoding item", "index", i+1, "pending", len(pending), "query", query)

		result, err := g.resolver.Resolve(ctx, query)
		if err != nil {
			g.logger.Warn("batch geocode failed", "id", item.ID, "query", query, "error", err)
			continue
		}
		if !result.Found() {
			g.logger.Debug("batch geocode found nothing", "id", item.ID, "query", query)
			continue
		}

		location := item.Location
		if location == "" {
			location = domain.ShortLocation(result.DisplayName)
		}
		updates[item.ID] = domain.GeocodeUpdate{
			Lat:      result.Lat,
			Lng:      result.Lng,
			Location: location,
		}
	}

	g.metrics.BatchDuration.Observe(time.Since(start).Seconds())
	g.logger.Info("batch geocoding finished", "pending", len(pending), "resolved", len(updates))
	return updates
}

// waitBetween suspends for the configured delay between consecutive
// requests. Returns false when the context is cancelled first.
func (g *Geocoder) waitBetween(ctx context.Context) bool {
	if g.delay <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-g.clock.After(g.delay):
		return true
	}
}
