// Package scrape turns an arbitrary page URL into a ScrapedRecord: title,
// description, address, price, and coordinates, with a geocoding fallback
// when the page embeds no usable pair.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/mgegen15-dev/ireland-planner/internal/domain"
	"github.com/mgegen15-dev/ireland-planner/internal/observability"
)

// maxDescriptionLen bounds the description field in the final record.
const maxDescriptionLen = 300

// Fetcher retrieves raw page HTML for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (string, error)
}

// Scraper extracts structured metadata from web pages.
type Scraper struct {
	fetcher  Fetcher
	resolver domain.Resolver
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// New creates a Scraper. The resolver may be nil to disable the geocoding
// fallback.
func New(fetcher Fetcher, resolver domain.Resolver, metrics *observability.Metrics, logger *slog.Logger) *Scraper {
	return &Scraper{
		fetcher:  fetcher,
		resolver: resolver,
		metrics:  metrics,
		logger:   logger,
	}
}

// Scrape fetches rawURL through the proxy chain and extracts a record.
// Fails with domain.ErrUnsupportedScheme before any network call for
// non-http(s) URLs, with *domain.FetchError when every proxy fails, and with
// *domain.ExtractionError when the page yields no usable title.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (domain.ScrapedRecord, error) {
	start := time.Now()
	defer func() {
		s.metrics.ScrapeDuration.Observe(time.Since(start).Seconds())
	}()

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		s.metrics.ScrapeRequests.WithLabelValues("invalid_url").Inc()
		return domain.ScrapedRecord{}, domain.ErrUnsupportedScheme
	}

	doc, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.metrics.ScrapeRequests.WithLabelValues("fetch_error").Inc()
		return domain.ScrapedRecord{}, err
	}

	rec := s.parse(ctx, doc, rawURL)
	if rec.Title == "" {
		s.metrics.ScrapeRequests.WithLabelValues("extraction_error").Inc()
		return domain.ScrapedRecord{}, &domain.ExtractionError{URL: rawURL}
	}

	s.metrics.ScrapeRequests.WithLabelValues("success").Inc()
	return rec, nil
}

// parse mines the fetched HTML. Purely functional apart from the geocoding
// fallback call.
func (s *Scraper) parse(ctx context.Context, doc, rawURL string) domain.ScrapedRecord {
	siteName := metaContent(doc, "site_name")
	title := cleanTitle(extractTitle(doc), siteName)
	address := extractAddress(doc)

	coords, source, found := extractCoordinates(doc)
	if found {
		s.logger.Debug("coordinates extracted from page", "url", rawURL, "source", source)
	}

	location := address
	query := buildLocationQuery(address, title, rawURL)

	if !found && s.resolver != nil {
		result, err := s.resolver.Resolve(ctx, query)
		switch {
		case err != nil:
			// Enrichment is best-effort: the record ships without coordinates.
			s.logger.Warn("geocode fallback failed", "url", rawURL, "query", query, "error", err)
		case result.Found():
			coords = domain.Coordinates{Lat: result.Lat, Lng: result.Lng}
			if location == "" && result.DisplayName != "" {
				location = domain.ShortLocation(result.DisplayName)
			}
		default:
			s.logger.Debug("geocode fallback found nothing", "url", rawURL, "query", query)
		}
	}

	if location == "" {
		location = query
	}

	return domain.ScrapedRecord{
		Title:       title,
		Description: truncate(extractDescription(doc), maxDescriptionLen),
		Location:    location,
		Lat:         coords.Lat,
		Lng:         coords.Lng,
		Price:       extractPrice(doc),
		URL:         rawURL,
		SiteName:    siteName,
		ScrapedAt:   domain.Now(),
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
