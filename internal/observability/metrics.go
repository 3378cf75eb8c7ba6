package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// enrichment service.
type Metrics struct {
	ScrapeRequests *prometheus.CounterVec // labels: outcome={success,invalid_url,fetch_error,extraction_error}
	ScrapeDuration prometheus.Histogram
	FetchAttempts  *prometheus.CounterVec // labels: proxy, outcome={success,error,short_body}

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,empty,error,rejected}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram

	// Batch geocoding metrics.
	BatchItems    prometheus.Histogram
	BatchDuration prometheus.Histogram

	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ScrapeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trip_enrich",
			Name:      "scrape_requests_total",
			Help:      "URL scrape requests by outcome.",
		}, []string{"outcome"}),
		ScrapeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "trip_enrich",
			Name:      "scrape_duration_seconds",
			Help:      "Duration of a complete fetch-extract-geocode cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 15, 30},
		}),
		FetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trip_enrich",
			Name:      "fetch_attempts_total",
			Help:      "CORS proxy fetch attempts by proxy host and outcome.",
		}, []string{"proxy", "outcome"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trip_enrich",
			Name:      "geocode_requests_total",
			Help:      "Geocoding lookups by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trip_enrich",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "trip_enrich",
			Name:      "geocode_api_duration_seconds",
			Help:      "Nominatim API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		BatchItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "trip_enrich",
			Name:      "batch_items",
			Help:      "Number of items needing coordinates per batch request.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "trip_enrich",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete batch geocoding pass.",
			Buckets:   []float64{0.1, 1, 5, 10, 30, 60, 120},
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trip_enrich",
			Name:      "events_published_total",
			Help:      "Enrichment events published to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trip_enrich",
			Name:      "publish_errors_total",
			Help:      "Failed publishes of enrichment events.",
		}),
	}

	prometheus.MustRegister(
		m.ScrapeRequests,
		m.ScrapeDuration,
		m.FetchAttempts,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.BatchItems,
		m.BatchDuration,
		m.EventsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ScrapeRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "trip_enrich", Name: "scrape_requests_total"}, []string{"outcome"}),
		ScrapeDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "trip_enrich", Name: "scrape_duration_seconds"}),
		FetchAttempts:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "trip_enrich", Name: "fetch_attempts_total"}, []string{"proxy", "outcome"}),
		GeocodeRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "trip_enrich", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "trip_enrich", Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "trip_enrich", Name: "geocode_api_duration_seconds"}),
		BatchItems:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "trip_enrich", Name: "batch_items"}),
		BatchDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "trip_enrich", Name: "batch_duration_seconds"}),
		EventsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "trip_enrich", Name: "events_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "trip_enrich", Name: "publish_errors_total"}),
	}
}
