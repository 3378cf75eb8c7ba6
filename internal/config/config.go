package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Nominatim geocoding configuration.
	NominatimURL       string
	NominatimUserAgent string
	NominatimTimeout   time.Duration
	GeocodeCacheSize   int

	// Delay between consecutive batch geocoding requests. Nominatim's usage
	// policy allows roughly one request per second.
	GeocodeDelay time.Duration

	// CORS proxy fetch configuration. Each entry is a URL prefix the target
	// URL gets appended to, query-escaped.
	ProxyURLs    []string
	FetchTimeout time.Duration

	// Optional Kafka publishing of enrichment results.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	nominatimTimeout, err := parseDuration("NOMINATIM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "12s")
	if err != nil {
		return nil, err
	}

	geocodeDelay, err := parseDuration("GEOCODE_DELAY", "1100ms")
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseCacheSize()
	if err != nil {
		return nil, err
	}

	brokers := splitAndTrim(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		NominatimURL:       envOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
		NominatimUserAgent: envOrDefault("NOMINATIM_USER_AGENT", "IrelandTripPlanner/1.0"),
		NominatimTimeout:   nominatimTimeout,
		GeocodeCacheSize:   cacheSize,
		GeocodeDelay:       geocodeDelay,

		ProxyURLs: splitAndTrim(envOrDefault("PROXY_URLS",
			"https://api.allorigins.win/raw?url=,https://corsproxy.io/?")),
		FetchTimeout: fetchTimeout,

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: brokers,
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "trip-enrichment-events"),
	}

	if cfg.NominatimURL == "" {
		return nil, errors.New("NOMINATIM_URL is required")
	}
	if cfg.NominatimUserAgent == "" {
		return nil, errors.New("NOMINATIM_USER_AGENT is required")
	}
	if len(cfg.ProxyURLs) == 0 {
		return nil, errors.New("PROXY_URLS is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	// GEOCODE_DELAY may be zero (tests, local runs); timeouts may not.
	if d == 0 && key != "GEOCODE_DELAY" {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseCacheSize() (int, error) {
	s := os.Getenv("GEOCODE_CACHE_SIZE")
	if s == "" {
		return 1000, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid GEOCODE_CACHE_SIZE: %q", s)
	}
	return n, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
