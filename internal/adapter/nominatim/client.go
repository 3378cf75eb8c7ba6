package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mgegen15-dev/ireland-planner/internal/domain"
	"github.com/mgegen15-dev/ireland-planner/internal/observability"
)

// minQueryLen is the shortest query, in runes, worth a network call.
const minQueryLen = 2

// irelandBias matches queries that already name a recognized Ireland/UK
// place, or the country code "ie" as a whole word. Anything else gets
// ", Ireland" appended to bias the search region.
var irelandBias = regexp.MustCompile(`(?i)ireland|eire|dublin|cork|galway|belfast|\bie\b`)

// Client implements domain.Resolver using a Nominatim-style place search,
// restricted to Ireland and the UK.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim geocoding client.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
		metrics:   metrics,
		logger:    logger,
	}
}

// Resolve converts a free-text place name to coordinates. A zero-value
// result with a nil error means no match: either the query was too short,
// the service returned nothing, or the first match had unusable coordinates.
func (c *Client) Resolve(ctx context.Context, query string) (domain.GeocodeResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLen {
		c.metrics.GeocodeRequests.WithLabelValues("rejected").Inc()
		return domain.GeocodeResult{}, nil
	}

	if !irelandBias.MatchString(query) {
		query += ", Ireland"
	}

	params := url.Values{
		"format":       {"json"},
		"limit":        {"1"},
		"countrycodes": {"ie,gb"},
		"q":            {query},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodeResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodeResult{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodeResult{}, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var matches []match
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodeResult{}, fmt.Errorf("decode response: %w", err)
	}

	if len(matches) == 0 {
		c.logger.Debug("geocode: no results", "query", query)
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		return domain.GeocodeResult{}, nil
	}

	result := matches[0].toResult()
	if !result.Found() {
		c.logger.Debug("geocode: unusable coordinates in first match", "query", query)
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		return domain.GeocodeResult{}, nil
	}

	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return result, nil
}

// Nominatim API response types. Coordinates arrive as strings.

type match struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (m match) toResult() domain.GeocodeResult {
	lat, errLat := strconv.ParseFloat(m.Lat, 64)
	lng, errLng := strconv.ParseFloat(m.Lon, 64)
	if errLat != nil || errLng != nil {
		return domain.GeocodeResult{}
	}
	return domain.GeocodeResult{Lat: lat, Lng: lng, DisplayName: m.DisplayName}
}
