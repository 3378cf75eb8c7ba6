// Package proxy fetches arbitrary pages through public CORS-proxy relays.
// Each relay is individually unreliable and rate-limited, so the fetcher
// tries an ordered list and accepts the first plausible response.
package proxy

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mgegen15-dev/ireland-planner/internal/domain"
	"github.com/mgegen15-dev/ireland-planner/internal/observability"
)

// minBodyLen filters out proxy error pages and empty bodies. A real page
// always carries more than this.
const minBodyLen = 100

// Fetcher retrieves page HTML through a chain of CORS proxies.
type Fetcher struct {
	httpClient *http.Client
	proxies    []string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher. Each proxy entry is a URL prefix the
// query-escaped target URL gets appended to. The timeout applies per attempt,
// not to the whole chain.
func NewFetcher(proxies []string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		proxies: proxies,
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch returns the body of target as served by the first proxy that answers
// with a success status and a body longer than minBodyLen. When every proxy
// fails it returns a *domain.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	for _, prefix := range f.proxies {
		body, ok := f.tryProxy(ctx, prefix, target)
		if ok {
			return body, nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	return "", &domain.FetchError{URL: target}
}

func (f *Fetcher) tryProxy(ctx context.Context, prefix, target string) (string, bool) {
	proxied := prefix + url.QueryEscape(target)
	label := proxyLabel(prefix)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, proxied, nil)
	if err != nil {
		f.metrics.FetchAttempts.WithLabelValues(label, "error").Inc()
		return "", false
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Debug("proxy fetch failed", "proxy", label, "url", target, "error", err)
		f.metrics.FetchAttempts.WithLabelValues(label, "error").Inc()
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Debug("proxy fetch non-success status", "proxy", label, "url", target, "status", resp.StatusCode)
		f.metrics.FetchAttempts.WithLabelValues(label, "error").Inc()
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.metrics.FetchAttempts.WithLabelValues(label, "error").Inc()
		return "", false
	}
	if len(body) <= minBodyLen {
		f.logger.Debug("proxy returned short body", "proxy", label, "url", target, "length", len(body))
		f.metrics.FetchAttempts.WithLabelValues(label, "short_body").Inc()
		return "", false
	}

	f.metrics.FetchAttempts.WithLabelValues(label, "success").Inc()
	return string(body), true
}

// proxyLabel reduces a proxy prefix to its host for metric labels.
func proxyLabel(prefix string) string {
	u, err := url.Parse(prefix)
	if err != nil || u.Host == "" {
		return prefix
	}
	return u.Host
}
