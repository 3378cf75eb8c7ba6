package proxy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgegen15-dev/ireland-planner/internal/domain"
	"github.com/mgegen15-dev/ireland-planner/internal/observability"
)

const targetURL = "https://lahinchgolf.com/green-fees"

var longBody = "<html>" + strings.Repeat("x", 200) + "</html>"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFetcher(proxies ...string) *Fetcher {
	return NewFetcher(proxies, 2*time.Second, observability.NewMetricsForTesting(), discardLogger())
}

func TestFetch_FirstProxySucceeds(t *testing.T) {
	var second atomic.Int32
	srv1 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, targetURL, r.URL.Query().Get("url"))
		_, _ = w.Write([]byte(longBody))
	}))
	defer srv1.Close()
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		second.Add(1)
		_, _ = w.Write([]byte(longBody))
	}))
	defer srv2.Close()

	f := newFetcher(srv1.URL+"/raw?url=", srv2.URL+"/?url=")
	body, err := f.Fetch(context.Background(), targetURL)
	require.NoError(t, err)

	assert.Equal(t, longBody, body)
	assert.Equal(t, int32(0), second.Load(), "second proxy must not be tried")
}

func TestFetch_FallsBackToSecondProxy(t *testing.T) {
	srv1 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv1.Close()
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(longBody))
	}))
	defer srv2.Close()

	f := newFetcher(srv1.URL+"/raw?url=", srv2.URL+"/?url=")
	body, err := f.Fetch(context.Background(), targetURL)
	require.NoError(t, err)
	assert.Equal(t, longBody, body)
}

func TestFetch_ShortBodyTreatedAsFailure(t *testing.T) {
	srv1 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Access denied")) // 13 chars: a proxy error page
	}))
	defer srv1.Close()
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(longBody))
	}))
	defer srv2.Close()

	f := newFetcher(srv1.URL+"/raw?url=", srv2.URL+"/?url=")
	body, err := f.Fetch(context.Background(), targetURL)
	require.NoError(t, err)
	assert.Equal(t, longBody, body)
}

func TestFetch_AllProxiesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := newFetcher(srv.URL+"/a?url=", srv.URL+"/b?url=")
	_, err := f.Fetch(context.Background(), targetURL)
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, targetURL, fetchErr.URL)
	assert.Contains(t, err.Error(), "check the address")
}

func TestFetch_ContextCancelledStopsChain(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newFetcher(srv.URL+"/a?url=", srv.URL+"/b?url=")
	_, err := f.Fetch(ctx, targetURL)
	require.Error(t, err)
	assert.LessOrEqual(t, calls.Load(), int32(1))
}
