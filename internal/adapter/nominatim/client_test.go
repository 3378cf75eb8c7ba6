package nominatim

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgegen15-dev/ireland-planner/internal/observability"
)

const testUserAgent = "ireland-planner-test/1.0"

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(baseURL string) *Client {
	return NewClient(baseURL, testUserAgent, 5*time.Second, testMetrics(), discardLogger())
}

func TestResolve_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "ie,gb", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "Lahinch, Ireland", r.URL.Query().Get("q"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"52.9334","lon":"-9.3441","display_name":"Lahinch, County Clare, Ireland"}]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.Resolve(context.Background(), "Lahinch")
	require.NoError(t, err)

	assert.Equal(t, 52.9334, result.Lat)
	assert.Equal(t, -9.3441, result.Lng)
	assert.Equal(t, "Lahinch, County Clare, Ireland", result.DisplayName)
	assert.True(t, result.Found())
}

func TestResolve_NoBiasWhenQueryMentionsIreland(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"country name", "Doolin, Ireland"},
		{"known city", "Temple Bar Dublin"},
		{"country code whole word", "Kinsale ie"},
		{"case insensitive", "GALWAY cathedral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.query, r.URL.Query().Get("q"))
				_, _ = w.Write([]byte(`[]`))
			}))
			defer srv.Close()

			_, err := testClient(srv.URL).Resolve(context.Background(), tt.query)
			require.NoError(t, err)
		})
	}
}

func TestResolve_BiasNotTriggeredBySubstringIE(t *testing.T) {
	// "pier" contains "ie" but not as a whole word, so the bias applies.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Howth pier, Ireland", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Resolve(context.Background(), "Howth pier")
	require.NoError(t, err)
}

func TestResolve_ShortQuerySkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	for _, q := range []string{"", "a", " b ", "  ", "é", " ó "} {
		result, err := c.Resolve(context.Background(), q)
		require.NoError(t, err)
		assert.False(t, result.Found())
	}
	assert.Equal(t, int32(0), calls.Load(), "short queries must not hit the network")
}

func TestResolve_TwoRuneQueryHitsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Cé, Ireland", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Resolve(context.Background(), "Cé")
	require.NoError(t, err)
}

func TestResolve_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).Resolve(context.Background(), "Nowhere Special")
	require.NoError(t, err)
	assert.False(t, result.Found())
}

func TestResolve_UnparseableCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"-9.3","display_name":"Broken"}]`))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).Resolve(context.Background(), "Broken Place")
	require.NoError(t, err)
	assert.False(t, result.Found())
}

func TestResolve_ZeroPairTreatedAsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"0","lon":"0","display_name":"Null Island"}]`))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).Resolve(context.Background(), "Null Island")
	require.NoError(t, err)
	assert.False(t, result.Found())
}

func TestResolve_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`rate limited`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Resolve(context.Background(), "Dingle peninsula")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestResolve_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testUserAgent, 50*time.Millisecond, testMetrics(), discardLogger())
	_, err := c.Resolve(context.Background(), "Slow Town")
	require.Error(t, err)
}
