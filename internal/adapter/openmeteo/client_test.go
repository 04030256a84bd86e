package openmeteo

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hydtwin/citizen-report-etl/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

var testNow = time.Date(2026, time.July, 14, 9, 30, 0, 0, time.UTC)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:      clockwork.NewFakeClockAt(testNow),
	}
}

// hourlyResponse builds a response whose slots start at `from` and carry the
// given rain values, one per hour.
func hourlyResponse(from time.Time, rain []float64) response {
	times := make([]string, len(rain))
	for i := range rain {
		times[i] = from.Add(time.Duration(i) * time.Hour).Format(hourlyTimeLayout)
	}
	return response{Hourly: hourly{Time: times, Rain: rain}}
}

func TestClient_ForecastRainfall_SumsUpcomingWindow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "17.3850", r.URL.Query().Get("latitude"))
		assert.Equal(t, "78.4867", r.URL.Query().Get("longitude"))
		assert.Equal(t, "rain", r.URL.Query().Get("hourly"))
		assert.Equal(t, "UTC", r.URL.Query().Get("timezone"))

		// Two slots before the current hour, then the window.
		resp := hourlyResponse(testNow.Truncate(time.Hour).Add(-2*time.Hour),
			[]float64{99, 99, 1.5, 2.0, 0.5, 3.0, 100})
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	outlook, err := c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 4)
	require.NoError(t, err)

	// Past slots skipped, window is the 4 slots starting at 09:00.
	assert.InDelta(t, 7.0, outlook.TotalMM, 1e-9)
	assert.Equal(t, 4, outlook.Hours)
}

func TestClient_ForecastRainfall_ShortHorizon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Only 2 slots available even though 24 were requested.
		resp := hourlyResponse(testNow.Truncate(time.Hour), []float64{1.0, 2.5})
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	outlook, err := c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, outlook.TotalMM, 1e-9)
}

func TestClient_ForecastRainfall_EmptyHourly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no hourly data")
}

func TestClient_ForecastRainfall_MismatchedSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := hourlyResponse(testNow.Truncate(time.Hour), []float64{1, 2, 3})
		resp.Hourly.Rain = resp.Hourly.Rain[:2]
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.Error(t, err)
}

func TestClient_ForecastRainfall_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"reason":"Latitude must be in range"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ForecastRainfall(context.Background(), 91.0, 78.4867, 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClient_ForecastRainfall_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.Error(t, err)
}
