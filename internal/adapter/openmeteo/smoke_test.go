//go:build openmeteo

package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hydtwin/citizen-report-etl/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real Open-Meteo API (keyless, rate-limited by IP).
// Run with: go test -tags=openmeteo ./internal/adapter/openmeteo/ -v -count=1

func smokeClient() *Client {
	c := NewClient(10*time.Second, observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return c
}

func TestSmoke_ForecastRainfall(t *testing.T) {
	c := smokeClient()

	// Hyderabad city center.
	outlook, err := c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, outlook.TotalMM, 0.0)
	assert.Equal(t, 24, outlook.Hours)
}

func TestSmoke_CachedForecaster(t *testing.T) {
	c := smokeClient()
	cached := NewCachedForecaster(c, 10, observability.NewMetricsForTesting())

	// First call: cache miss, real API call.
	r1, err := cached.ForecastRainfall(context.Background(), 28.6139, 77.2090, 24)
	require.NoError(t, err)

	// Second call: cache hit, no API call.
	r2, err := cached.ForecastRainfall(context.Background(), 28.6139, 77.2090, 24)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
