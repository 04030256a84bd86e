package openmeteo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hydtwin/citizen-report-etl/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingForecaster struct {
	calls int
	err   error
}

func (f *countingForecaster) ForecastRainfall(_ context.Context, _, _ float64, hours int) (domain.RainfallOutlook, error) {
	f.calls++
	if f.err != nil {
		return domain.RainfallOutlook{}, f.err
	}
	return domain.RainfallOutlook{TotalMM: 12.5, Hours: hours}, nil
}

func cachedForTesting(inner domain.RainfallForecaster, maxEntries int, clock clockwork.Clock) *CachedForecaster {
	c := NewCachedForecaster(inner, maxEntries, testMetrics())
	c.clock = clock
	return c
}

func TestCachedForecaster_HitSkipsInner(t *testing.T) {
	inner := &countingForecaster{}
	c := cachedForTesting(inner, 10, clockwork.NewFakeClockAt(testNow))

	first, err := c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.NoError(t, err)

	second, err := c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
}

func TestCachedForecaster_HourBoundaryInvalidates(t *testing.T) {
	inner := &countingForecaster{}
	fakeClock := clockwork.NewFakeClockAt(testNow)
	c := cachedForTesting(inner, 10, fakeClock)

	_, err := c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.NoError(t, err)

	fakeClock.Advance(time.Hour)

	_, err = c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedForecaster_DistinctCoordinatesMiss(t *testing.T) {
	inner := &countingForecaster{}
	c := cachedForTesting(inner, 10, clockwork.NewFakeClockAt(testNow))

	_, err := c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.NoError(t, err)
	_, err = c.ForecastRainfall(context.Background(), 28.6139, 77.2090, 24)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedForecaster_ErrorsNotCached(t *testing.T) {
	inner := &countingForecaster{err: errors.New("rate limited")}
	c := cachedForTesting(inner, 10, clockwork.NewFakeClockAt(testNow))

	_, err := c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.Error(t, err)
	_, err = c.ForecastRainfall(context.Background(), 17.3850, 78.4867, 24)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedForecaster_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingForecaster{}
	c := cachedForTesting(inner, 2, clockwork.NewFakeClockAt(testNow))

	ctx := context.Background()
	_, _ = c.ForecastRainfall(ctx, 10.0, 70.0, 24) // A
	_, _ = c.ForecastRainfall(ctx, 20.0, 80.0, 24) // B
	_, _ = c.ForecastRainfall(ctx, 10.0, 70.0, 24) // A hit, B now LRU
	_, _ = c.ForecastRainfall(ctx, 30.0, 90.0, 24) // C evicts B
	_, _ = c.ForecastRainfall(ctx, 20.0, 80.0, 24) // B miss again

	assert.Equal(t, 4, inner.calls)
}
