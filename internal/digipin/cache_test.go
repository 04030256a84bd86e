package digipin

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEncoder counts how often the inner encode is actually invoked.
type countingEncoder struct {
	mu    sync.Mutex
	calls int
	inner Encoder
	err   error
}

func (e *countingEncoder) Encode(lat, lon float64) (string, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.err != nil {
		return "", e.err
	}
	return e.inner.Encode(lat, lon)
}

func TestCachedEncoder_HitSkipsInnerEncode(t *testing.T) {
	inner := &countingEncoder{inner: Default()}
	cached := NewCachedEncoder(inner, 10)

	first, err := cached.Encode(17.385, 78.4867)
	require.NoError(t, err)
	second, err := cached.Encode(17.385, 78.4867)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedEncoder_ResultsMatchUncached(t *testing.T) {
	plain := Default()
	cached := NewCachedEncoder(Default(), 64)

	points := [][2]float64{
		{17.385, 78.4867},
		{28.6139, 77.209},
		{2.5, 63.5},
		{38.5, 99.5},
	}
	for _, p := range points {
		want, err := plain.Encode(p[0], p[1])
		require.NoError(t, err)
		got, err := cached.Encode(p[0], p[1])
		require.NoError(t, err)
		assert.Equal(t, want, got, "point %v", p)

		// Second pass through the cache must agree too.
		got, err = cached.Encode(p[0], p[1])
		require.NoError(t, err)
		assert.Equal(t, want, got, "point %v (cached)", p)
	}
}

func TestCachedEncoder_ErrorsAreNotCached(t *testing.T) {
	inner := &countingEncoder{err: errors.New("boom")}
	cached := NewCachedEncoder(inner, 10)

	_, err := cached.Encode(17.0, 78.0)
	require.Error(t, err)
	_, err = cached.Encode(17.0, 78.0)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls, "failed encodes must be retried, not served from cache")
}

func TestCachedEncoder_OutOfDomainPassesThrough(t *testing.T) {
	cached := NewCachedEncoder(Default(), 10)

	_, err := cached.Encode(1000, 78)
	assert.ErrorIs(t, err, ErrOutOfDomain)
}

func TestCachedEncoder_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingEncoder{inner: Default()}
	cached := NewCachedEncoder(inner, 2)

	a := [2]float64{17.1, 78.1}
	b := [2]float64{17.2, 78.2}
	c := [2]float64{17.3, 78.3}

	_, err := cached.Encode(a[0], a[1]) // miss
	require.NoError(t, err)
	_, err = cached.Encode(b[0], b[1]) // miss
	require.NoError(t, err)
	_, err = cached.Encode(a[0], a[1]) // hit, refreshes a
	require.NoError(t, err)
	_, err = cached.Encode(c[0], c[1]) // miss, evicts b
	require.NoError(t, err)
	_, err = cached.Encode(a[0], a[1]) // still cached
	require.NoError(t, err)
	_, err = cached.Encode(b[0], b[1]) // miss again
	require.NoError(t, err)

	assert.Equal(t, 4, inner.calls)
}

func TestCachedEncoder_ConcurrentCallers(t *testing.T) {
	cached := NewCachedEncoder(Default(), 32)
	want, err := Default().Encode(17.385, 78.4867)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				got, err := cached.Encode(17.385, 78.4867)
				if err != nil {
					errs <- err
					return
				}
				if got != want {
					errs <- fmt.Errorf("worker %d: got %s, want %s", worker, got, want)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
