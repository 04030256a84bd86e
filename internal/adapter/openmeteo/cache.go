package openmeteo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hydtwin/citizen-report-etl/internal/domain"
	"github.com/hydtwin/citizen-report-etl/internal/observability"
	"github.com/jonboulle/clockwork"
)

// CachedForecaster wraps a RainfallForecaster with an in-memory LRU cache.
// Keys include the current hour, so a burst of reports from the same area
// shares one API call and entries go stale on their own at the hour boundary.
type CachedForecaster struct {
	inner   domain.RainfallForecaster
	cache   *lruCache
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewCachedForecaster creates a cache decorator around a forecaster.
func NewCachedForecaster(inner domain.RainfallForecaster, maxEntries int, metrics *observability.Metrics) *CachedForecaster {
	return &CachedForecaster{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
}

func (c *CachedForecaster) ForecastRainfall(ctx context.Context, lat, lon float64, hours int) (domain.RainfallOutlook, error) {
	// Coordinates rounded to 4 decimals (~11m) so reports from the same
	// block share a forecast.
	bucket := c.clock.Now().UTC().Truncate(time.Hour).Unix()
	key := fmt.Sprintf("%.4f,%.4f|%d|%d", lat, lon, hours, bucket)

	if outlook, ok := c.cache.get(key); ok {
		c.metrics.ForecastCache.WithLabelValues("hit").Inc()
		return outlook, nil
	}
	c.metrics.ForecastCache.WithLabelValues("miss").Inc()

	outlook, err := c.inner.ForecastRainfall(ctx, lat, lon, hours)
	if err != nil {
		// Errors are not cached so transient failures can be retried.
		return outlook, err
	}
	c.cache.put(key, outlook)
	return outlook, nil
}

// lruCache is a simple thread-safe LRU cache for RainfallOutlooks.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.RainfallOutlook
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.RainfallOutlook, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.RainfallOutlook{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.RainfallOutlook) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
