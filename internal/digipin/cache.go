package digipin

import (
	"fmt"
	"sync"
)

// Encoder is the encode-only view of a codec.
type Encoder interface {
	Encode(lat, lon float64) (string, error)
}

// CachedEncoder wraps an Encoder with a bounded in-memory LRU cache. The map
// dashboard re-encodes on every click and search hit, so recent coordinates
// repeat heavily within a session.
//
// Keys round the coordinate to six decimals (≈0.11 m), well inside the
// finest level-10 cell, so rounding can never move a point across a cell
// boundary. The cache is purely an optimization: results are identical with
// or without it.
type CachedEncoder struct {
	inner Encoder
	cache *lruCache
}

// NewCachedEncoder creates a cache decorator around an encoder.
func NewCachedEncoder(inner Encoder, maxEntries int) *CachedEncoder {
	return &CachedEncoder{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

// Encode returns the cached code for the rounded coordinate, computing and
// caching it on a miss. Errors are never cached.
func (c *CachedEncoder) Encode(lat, lon float64) (string, error) {
	key := fmt.Sprintf("%.6f,%.6f", lat, lon)
	if code, ok := c.cache.get(key); ok {
		return code, nil
	}
	code, err := c.inner.Encode(lat, lon)
	if err != nil {
		return "", err
	}
	c.cache.put(key, code)
	return code, nil
}

// lruCache is a simple thread-safe LRU cache for grid codes.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value string
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key, value string) {
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
