package dem

import (
	"context"
	"fmt"
	"sync"

	"github.com/hydromaroc/flood-risk-service/internal/domain"
	"github.com/hydromaroc/flood-risk-service/internal/observability"
)

// CachedProvider wraps an ElevationProvider with an in-memory LRU cache for
// point lookups. Terrain does not change between requests, so valid samples
// are cached indefinitely; invalid samples are not cached so transient DEM
// failures can be retried. Zone extractions pass through uncached.
type CachedProvider struct {
	inner   domain.ElevationProvider
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a provider.
func NewCachedProvider(inner domain.ElevationProvider, maxEntries int, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedProvider) PointElevation(ctx context.Context, lon, lat float64) domain.ElevationSample {
	key := fmt.Sprintf("%.6f,%.6f", lon, lat)
	if sample, ok := c.cache.get(key); ok {
		c.metrics.ElevationCache.WithLabelValues("hit").Inc()
		return sample
	}
	c.metrics.ElevationCache.WithLabelValues("miss").Inc()

	sample := c.inner.PointElevation(ctx, lon, lat)
	if sample.Valid {
		c.cache.put(key, sample)
	}
	return sample
}

func (c *CachedProvider) ZoneElevations(ctx context.Context, box domain.BoundingBox, resolutionMeters float64) domain.ElevationGrid {
	return c.inner.ZoneElevations(ctx, box, resolutionMeters)
}

// lruCache is a simple thread-safe LRU cache for elevation samples.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.ElevationSample
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.ElevationSample, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.ElevationSample{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.ElevationSample) {
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
