package presentation

import (
	"math"
	"sync"

	"github.com/couchcryptid/parcel-balance-map/internal/domain"
	"github.com/couchcryptid/parcel-balance-map/internal/observability"
)

// CachedScale memoizes domain.ColorFor in an in-memory LRU cache. The scale is
// pure, so a cached color is always identical to a recomputed one.
type CachedScale struct {
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedScale creates a color cache holding up to maxEntries balances.
func NewCachedScale(maxEntries int, metrics *observability.Metrics) *CachedScale {
	return &CachedScale{
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// ColorFor returns the scale color for balance. Nil and NaN balances are not
// cached.
func (s *CachedScale) ColorFor(balance *float64) domain.Color {
	if balance == nil || math.IsNaN(*balance) {
		return domain.UnknownColor
	}

	key := math.Float64bits(*balance)
	if c, ok := s.cache.get(key); ok {
		s.metrics.ColorCache.WithLabelValues("hit").Inc()
		return c
	}
	s.metrics.ColorCache.WithLabelValues("miss").Inc()

	c := domain.ColorForValue(*balance)
	s.cache.put(key, c)
	return c
}

// lruCache is a simple thread-safe LRU cache of colors keyed by the bit
// pattern of the balance.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[uint64]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   uint64
	value domain.Color
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[uint64]*entry),
	}
}

func (c *lruCache) get(key uint64) (domain.Color, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Color{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key uint64, value domain.Color) {
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

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
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
