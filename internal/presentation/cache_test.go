package presentation

import (
	"math"
	"sync"
	"testing"

	"github.com/couchcryptid/parcel-balance-map/internal/domain"
	"github.com/couchcryptid/parcel-balance-map/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

// --- CachedScale tests ---

func TestCachedScale_HitsAndMisses(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	s := NewCachedScale(10, metrics)

	c1 := s.ColorFor(ptr(-250))
	c2 := s.ColorFor(ptr(-250))

	assert.Equal(t, domain.ColorForValue(-250), c1)
	assert.Equal(t, c1, c2)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ColorCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ColorCache.WithLabelValues("hit")))
}

func TestCachedScale_UnknownBypassesCache(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	s := NewCachedScale(10, metrics)

	assert.Equal(t, domain.UnknownColor, s.ColorFor(nil))
	assert.Equal(t, domain.UnknownColor, s.ColorFor(ptr(math.NaN())))
	assert.Zero(t, s.cache.len())
}

func TestCachedScale_MatchesScale(t *testing.T) {
	s := NewCachedScale(4, observability.NewMetricsForTesting())

	for round := 0; round < 3; round++ {
		for v := -52000.0; v <= 1500; v += 137.5 {
			assert.Equal(t, domain.ColorForValue(v), s.ColorFor(ptr(v)), "balance %v", v)
		}
	}
}

func TestCachedScale_Concurrent(t *testing.T) {
	s := NewCachedScale(16, observability.NewMetricsForTesting())

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				v := float64(-(i*g)%5000) - 1
				assert.Equal(t, domain.ColorForValue(v), s.ColorFor(ptr(v)))
			}
		}(g)
	}
	wg.Wait()
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put(1, domain.Color{R: 1})
	c.put(2, domain.Color{R: 2})

	v, ok := c.get(1)
	assert.True(t, ok)
	assert.Equal(t, uint8(1), v.R)

	_, ok = c.get(99)
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put(1, domain.Color{R: 1})
	c.put(2, domain.Color{R: 2})
	c.put(3, domain.Color{R: 3}) // evicts 1

	_, ok := c.get(1)
	assert.False(t, ok, "1 should have been evicted")

	_, ok = c.get(2)
	assert.True(t, ok)
	_, ok = c.get(3)
	assert.True(t, ok)
}

func TestLRUCache_AccessRefreshesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put(1, domain.Color{R: 1})
	c.put(2, domain.Color{R: 2})
	c.get(1)                     // 1 is now most recent
	c.put(3, domain.Color{R: 3}) // evicts 2

	_, ok := c.get(2)
	assert.False(t, ok)
	_, ok = c.get(1)
	assert.True(t, ok)
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put(1, domain.Color{R: 1})
	c.put(1, domain.Color{R: 9})

	v, ok := c.get(1)
	assert.True(t, ok)
	assert.Equal(t, uint8(9), v.R)
	assert.Equal(t, 1, c.len())
}
