package service

import (
	"fmt"
	"sync"
	"time"
)

// rangeCache is the advisory materialization cache. Keys combine clinician,
// range signature and a per-clinician refresh generation; bumping the
// generation (on any availability-affecting write) invalidates every cached
// range for that clinician. Entries inside the debounce window short-circuit
// a repeat materialization for an unchanged key.
type rangeCache struct {
	mu  sync.Mutex
	ttl time.Duration

	entries map[string]cacheEntry
	gen     map[string]uint64
}

type cacheEntry struct {
	result    map[string]DayAvailability
	fetchedAt time.Time
}

func newRangeCache(ttl time.Duration) *rangeCache {
	return &rangeCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		gen:     make(map[string]uint64),
	}
}

func (c *rangeCache) key(clinicianID, rangeSig string) string {
	c.mu.Lock()
	gen := c.gen[clinicianID]
	c.mu.Unlock()
	return fmt.Sprintf("%s|%s|%d", clinicianID, rangeSig, gen)
}

func (c *rangeCache) get(key string) (map[string]DayAvailability, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || time.Since(entry.fetchedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.result, true
}

// put stores a fully successful result only; partial or failed
// materializations are never cached.
func (c *rangeCache) put(key string, result map[string]DayAvailability) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{result: result, fetchedAt: time.Now()}
}

// invalidate bumps the clinician's refresh generation, orphaning every
// cached range for that clinician.
func (c *rangeCache) invalidate(clinicianID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen[clinicianID]++
}
