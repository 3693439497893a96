// Package cache holds the session-scoped flight list. Flights are immutable
// within a session from the client's perspective, so the cache is a plain
// TTL'd snapshot refreshed by the poller.
package cache

import (
	"sync"
	"time"

	"airclient/internal/domain"
)

type FlightCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	flights   []domain.Flight
	byID      map[int64]domain.Flight
	fetchedAt time.Time
}

func NewFlightCache(ttl time.Duration) *FlightCache {
	return &FlightCache{ttl: ttl}
}

// Get returns the cached list, or nil when empty or stale. A zero TTL
// means entries never expire within the session.
func (c *FlightCache) Get() []domain.Flight {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.flights == nil {
		return nil
	}
	if c.ttl > 0 && time.Since(c.fetchedAt) > c.ttl {
		return nil
	}
	return c.flights
}

func (c *FlightCache) Set(flights []domain.Flight) {
	byID := make(map[int64]domain.Flight, len(flights))
	for _, f := range flights {
		byID[f.ID] = f
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.flights = flights
	c.byID = byID
	c.fetchedAt = time.Now()
}

// Lookup resolves a flight by id against the cached list regardless of TTL;
// booking views prefer a slightly stale flight over none.
func (c *FlightCache) Lookup(id int64) (domain.Flight, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.byID[id]
	return f, ok
}

func (c *FlightCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flights = nil
	c.byID = nil
}
