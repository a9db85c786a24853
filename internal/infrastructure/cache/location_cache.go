package cache

import (
	"context"
	"sync"
	"time"

	domainRepo "github.com/sangkips/reservation-invoicing/internal/domain/repository"
	"golang.org/x/oauth2"
)

type cachedLocation struct {
	value   string
	expires time.Time
}

// LocationCache keeps resolved hotel locations in memory for a fixed TTL.
// Failed lookups are not cached.
type LocationCache struct {
	next  domainRepo.AccommodationDirectory
	ttl   time.Duration
	now   func() time.Time
	items map[int64]cachedLocation
	mu    sync.RWMutex
}

// NewLocationCache wraps next. A non-positive ttl disables caching.
func NewLocationCache(next domainRepo.AccommodationDirectory, ttl time.Duration) *LocationCache {
	return &LocationCache{
		next:  next,
		ttl:   ttl,
		now:   time.Now,
		items: make(map[int64]cachedLocation),
	}
}

var _ domainRepo.AccommodationDirectory = (*LocationCache)(nil)

func (c *LocationCache) LocationOf(ctx context.Context, cred oauth2.TokenSource, hotelID int64) (string, error) {
	if c.ttl <= 0 {
		return c.next.LocationOf(ctx, cred, hotelID)
	}

	if loc, ok := c.get(hotelID); ok {
		return loc, nil
	}

	loc, err := c.next.LocationOf(ctx, cred, hotelID)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.items[hotelID] = cachedLocation{value: loc, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return loc, nil
}

func (c *LocationCache) get(hotelID int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[hotelID]
	if !ok || c.now().After(item.expires) {
		return "", false
	}
	return item.value, true
}

// Purge drops expired entries
func (c *LocationCache) Purge() {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, item := range c.items {
		if now.After(item.expires) {
			delete(c.items, id)
		}
	}
}

// Len returns the number of cached entries, expired or not
func (c *LocationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
