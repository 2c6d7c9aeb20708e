// Package cache memoizes the assembled response so repeated polls within
// the freshness window don't fan out to every feed again.
package cache

import (
	"sync"
	"time"

	"github.com/upscsamachar/newsfeed/internal/aggregate"
)

type ResponseCache struct {
	mu        sync.RWMutex
	value     *aggregate.Response
	expiresAt time.Time
}

func New() *ResponseCache {
	return &ResponseCache{}
}

func (c *ResponseCache) Get() (*aggregate.Response, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.value == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.value, true
}

func (c *ResponseCache) Set(value *aggregate.Response, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.expiresAt = time.Now().Add(ttl)
}
